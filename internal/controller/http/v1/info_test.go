package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/nicholasadamou/avscan-api/internal/controller/http/v1"
	"github.com/nicholasadamou/avscan-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanHandler_Info(t *testing.T) {
	t.Parallel()

	var events []string
	store := &recordingStore{events: &events, upload: &domain.Upload{Path: "/tmp/uploads/u1"}}
	scanner := &recordingScanner{events: &events, outcome: domain.Clean("")}

	h := newHandler(t, store, scanner, 0)

	w := httptest.NewRecorder()
	h.Info(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp v1.InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "avscan-api", resp.Name)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, "clamscan", resp.Scanner.Engine)
	assert.Equal(t, "clamscan", resp.Scanner.Path)
	assert.Equal(t, "ClamAV 1.3.0", resp.Scanner.Version)
	assert.Contains(t, resp.Scanner.Command, "--suppress-ok-results")
	assert.Contains(t, resp.Endpoints, "POST /scan")
}
