package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/nicholasadamou/avscan-api/internal/domain"
)

type FileStore interface {
	Save(r io.Reader, originalName, mimeType string) (*domain.Upload, error)
	Harden(path string)
	Remove(path string)
}

type FileScanner interface {
	Scan(ctx context.Context, path string) domain.Outcome
}

// ScanHandler orchestrates one scan request: persist the upload, harden it,
// run the engine, remove the temp file, render the verdict. Cleanup always
// runs between the scan and the response.
type ScanHandler struct {
	log           *slog.Logger
	store         FileStore
	scanner       FileScanner
	info          ServiceInfo
	maxUploadSize int64
}

func NewScanHandler(log *slog.Logger, store FileStore, scanner FileScanner, info ServiceInfo, maxUploadSize int64) *ScanHandler {
	return &ScanHandler{
		log:           log,
		store:         store,
		scanner:       scanner,
		info:          info,
		maxUploadSize: maxUploadSize,
	}
}

type ScanResponse struct {
	Clean     bool   `json:"clean"`
	RawOutput string `json:"rawOutput"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "No file provided",
			Details: "Please upload a file to scan",
		})
		return
	}
	defer file.Close()

	up, err := h.store.Save(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to persist upload", slog.String("err", err.Error()))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Scan failed",
			Details: "Failed to store uploaded file",
		})
		return
	}

	log := h.log.With(
		slog.String("path", up.Path),
		slog.String("original_name", up.OriginalName),
		slog.Int64("size", up.Size),
	)
	log.InfoContext(r.Context(), "received file to scan")

	h.store.Harden(up.Path)

	outcome := h.scanner.Scan(r.Context(), up.Path)

	// The temp file must be gone before the response goes out, on every path.
	h.store.Remove(up.Path)

	switch outcome.Verdict {
	case domain.VerdictClean:
		h.writeJSON(w, http.StatusOK, ScanResponse{Clean: true, RawOutput: outcome.RawOutput})

	case domain.VerdictInfected:
		log.InfoContext(r.Context(), "threat detected", slog.String("report", outcome.RawOutput))
		h.writeJSON(w, http.StatusOK, ScanResponse{Clean: false, RawOutput: outcome.RawOutput})

	default:
		log.ErrorContext(r.Context(), "scan failed", slog.String("details", outcome.Details))
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Scan failed",
			Details: outcome.Details,
		})
	}
}

func (h *ScanHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", slog.String("err", err.Error()))
	}
}
