package v1

import "net/http"

// ServiceInfo is the static metadata rendered by the root endpoint.
type ServiceInfo struct {
	Name          string
	Version       string
	Description   string
	EnginePath    string
	EngineVersion string
	CommandLine   string
}

type InfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Scanner     ScannerInfo       `json:"scanner"`
}

type ScannerInfo struct {
	Engine  string `json:"engine"`
	Path    string `json:"path"`
	Version string `json:"version"`
	Command string `json:"command"`
}

func (h *ScanHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, InfoResponse{
		Name:        h.info.Name,
		Version:     h.info.Version,
		Description: h.info.Description,
		Endpoints: map[string]string{
			"POST /scan": "Scan an uploaded file (multipart field \"file\")",
			"GET /":      "Service and scanner metadata",
		},
		Scanner: ScannerInfo{
			Engine:  "clamscan",
			Path:    h.info.EnginePath,
			Version: h.info.EngineVersion,
			Command: h.info.CommandLine,
		},
	})
}
