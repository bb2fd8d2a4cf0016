package http

import (
	"fmt"
	"net/http"

	"github.com/ypamar/newsletter/pkg/emailbuilder"
	"github.com/ypamar/newsletter/pkg/logger"
)

// RootHandler serves the frontend configuration script and the health check
type RootHandler struct {
	logger         logger.Logger
	apiEndpoint    string
	version        string
	uploadsEnabled bool
	sessionCount   func() int
}

// NewRootHandler creates a root handler. sessionCount may be nil.
func NewRootHandler(logger logger.Logger, apiEndpoint, version string, uploadsEnabled bool, sessionCount func() int) *RootHandler {
	return &RootHandler{
		logger:         logger,
		apiEndpoint:    apiEndpoint,
		version:        version,
		uploadsEnabled: uploadsEnabled,
		sessionCount:   sessionCount,
	}
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/config.js", h.serveConfigJS)
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/", h.Handle)
}

// Handle answers every path no other handler claimed
func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, "Not found", http.StatusNotFound)
}

// serveConfigJS generates the config.js file read by the designer frontend
func (h *RootHandler) serveConfigJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	configJS := fmt.Sprintf(
		"window.API_ENDPOINT = %q;\nwindow.VERSION = %q;\nwindow.UPLOADS_ENABLED = %t;\nwindow.EMAIL_WIDTH_MIN = %d;\nwindow.EMAIL_WIDTH_MAX = %d;\nwindow.MAX_PREHEADER_LENGTH = %d;",
		h.apiEndpoint,
		h.version,
		h.uploadsEnabled,
		emailbuilder.MinEmailWidth,
		emailbuilder.MaxEmailWidth,
		emailbuilder.MaxPreheaderLength,
	)
	_, _ = w.Write([]byte(configJS))
}

func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}
	if h.sessionCount != nil {
		resp["sessions"] = h.sessionCount()
	}
	writeJSON(w, http.StatusOK, resp)
}
