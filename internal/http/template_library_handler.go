package http

import (
	"encoding/json"
	"net/http"

	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/logger"
)

type TemplateLibraryHandler struct {
	library domain.TemplateLibraryService
	editor  domain.EditorService
	logger  logger.Logger
}

func NewTemplateLibraryHandler(library domain.TemplateLibraryService, editor domain.EditorService, logger logger.Logger) *TemplateLibraryHandler {
	return &TemplateLibraryHandler{
		library: library,
		editor:  editor,
		logger:  logger,
	}
}

func (h *TemplateLibraryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/templates.list", h.handleList)
	mux.HandleFunc("/api/templates.get", h.handleGet)
	mux.HandleFunc("/api/templates.save", h.handleSave)
	mux.HandleFunc("/api/templates.delete", h.handleDelete)
}

func (h *TemplateLibraryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	templates, err := h.library.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateLibraryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.TemplateKeyRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.library.Get(r.Context(), req.Key)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

// handleSave stores the current design of an editor session in the library
func (h *TemplateLibraryHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SaveTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	exported, err := h.editor.Export(r.Context(), req.SessionID, domain.ExportFormatJSON)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to export design")
		return
	}

	saved, err := h.library.Save(r.Context(), req.Name, req.Description, json.RawMessage(exported.Content))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to save template")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": saved,
	})
}

func (h *TemplateLibraryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.TemplateKeyRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.library.Delete(r.Context(), req.Key); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
