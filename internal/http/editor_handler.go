package http

import (
	"context"
	"io"
	"net/http"

	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/logger"
	"github.com/ypamar/newsletter/pkg/storage"
)

type EditorHandler struct {
	service domain.EditorService
	logger  logger.Logger
}

func NewEditorHandler(service domain.EditorService, logger logger.Logger) *EditorHandler {
	return &EditorHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EditorHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/editor.open", h.handleOpen)
	mux.HandleFunc("/api/editor.close", h.handleClose)
	mux.HandleFunc("/api/editor.get", h.handleGet)

	mux.HandleFunc("/api/editor.add", stateHandler(h, "Failed to add block", h.service.AddBlock))
	mux.HandleFunc("/api/editor.update", stateHandler(h, "Failed to update block", h.service.UpdateBlock))
	mux.HandleFunc("/api/editor.delete", stateHandler(h, "Failed to delete block", h.service.DeleteBlock))
	mux.HandleFunc("/api/editor.duplicate", stateHandler(h, "Failed to duplicate block", h.service.DuplicateBlock))
	mux.HandleFunc("/api/editor.move", stateHandler(h, "Failed to move block", h.service.MoveBlock))
	mux.HandleFunc("/api/editor.drop", stateHandler(h, "Failed to drop block", h.service.Drop))
	mux.HandleFunc("/api/editor.select", stateHandler(h, "Failed to select block", h.service.Select))
	mux.HandleFunc("/api/editor.options", stateHandler(h, "Failed to set options", h.service.SetOptions))
	mux.HandleFunc("/api/editor.import", stateHandler(h, "Failed to import design", h.service.Import))
	mux.HandleFunc("/api/editor.apply", stateHandler(h, "Failed to apply template", h.service.ApplyTemplate))
	mux.HandleFunc("/api/editor.undo", stateHandler(h, "Failed to undo", bySession(h.service.Undo)))
	mux.HandleFunc("/api/editor.redo", stateHandler(h, "Failed to redo", bySession(h.service.Redo)))

	mux.HandleFunc("/api/editor.save", h.handleSave)
	mux.HandleFunc("/api/editor.export", h.handleExport)
	mux.HandleFunc("/api/editor.stats", h.handleStats)
	mux.HandleFunc("/api/editor.preview", h.handlePreview)
	mux.HandleFunc("/api/editor.sendTest", h.handleSendTest)
	mux.HandleFunc("/api/uploads.image", h.handleUploadImage)
}

// stateHandler serves a POST endpoint that decodes a T and answers with the session state
func stateHandler[T any](h *EditorHandler, failure string, call func(context.Context, *T) (*domain.SessionState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req T
		if !decodeJSON(w, r, h.logger, &req) {
			return
		}

		state, err := call(r.Context(), &req)
		if err != nil {
			writeServiceError(w, h.logger, err, failure)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"state": state,
		})
	}
}

// bySession adapts a session id operation to a SessionRequest body
func bySession(call func(context.Context, string) (*domain.SessionState, error)) func(context.Context, *domain.SessionRequest) (*domain.SessionState, error) {
	return func(ctx context.Context, req *domain.SessionRequest) (*domain.SessionState, error) {
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return call(ctx, req.SessionID)
	}
}

func (h *EditorHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.OpenSessionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	state, err := h.service.Open(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to open editor session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Close(r.Context(), req.SessionID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to close editor session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *EditorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Get(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get editor session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}

func (h *EditorHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	design, err := h.service.Save(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to save campaign design")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaign": design,
	})
}

// handleExport writes the document as is, with the content type of the format
func (h *EditorHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ExportRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Export(r.Context(), req.SessionID, req.Format)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to export design")
		return
	}

	w.Header().Set("Content-Type", result.Format.ContentType())
	if r.URL.Query().Get("download") == "true" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(result.Format)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.Content)
}

func exportFilename(format domain.ExportFormat) string {
	switch format {
	case domain.ExportFormatJSON:
		return "email-design.json"
	case domain.ExportFormatMJML:
		return "email.mjml"
	case domain.ExportFormatText:
		return "email.txt"
	}
	return "email.html"
}

func (h *EditorHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SessionRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.service.Stats(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to analyze design")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats": stats,
	})
}

func (h *EditorHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.PreviewRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	preview, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render preview")
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

func (h *EditorHandler) handleSendTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SendTestRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.service.SendTest(r.Context(), &req); err != nil {
		writeServiceError(w, h.logger, err, "Failed to send test email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleUploadImage takes a multipart form with session_id, an optional block_id and the file
func (h *EditorHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+(1<<20))
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteJSONError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	result, err := h.service.UploadImage(r.Context(), &domain.UploadImageRequest{
		SessionID:   r.FormValue("session_id"),
		BlockID:     r.FormValue("block_id"),
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
