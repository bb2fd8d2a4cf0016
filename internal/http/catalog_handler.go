package http

import (
	"net/http"

	"github.com/ypamar/newsletter/pkg/emailbuilder"
	"github.com/ypamar/newsletter/pkg/logger"
)

// catalogBlock is a sidebar entry with its properties form and default attributes
type catalogBlock struct {
	emailbuilder.CatalogEntry
	Fields   []emailbuilder.FormField `json:"fields"`
	Defaults emailbuilder.Block       `json:"defaults"`
}

type starterSummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BlockCount  int    `json:"block_count"`
	HTML        string `json:"html,omitempty"`
}

// CatalogHandler serves the static block catalog and the starter templates
type CatalogHandler struct {
	logger logger.Logger
}

func NewCatalogHandler(logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/blocks.catalog", h.handleCatalog)
	mux.HandleFunc("/api/templates.starters", h.handleStarters)
}

func (h *CatalogHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := emailbuilder.Catalog()
	blocks := make([]catalogBlock, 0, len(entries))
	for _, entry := range entries {
		fields, err := emailbuilder.FieldsFor(entry.Type)
		if err != nil {
			h.logger.WithField("type", string(entry.Type)).WithField("error", err.Error()).Error("Failed to build block fields")
			WriteJSONError(w, "Failed to build block catalog", http.StatusInternalServerError)
			return
		}
		defaults, err := emailbuilder.NewBlock(entry.Type, emailbuilder.NewSequenceGenerator("default"))
		if err != nil {
			h.logger.WithField("type", string(entry.Type)).WithField("error", err.Error()).Error("Failed to build block defaults")
			WriteJSONError(w, "Failed to build block catalog", http.StatusInternalServerError)
			return
		}
		blocks = append(blocks, catalogBlock{CatalogEntry: entry, Fields: fields, Defaults: defaults})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"blocks": blocks,
	})
}

func (h *CatalogHandler) handleStarters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	starters := emailbuilder.StarterTemplates()
	summaries := make([]starterSummary, 0, len(starters))
	for _, starter := range starters {
		blocks := starter.Blocks(emailbuilder.NewSequenceGenerator(starter.Key))
		summary := starterSummary{
			Key:         starter.Key,
			Name:        starter.Name,
			Description: starter.Description,
			BlockCount:  len(blocks),
		}
		if r.URL.Query().Get("html") == "true" {
			summary.HTML = emailbuilder.Export(blocks, emailbuilder.DefaultExportOptions())
		}
		summaries = append(summaries, summary)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": summaries,
	})
}
