package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_template_library_service.go -package mocks github.com/ypamar/newsletter/internal/domain TemplateLibraryService

// MaxSavedTemplates caps the library, the oldest entries are dropped first
const MaxSavedTemplates = 20

// SavedTemplate is a design saved by the user for reuse
type SavedTemplate struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Design      json.RawMessage `json:"design"`
	SavedAt     time.Time       `json:"saved_at"`
}

// SavedTemplateSummary is a library entry without its design
type SavedTemplateSummary struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BlockCount  int       `json:"block_count"`
	SavedAt     time.Time `json:"saved_at"`
}

// SaveTemplateRequest saves the design of an editor session under a name
type SaveTemplateRequest struct {
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r *SaveTemplateRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return NewValidationError("name is required")
	}
	if !govalidator.RuneLength(r.Name, "1", "60") {
		return NewValidationError("name length must be between 1 and 60")
	}
	if !govalidator.RuneLength(r.Description, "0", "120") {
		return NewValidationError("description length must be at most 120")
	}
	return nil
}

// TemplateKeyRequest addresses one library entry
type TemplateKeyRequest struct {
	Key string `json:"key"`
}

func (r *TemplateKeyRequest) Validate() error {
	if r.Key == "" {
		return NewValidationError("key is required")
	}
	if len(r.Key) > 150 || strings.ContainsAny(r.Key, " \t\n") {
		return NewValidationError(fmt.Sprintf("invalid template key: %q", r.Key))
	}
	return nil
}

// FromURLParams parses the request from URL query parameters
func (r *TemplateKeyRequest) FromURLParams(queryParams url.Values) error {
	r.Key = queryParams.Get("key")
	return r.Validate()
}

// TemplateLibraryService manages saved templates
type TemplateLibraryService interface {
	// List returns the saved templates, newest first
	List(ctx context.Context) ([]*SavedTemplateSummary, error)

	// Get returns one template with its design, ErrNotFound when absent
	Get(ctx context.Context, key string) (*SavedTemplate, error)

	// Save stores design under name and returns the new entry
	Save(ctx context.Context, name, description string, design json.RawMessage) (*SavedTemplate, error)

	// Delete removes a template, ErrNotFound when absent
	Delete(ctx context.Context, key string) error
}
