package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/logger"
)

// TemplateLibraryService keeps the saved templates as one JSON array in the
// design store, newest first. Writes are serialized so concurrent saves and
// deletes do not overwrite each other.
type TemplateLibraryService struct {
	mu     sync.Mutex
	store  domain.DesignStore
	logger logger.Logger
	now    func() time.Time
}

// NewTemplateLibraryService creates a new TemplateLibraryService
func NewTemplateLibraryService(store domain.DesignStore, logger logger.Logger) *TemplateLibraryService {
	return &TemplateLibraryService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TemplateLibraryService) load(ctx context.Context) ([]*domain.SavedTemplate, error) {
	entry, err := s.store.Get(ctx, domain.TemplateLibraryKey)
	if err != nil {
		var notFound *domain.ErrEntryNotFound
		if errors.As(err, &notFound) {
			return []*domain.SavedTemplate{}, nil
		}
		return nil, fmt.Errorf("failed to load template library: %w", err)
	}

	var templates []*domain.SavedTemplate
	if err := json.Unmarshal([]byte(entry.Value), &templates); err != nil {
		// corrupt library, start over
		s.logger.WithField("error", err.Error()).Warn("Template library is not valid JSON, starting empty")
		return []*domain.SavedTemplate{}, nil
	}
	return templates, nil
}

func (s *TemplateLibraryService) persist(ctx context.Context, templates []*domain.SavedTemplate) error {
	data, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to encode template library: %w", err)
	}
	if err := s.store.Set(ctx, domain.TemplateLibraryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save template library: %w", err)
	}
	return nil
}

// List returns the saved templates without their designs
func (s *TemplateLibraryService) List(ctx context.Context) ([]*domain.SavedTemplateSummary, error) {
	templates, err := s.load(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to list templates")
		return nil, err
	}

	summaries := make([]*domain.SavedTemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, &domain.SavedTemplateSummary{
			Key:         t.Key,
			Name:        t.Name,
			Description: t.Description,
			BlockCount:  countBlocks(t.Design),
			SavedAt:     t.SavedAt,
		})
	}
	return summaries, nil
}

// Get returns one saved template
func (s *TemplateLibraryService) Get(ctx context.Context, key string) (*domain.SavedTemplate, error) {
	templates, err := s.load(ctx)
	if err != nil {
		s.logger.WithField("key", key).WithField("error", err.Error()).Error("Failed to get template")
		return nil, err
	}
	for _, t := range templates {
		if t.Key == key {
			return t, nil
		}
	}
	return nil, &domain.ErrNotFound{Entity: "template", ID: key}
}

// Save puts design at the head of the library and drops the entries past MaxSavedTemplates
func (s *TemplateLibraryService) Save(ctx context.Context, name, description string, design json.RawMessage) (*domain.SavedTemplate, error) {
	if !gjson.GetBytes(design, "blocks").IsArray() {
		return nil, domain.NewValidationError("design must hold a blocks array")
	}
	if countBlocks(design) == 0 {
		return nil, domain.NewValidationError("cannot save an empty design")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load(ctx)
	if err != nil {
		s.logger.WithField("name", name).WithField("error", err.Error()).Error("Failed to save template")
		return nil, err
	}

	saved := &domain.SavedTemplate{
		Key:         uuid.New().String(),
		Name:        name,
		Description: description,
		Design:      design,
		SavedAt:     s.now().UTC(),
	}

	templates = append([]*domain.SavedTemplate{saved}, templates...)
	if len(templates) > domain.MaxSavedTemplates {
		templates = templates[:domain.MaxSavedTemplates]
	}

	if err := s.persist(ctx, templates); err != nil {
		s.logger.WithField("name", name).WithField("error", err.Error()).Error("Failed to save template")
		return nil, err
	}

	s.logger.WithField("key", saved.Key).WithField("name", name).Info("Template saved")
	return saved, nil
}

// Delete removes a saved template
func (s *TemplateLibraryService) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load(ctx)
	if err != nil {
		s.logger.WithField("key", key).WithField("error", err.Error()).Error("Failed to delete template")
		return err
	}

	kept := templates[:0]
	found := false
	for _, t := range templates {
		if t.Key == key {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return &domain.ErrNotFound{Entity: "template", ID: key}
	}

	if err := s.persist(ctx, kept); err != nil {
		s.logger.WithField("key", key).WithField("error", err.Error()).Error("Failed to delete template")
		return err
	}
	return nil
}

func countBlocks(design json.RawMessage) int {
	return int(gjson.GetBytes(design, "blocks.#").Int())
}
