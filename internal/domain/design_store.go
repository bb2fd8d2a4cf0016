package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_design_store.go -package mocks github.com/ypamar/newsletter/internal/domain DesignStore

// StoreEntry is one key/value pair of the design store
type StoreEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DesignStore is the key/value persistence port behind the saved template library
type DesignStore interface {
	// Get retrieves an entry, ErrEntryNotFound when the key is absent
	Get(ctx context.Context, key string) (*StoreEntry, error)

	// Set creates or updates an entry
	Set(ctx context.Context, key, value string) error

	// Delete removes an entry, ErrEntryNotFound when the key is absent
	Delete(ctx context.Context, key string) error

	// List retrieves entries whose key starts with prefix, ordered by key
	List(ctx context.Context, prefix string) ([]*StoreEntry, error)
}

// TemplateLibraryKey holds the saved template list as one JSON array
const TemplateLibraryKey = "email_templates"
