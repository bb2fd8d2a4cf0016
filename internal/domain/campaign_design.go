package domain

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination mocks/mock_campaign_design_repository.go -package mocks github.com/ypamar/newsletter/internal/domain CampaignDesignRepository

// CampaignDesign is the email design attached to a campaign along with the
// HTML last exported from it
type CampaignDesign struct {
	CampaignID string          `json:"campaign_id"`
	Subject    string          `json:"subject"`
	Design     json.RawMessage `json:"design,omitempty"`
	HTML       string          `json:"html"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// HasDesign reports whether a design was ever saved for the campaign
func (c *CampaignDesign) HasDesign() bool {
	return len(c.Design) > 0 && string(c.Design) != "null"
}

// CampaignDesignRepository loads and stores campaign designs
type CampaignDesignRepository interface {
	// GetCampaignDesign returns ErrNotFound when the campaign does not exist
	GetCampaignDesign(ctx context.Context, campaignID string) (*CampaignDesign, error)

	// SaveCampaignDesign stores the design and HTML of an existing campaign
	SaveCampaignDesign(ctx context.Context, design *CampaignDesign) error
}
