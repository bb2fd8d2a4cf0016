package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ypamar/newsletter/internal/domain"
)

// CampaignDesignRepository reads and writes the design columns of campaigns.
// Campaign rows are owned by another system, this repository never creates them.
type CampaignDesignRepository struct {
	systemDB *sql.DB
	now      func() time.Time
}

// NewCampaignDesignRepository creates a new CampaignDesignRepository
func NewCampaignDesignRepository(db *sql.DB) *CampaignDesignRepository {
	return &CampaignDesignRepository{
		systemDB: db,
		now:      time.Now,
	}
}

// GetCampaignDesign loads the design of a campaign
func (r *CampaignDesignRepository) GetCampaignDesign(ctx context.Context, campaignID string) (*domain.CampaignDesign, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "subject", "design", "html", "updated_at").
		From("campaigns").
		Where(sq.Eq{"id": campaignID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		design  domain.CampaignDesign
		raw     []byte
		subject sql.NullString
		html    sql.NullString
	)
	err = r.systemDB.QueryRowContext(ctx, query, args...).
		Scan(&design.CampaignID, &subject, &raw, &html, &design.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "campaign", ID: campaignID}
		}
		return nil, fmt.Errorf("failed to get campaign design: %w", err)
	}

	design.Subject = subject.String
	design.HTML = html.String
	if len(raw) > 0 {
		design.Design = append(design.Design[:0], raw...)
	}

	return &design, nil
}

// SaveCampaignDesign stores the design and HTML of an existing campaign
func (r *CampaignDesignRepository) SaveCampaignDesign(ctx context.Context, design *domain.CampaignDesign) error {
	design.UpdatedAt = r.now().UTC()

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("campaigns").
		Set("design", []byte(design.Design)).
		Set("html", design.HTML).
		Set("updated_at", design.UpdatedAt).
		Where(sq.Eq{"id": design.CampaignID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.systemDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save campaign design: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "campaign", ID: design.CampaignID}
	}

	return nil
}
