package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/ypamar/newsletter/pkg/emailbuilder"
)

//go:generate mockgen -destination mocks/mock_editor_service.go -package mocks github.com/ypamar/newsletter/internal/domain EditorService

// SessionState is the editor state returned after every session operation
type SessionState struct {
	SessionID  string                     `json:"session_id"`
	CampaignID string                     `json:"campaign_id,omitempty"`
	Blocks     []emailbuilder.Block       `json:"blocks"`
	Options    emailbuilder.ExportOptions `json:"options"`
	Selected   string                     `json:"selected,omitempty"`
	CanUndo    bool                       `json:"can_undo"`
	CanRedo    bool                       `json:"can_redo"`
	HTML       string                     `json:"html"`
	// Changed is false when the operation was a no-op
	Changed bool `json:"changed"`
	// BlockID is the id of the block created by add, duplicate or drop
	BlockID string `json:"block_id,omitempty"`
}

// OpenSessionRequest starts an editor session.
// The document comes from Design, else TemplateKey, else Starter, else the
// campaign's saved design, else it is empty.
type OpenSessionRequest struct {
	CampaignID  string          `json:"campaign_id,omitempty"`
	Starter     string          `json:"starter,omitempty"`
	TemplateKey string          `json:"template_key,omitempty"`
	Design      json.RawMessage `json:"design,omitempty"`
}

func (r *OpenSessionRequest) Validate() error {
	if r.CampaignID != "" && (len(r.CampaignID) > 64 || !govalidator.IsPrintableASCII(r.CampaignID)) {
		return NewValidationError("invalid campaign_id")
	}
	if r.Starter != "" {
		if _, ok := emailbuilder.FindStarterTemplate(r.Starter); !ok {
			return NewValidationError(fmt.Sprintf("unknown starter template: %s", r.Starter))
		}
	}
	return nil
}

// SessionRequest addresses a session
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// FromURLParams parses the request from URL query parameters
func (r *SessionRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	return r.Validate()
}

// AddBlockRequest inserts a default block. A nil Index appends.
type AddBlockRequest struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Index     *int   `json:"index,omitempty"`
}

func (r *AddBlockRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if !emailbuilder.IsBlockType(r.Type) {
		return NewValidationError(fmt.Sprintf("unknown block type: %q", r.Type))
	}
	return nil
}

// UpdateBlockRequest replaces a top-level block with Block, matched by its id
type UpdateBlockRequest struct {
	SessionID string          `json:"session_id"`
	Block     json.RawMessage `json:"block"`
}

// Validate decodes the block
func (r *UpdateBlockRequest) Validate() (emailbuilder.Block, error) {
	if r.SessionID == "" {
		return nil, NewValidationError("session_id is required")
	}
	if len(r.Block) == 0 {
		return nil, NewValidationError("block is required")
	}
	b, err := emailbuilder.UnmarshalBlock(r.Block)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	return b, nil
}

// BlockRequest addresses a block of a session
type BlockRequest struct {
	SessionID string `json:"session_id"`
	BlockID   string `json:"block_id"`
}

func (r *BlockRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if r.BlockID == "" {
		return NewValidationError("block_id is required")
	}
	return nil
}

// SelectRequest selects a block, an empty BlockID clears the selection
type SelectRequest struct {
	SessionID string `json:"session_id"`
	BlockID   string `json:"block_id"`
}

func (r *SelectRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// MoveBlockRequest moves the block at From into gap To
type MoveBlockRequest struct {
	SessionID string `json:"session_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

func (r *MoveBlockRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if r.From < 0 || r.To < 0 {
		return NewValidationError("from and to must be positive")
	}
	return nil
}

// DropRequest commits a drag and drop gesture. Payload is a catalog type or
// a block id. The target is either the top-level gap Index or the column
// ColumnID of the columns block ColumnsID.
type DropRequest struct {
	SessionID string `json:"session_id"`
	Payload   string `json:"payload"`
	Index     *int   `json:"index,omitempty"`
	ColumnsID string `json:"columns_id,omitempty"`
	ColumnID  string `json:"column_id,omitempty"`
}

// Validate returns the drop target
func (r *DropRequest) Validate() (emailbuilder.DropTarget, error) {
	if r.SessionID == "" {
		return emailbuilder.DropTarget{}, NewValidationError("session_id is required")
	}
	if r.Payload == "" {
		return emailbuilder.DropTarget{}, NewValidationError("payload is required")
	}
	if r.ColumnsID != "" || r.ColumnID != "" {
		if r.ColumnsID == "" || r.ColumnID == "" {
			return emailbuilder.DropTarget{}, NewValidationError("columns_id and column_id go together")
		}
		return emailbuilder.InColumn(r.ColumnsID, r.ColumnID), nil
	}
	if r.Index == nil {
		return emailbuilder.DropTarget{}, NewValidationError("index or column target is required")
	}
	return emailbuilder.AtGap(*r.Index), nil
}

// SetOptionsRequest changes the export options, they are normalized
type SetOptionsRequest struct {
	SessionID string                     `json:"session_id"`
	Options   emailbuilder.ExportOptions `json:"options"`
}

func (r *SetOptionsRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// ImportDesignRequest replaces the document with a serialized design
type ImportDesignRequest struct {
	SessionID string          `json:"session_id"`
	Design    json.RawMessage `json:"design"`
}

func (r *ImportDesignRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if len(r.Design) == 0 {
		return NewValidationError("design is required")
	}
	return nil
}

// ApplyTemplateRequest replaces the document with a starter or a saved template
type ApplyTemplateRequest struct {
	SessionID   string `json:"session_id"`
	Starter     string `json:"starter,omitempty"`
	TemplateKey string `json:"template_key,omitempty"`
}

func (r *ApplyTemplateRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if (r.Starter == "") == (r.TemplateKey == "") {
		return NewValidationError("exactly one of starter and template_key is required")
	}
	return nil
}

// ExportFormat selects the export representation
type ExportFormat string

const (
	ExportFormatHTML     ExportFormat = "html"
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatMJML     ExportFormat = "mjml"
	ExportFormatMJMLHTML ExportFormat = "mjml_html"
	ExportFormatText     ExportFormat = "text"
)

// ParseExportFormat defaults to html
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ExportFormatHTML, nil
	case ExportFormatHTML, ExportFormatJSON, ExportFormatMJML, ExportFormatMJMLHTML, ExportFormatText:
		return f, nil
	}
	return "", NewValidationError(fmt.Sprintf("unsupported export format: %s", s))
}

// ContentType is the HTTP content type of the format
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatJSON:
		return "application/json"
	case ExportFormatMJML:
		return "application/xml; charset=utf-8"
	case ExportFormatText:
		return "text/plain; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// ExportRequest asks for the session document in one format
type ExportRequest struct {
	SessionID string
	Format    ExportFormat
}

// FromURLParams parses the request from URL query parameters
func (r *ExportRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	format, err := ParseExportFormat(queryParams.Get("format"))
	if err != nil {
		return err
	}
	r.Format = format
	return nil
}

// ExportResult is an exported document
type ExportResult struct {
	Format  ExportFormat `json:"format"`
	Content string       `json:"content"`
}

// PreviewRequest renders the exported HTML with merge tag data
type PreviewRequest struct {
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func (r *PreviewRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	return nil
}

// PreviewResult is a personalized rendering
type PreviewResult struct {
	HTML       string                  `json:"html"`
	Text       string                  `json:"text"`
	MergeTags  []emailbuilder.MergeTag `json:"merge_tags"`
	Unresolved []string                `json:"unresolved,omitempty"`
}

// SendTestRequest delivers the exported design to one address
type SendTestRequest struct {
	SessionID string                 `json:"session_id"`
	Email     string                 `json:"email"`
	Subject   string                 `json:"subject,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func (r *SendTestRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return NewValidationError("email is required")
	}
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError(fmt.Sprintf("invalid email: %s", r.Email))
	}
	if len(r.Subject) > 255 {
		return NewValidationError("subject length must be at most 255")
	}
	return nil
}

// UploadImageRequest stores an image and, when BlockID names an image
// block, points its src at the uploaded file
type UploadImageRequest struct {
	SessionID   string
	BlockID     string
	Filename    string
	ContentType string
	Data        []byte
}

func (r *UploadImageRequest) Validate() error {
	if r.SessionID == "" {
		return NewValidationError("session_id is required")
	}
	if len(r.Data) == 0 {
		return NewValidationError("file is required")
	}
	if !strings.HasPrefix(r.ContentType, "image/") {
		return NewValidationError(fmt.Sprintf("file must be an image, got %s", r.ContentType))
	}
	return nil
}

// UploadImageResult carries the public URL and, if a block was updated, the new state
type UploadImageResult struct {
	URL   string        `json:"url"`
	State *SessionState `json:"state,omitempty"`
}

// EditorService drives editor sessions
type EditorService interface {
	Open(ctx context.Context, req *OpenSessionRequest) (*SessionState, error)
	Close(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*SessionState, error)

	AddBlock(ctx context.Context, req *AddBlockRequest) (*SessionState, error)
	UpdateBlock(ctx context.Context, req *UpdateBlockRequest) (*SessionState, error)
	DeleteBlock(ctx context.Context, req *BlockRequest) (*SessionState, error)
	DuplicateBlock(ctx context.Context, req *BlockRequest) (*SessionState, error)
	MoveBlock(ctx context.Context, req *MoveBlockRequest) (*SessionState, error)
	Drop(ctx context.Context, req *DropRequest) (*SessionState, error)
	Select(ctx context.Context, req *SelectRequest) (*SessionState, error)
	Undo(ctx context.Context, sessionID string) (*SessionState, error)
	Redo(ctx context.Context, sessionID string) (*SessionState, error)
	SetOptions(ctx context.Context, req *SetOptionsRequest) (*SessionState, error)
	Import(ctx context.Context, req *ImportDesignRequest) (*SessionState, error)
	ApplyTemplate(ctx context.Context, req *ApplyTemplateRequest) (*SessionState, error)

	// Save writes the design and HTML back to the session's campaign
	Save(ctx context.Context, sessionID string) (*CampaignDesign, error)

	Export(ctx context.Context, sessionID string, format ExportFormat) (*ExportResult, error)
	Stats(ctx context.Context, sessionID string) (*emailbuilder.Stats, error)
	Preview(ctx context.Context, req *PreviewRequest) (*PreviewResult, error)
	SendTest(ctx context.Context, req *SendTestRequest) error
	UploadImage(ctx context.Context, req *UploadImageRequest) (*UploadImageResult, error)
}
