package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/cache"
	"github.com/ypamar/newsletter/pkg/emailbuilder"
	"github.com/ypamar/newsletter/pkg/logger"
	"github.com/ypamar/newsletter/pkg/mailer"
	"github.com/ypamar/newsletter/pkg/ratelimiter"
	"github.com/ypamar/newsletter/pkg/storage"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	sessionCleanupInterval = time.Minute
	maxConcurrentRenders   = 4
	campaignLoadTimeout    = 10 * time.Second

	// rate limiter namespaces, keyed by session id
	limitTestSend = "test_send"
	limitUpload   = "image_upload"
)

// EditorServiceConfig holds the session limits and document defaults
type EditorServiceConfig struct {
	HistoryLimit    int
	SessionTTL      time.Duration
	DefaultOptions  emailbuilder.ExportOptions
	RenderTimeout   time.Duration
	MaxTemplateSize int
	// TestSendLimit and UploadLimit are allowed per session and RateWindow
	TestSendLimit int
	UploadLimit   int
	RateWindow    time.Duration
}

// editorSession is one open design. mu serializes every request against it.
type editorSession struct {
	mu         sync.Mutex
	id         string
	campaignID string
	editor     *emailbuilder.Editor
}

// EditorService keeps one Editor per session in a TTL cache
type EditorService struct {
	sessions     *cache.InMemoryCache[*editorSession]
	campaigns    domain.CampaignDesignRepository
	library      domain.TemplateLibraryService
	mailer       mailer.Mailer
	images       storage.ImageStore
	personalizer *emailbuilder.Personalizer
	logger       logger.Logger
	config       EditorServiceConfig
	ids          emailbuilder.IDGenerator
	loads        singleflight.Group
	renders      *semaphore.Weighted
	limiter      *ratelimiter.Limiter
}

// NewEditorService creates a new EditorService. images may be nil, uploads are then refused.
func NewEditorService(
	campaigns domain.CampaignDesignRepository,
	library domain.TemplateLibraryService,
	mailer mailer.Mailer,
	images storage.ImageStore,
	logger logger.Logger,
	config EditorServiceConfig,
) *EditorService {
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = emailbuilder.DefaultHistoryLimit
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 2 * time.Hour
	}
	config.DefaultOptions = config.DefaultOptions.Normalize()
	if config.TestSendLimit <= 0 {
		config.TestSendLimit = 5
	}
	if config.UploadLimit <= 0 {
		config.UploadLimit = 30
	}
	if config.RateWindow <= 0 {
		config.RateWindow = 10 * time.Minute
	}

	s := &EditorService{
		campaigns:    campaigns,
		library:      library,
		mailer:       mailer,
		images:       images,
		personalizer: emailbuilder.NewPersonalizer(
			emailbuilder.WithRenderTimeout(config.RenderTimeout),
			emailbuilder.WithMaxTemplateSize(config.MaxTemplateSize),
		),
		logger:       logger,
		config:       config,
		ids:          emailbuilder.UUIDGenerator{},
		renders:      semaphore.NewWeighted(maxConcurrentRenders),
		limiter:      ratelimiter.New(sessionCleanupInterval),
	}
	s.limiter.SetPolicy(limitTestSend, ratelimiter.Policy{MaxAttempts: config.TestSendLimit, Window: config.RateWindow})
	s.limiter.SetPolicy(limitUpload, ratelimiter.Policy{MaxAttempts: config.UploadLimit, Window: config.RateWindow})
	s.sessions = cache.NewInMemoryCache[*editorSession](sessionCleanupInterval, cache.WithEvictFunc[*editorSession](func(id string, _ *editorSession) {
		s.logger.WithField("session_id", id).Debug("Editor session closed")
	}))
	return s
}

// Stop ends the session and rate limit sweepers
func (s *EditorService) Stop() {
	s.sessions.Stop()
	s.limiter.Stop()
}

// allow consumes one attempt of a rate limited action
func (s *EditorService) allow(namespace, action, sessionID string) error {
	ok, retryAfter := s.limiter.Allow(namespace, sessionID)
	if ok {
		return nil
	}
	s.logger.WithField("session_id", sessionID).WithField("action", action).Warn("Rate limit exceeded")
	return &domain.ErrRateLimited{Action: action, RetryAfter: retryAfter}
}

// SessionCount returns the number of cached sessions, expired ones not yet swept included
func (s *EditorService) SessionCount() int {
	return s.sessions.Size()
}

// withSession runs fn on a live session while holding its lock and extends its TTL
func (s *EditorService) withSession(sessionID string, fn func(sess *editorSession) error) error {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	s.sessions.Touch(sessionID, s.config.SessionTTL)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *EditorService) state(sess *editorSession, changed bool, blockID string) *domain.SessionState {
	e := sess.editor
	return &domain.SessionState{
		SessionID:  sess.id,
		CampaignID: sess.campaignID,
		Blocks:     e.Blocks(),
		Options:    e.Options(),
		Selected:   e.Selected(),
		CanUndo:    e.CanUndo(),
		CanRedo:    e.CanRedo(),
		HTML:       e.HTML(),
		Changed:    changed,
		BlockID:    blockID,
	}
}

// mutate applies op to a session and returns the resulting state
func (s *EditorService) mutate(ctx context.Context, sessionID, action string, op func(e *emailbuilder.Editor) (bool, string, error)) (*domain.SessionState, error) {
	var result *domain.SessionState
	err := s.withSession(sessionID, func(sess *editorSession) error {
		changed, blockID, err := op(sess.editor)
		if err != nil {
			return err
		}
		result = s.state(sess, changed, blockID)
		return nil
	})
	if err != nil {
		if !domain.IsValidation(err) && !domain.IsNotFound(err) {
			s.logger.WithField("session_id", sessionID).WithField("action", action).WithField("error", err.Error()).Error("Failed to apply editor action")
		}
		return nil, err
	}
	return result, nil
}

// documentError turns errors of the document model into domain errors
func documentError(err error) error {
	var designErr *emailbuilder.DesignError
	var validationErr *emailbuilder.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &designErr), errors.As(err, &validationErr), errors.Is(err, emailbuilder.ErrUnknownBlockType):
		return domain.NewValidationError(err.Error())
	}
	return err
}

// loadCampaign collapses concurrent loads of the same campaign
func (s *EditorService) loadCampaign(ctx context.Context, campaignID string) (*domain.CampaignDesign, error) {
	results := s.loads.DoChan(campaignID, func() (interface{}, error) {
		// shared by every waiting caller, so not bound to the first one's request
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), campaignLoadTimeout)
		defer cancel()
		return s.campaigns.GetCampaignDesign(loadCtx, campaignID)
	})
	select {
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.CampaignDesign), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Open creates a session over the first available document source
func (s *EditorService) Open(ctx context.Context, req *domain.OpenSessionRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var campaign *domain.CampaignDesign
	if req.CampaignID != "" {
		var err error
		campaign, err = s.loadCampaign(ctx, req.CampaignID)
		if err != nil {
			if !domain.IsNotFound(err) {
				s.logger.WithField("campaign_id", req.CampaignID).WithField("error", err.Error()).Error("Failed to load campaign design")
			}
			return nil, err
		}
	}

	blocks, options, err := s.initialDocument(ctx, req, campaign)
	if err != nil {
		return nil, err
	}

	editor, err := emailbuilder.NewEditor(blocks,
		emailbuilder.WithIDGenerator(s.ids),
		emailbuilder.WithExportOptions(options),
		emailbuilder.WithHistoryLimit(s.config.HistoryLimit),
	)
	if err != nil {
		return nil, documentError(err)
	}

	sess := &editorSession{
		id:         uuid.New().String(),
		campaignID: req.CampaignID,
		editor:     editor,
	}
	s.sessions.Set(sess.id, sess, s.config.SessionTTL)

	s.logger.WithField("session_id", sess.id).WithField("campaign_id", req.CampaignID).WithField("blocks", editor.Len()).Info("Editor session opened")
	return s.state(sess, false, ""), nil
}

func (s *EditorService) initialDocument(ctx context.Context, req *domain.OpenSessionRequest, campaign *domain.CampaignDesign) ([]emailbuilder.Block, emailbuilder.ExportOptions, error) {
	parse := func(data []byte) ([]emailbuilder.Block, emailbuilder.ExportOptions, error) {
		design, err := emailbuilder.ParseDesign(data, s.ids)
		if err != nil {
			return nil, emailbuilder.ExportOptions{}, documentError(err)
		}
		return design.Blocks, design.Options, nil
	}

	switch {
	case len(req.Design) > 0:
		return parse(req.Design)
	case req.TemplateKey != "":
		tpl, err := s.library.Get(ctx, req.TemplateKey)
		if err != nil {
			return nil, emailbuilder.ExportOptions{}, err
		}
		return parse(tpl.Design)
	case req.Starter != "":
		starter, _ := emailbuilder.FindStarterTemplate(req.Starter)
		return starter.Blocks(s.ids), s.config.DefaultOptions, nil
	case campaign != nil && campaign.HasDesign():
		blocks, options, err := parse(campaign.Design)
		if err != nil {
			s.logger.WithField("campaign_id", campaign.CampaignID).WithField("error", err.Error()).Warn("Stored campaign design is invalid, opening empty")
			return nil, s.config.DefaultOptions, nil
		}
		return blocks, options, nil
	}
	return nil, s.config.DefaultOptions, nil
}

// Close drops a session
func (s *EditorService) Close(ctx context.Context, sessionID string) error {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	s.sessions.Delete(sessionID)
	return nil
}

// Get returns the current state of a session
func (s *EditorService) Get(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return s.mutate(ctx, sessionID, "get", func(e *emailbuilder.Editor) (bool, string, error) {
		return false, "", nil
	})
}

func (s *EditorService) AddBlock(ctx context.Context, req *domain.AddBlockRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	at := -1
	if req.Index != nil {
		at = *req.Index
	}
	return s.mutate(ctx, req.SessionID, "add", func(e *emailbuilder.Editor) (bool, string, error) {
		id, err := e.Add(emailbuilder.BlockType(req.Type), at)
		if err != nil {
			return false, "", documentError(err)
		}
		return true, id, nil
	})
}

func (s *EditorService) UpdateBlock(ctx context.Context, req *domain.UpdateBlockRequest) (*domain.SessionState, error) {
	block, err := req.Validate()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "update", func(e *emailbuilder.Editor) (bool, string, error) {
		if err := e.Update(block); err != nil {
			if errors.Is(err, emailbuilder.ErrBlockNotFound) {
				return false, "", &domain.ErrNotFound{Entity: "block", ID: block.GetID()}
			}
			return false, "", documentError(err)
		}
		return true, block.GetID(), nil
	})
}

// DeleteBlock removes a top-level block, unknown ids leave the document unchanged
func (s *EditorService) DeleteBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "delete", func(e *emailbuilder.Editor) (bool, string, error) {
		return e.Delete(req.BlockID), "", nil
	})
}

func (s *EditorService) DuplicateBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "duplicate", func(e *emailbuilder.Editor) (bool, string, error) {
		id, ok := e.Duplicate(req.BlockID)
		return ok, id, nil
	})
}

func (s *EditorService) MoveBlock(ctx context.Context, req *domain.MoveBlockRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "move", func(e *emailbuilder.Editor) (bool, string, error) {
		return e.Move(req.From, req.To), "", nil
	})
}

// Drop commits a drag and drop gesture. BlockID is set when a catalog type created a block.
func (s *EditorService) Drop(ctx context.Context, req *domain.DropRequest) (*domain.SessionState, error) {
	target, err := req.Validate()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "drop", func(e *emailbuilder.Editor) (bool, string, error) {
		before := emailbuilder.DocumentIDs(e.Blocks())
		if !e.Drop(req.Payload, target) {
			return false, "", nil
		}
		return true, createdID(before, emailbuilder.DocumentIDs(e.Blocks()), req.Payload), nil
	})
}

// createdID finds the id that appeared in after, or the payload when the drop moved a block
func createdID(before, after []string, payload string) string {
	seen := make(map[string]struct{}, len(before))
	for _, id := range before {
		seen[id] = struct{}{}
	}
	for _, id := range after {
		if _, ok := seen[id]; !ok {
			return id
		}
	}
	return payload
}

func (s *EditorService) Select(ctx context.Context, req *domain.SelectRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "select", func(e *emailbuilder.Editor) (bool, string, error) {
		return e.Select(req.BlockID), "", nil
	})
}

func (s *EditorService) Undo(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return s.mutate(ctx, sessionID, "undo", func(e *emailbuilder.Editor) (bool, string, error) {
		return e.Undo(), "", nil
	})
}

func (s *EditorService) Redo(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return s.mutate(ctx, sessionID, "redo", func(e *emailbuilder.Editor) (bool, string, error) {
		return e.Redo(), "", nil
	})
}

func (s *EditorService) SetOptions(ctx context.Context, req *domain.SetOptionsRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "options", func(e *emailbuilder.Editor) (bool, string, error) {
		e.SetOptions(req.Options)
		return true, "", nil
	})
}

// Import replaces the document with a serialized design, a rejected design changes nothing
func (s *EditorService) Import(ctx context.Context, req *domain.ImportDesignRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "import", func(e *emailbuilder.Editor) (bool, string, error) {
		if err := e.Import(req.Design); err != nil {
			return false, "", documentError(err)
		}
		return true, "", nil
	})
}

// ApplyTemplate replaces the document with a starter or a saved template.
// Saved templates bring their export options along.
func (s *EditorService) ApplyTemplate(ctx context.Context, req *domain.ApplyTemplateRequest) (*domain.SessionState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Starter != "" {
		starter, ok := emailbuilder.FindStarterTemplate(req.Starter)
		if !ok {
			return nil, &domain.ErrNotFound{Entity: "starter template", ID: req.Starter}
		}
		return s.mutate(ctx, req.SessionID, "apply", func(e *emailbuilder.Editor) (bool, string, error) {
			if err := e.Replace(starter.Blocks(s.ids)); err != nil {
				return false, "", documentError(err)
			}
			return true, "", nil
		})
	}

	if _, ok := s.sessions.Get(req.SessionID); !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: req.SessionID}
	}
	tpl, err := s.library.Get(ctx, req.TemplateKey)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.SessionID, "apply", func(e *emailbuilder.Editor) (bool, string, error) {
		if err := e.Import(tpl.Design); err != nil {
			return false, "", documentError(err)
		}
		return true, "", nil
	})
}

// Save writes the design and its HTML back to the session's campaign
func (s *EditorService) Save(ctx context.Context, sessionID string) (*domain.CampaignDesign, error) {
	var design *domain.CampaignDesign
	err := s.withSession(sessionID, func(sess *editorSession) error {
		if sess.campaignID == "" {
			return domain.NewValidationError("session is not attached to a campaign")
		}
		data, err := sess.editor.ExportDesign()
		if err != nil {
			return fmt.Errorf("failed to serialize design: %w", err)
		}
		design = &domain.CampaignDesign{
			CampaignID: sess.campaignID,
			Design:     json.RawMessage(data),
			HTML:       sess.editor.HTML(),
		}
		return s.campaigns.SaveCampaignDesign(ctx, design)
	})
	if err != nil {
		if !domain.IsValidation(err) && !domain.IsNotFound(err) {
			s.logger.WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to save campaign design")
		}
		return nil, err
	}

	s.logger.WithField("session_id", sessionID).WithField("campaign_id", design.CampaignID).Info("Campaign design saved")
	return design, nil
}

// snapshot copies what rendering needs so slow work runs outside the session lock
func (s *EditorService) snapshot(sessionID string) (*editorSession, []emailbuilder.Block, emailbuilder.ExportOptions, string, error) {
	var (
		sess    *editorSession
		blocks  []emailbuilder.Block
		options emailbuilder.ExportOptions
		html    string
	)
	err := s.withSession(sessionID, func(locked *editorSession) error {
		sess = locked
		blocks = locked.editor.Blocks()
		options = locked.editor.Options()
		html = locked.editor.HTML()
		return nil
	})
	return sess, blocks, options, html, err
}

// Export renders the session document in the requested format
func (s *EditorService) Export(ctx context.Context, sessionID string, format domain.ExportFormat) (*domain.ExportResult, error) {
	_, blocks, options, html, err := s.snapshot(sessionID)
	if err != nil {
		return nil, err
	}

	result := &domain.ExportResult{Format: format}
	switch format {
	case domain.ExportFormatHTML:
		result.Content = html
	case domain.ExportFormatJSON:
		data, err := emailbuilder.MarshalDesign(blocks, options)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize design: %w", err)
		}
		result.Content = string(data)
	case domain.ExportFormatMJML:
		result.Content = emailbuilder.ToMJML(blocks, options)
	case domain.ExportFormatMJMLHTML:
		if err := s.renders.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer s.renders.Release(1)
		_, compiled, err := emailbuilder.RenderMJML(ctx, blocks, options)
		if err != nil {
			s.logger.WithField("session_id", sessionID).WithField("error", err.Error()).Error("Failed to compile MJML")
			return nil, err
		}
		result.Content = compiled
	case domain.ExportFormatText:
		text, err := emailbuilder.PlainText(html)
		if err != nil {
			return nil, fmt.Errorf("failed to extract plain text: %w", err)
		}
		result.Content = text
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported export format: %s", format))
	}
	return result, nil
}

// Stats analyzes the session document
func (s *EditorService) Stats(ctx context.Context, sessionID string) (*emailbuilder.Stats, error) {
	_, blocks, options, _, err := s.snapshot(sessionID)
	if err != nil {
		return nil, err
	}
	stats := emailbuilder.Analyze(blocks, options.PreheaderText)
	return &stats, nil
}

// render personalizes the exported HTML and derives its text alternative.
// It also returns the merge tags data left unresolved.
func (s *EditorService) render(ctx context.Context, html string, data map[string]interface{}) (string, string, []string, error) {
	if err := s.renders.Acquire(ctx, 1); err != nil {
		return "", "", nil, err
	}
	defer s.renders.Release(1)

	var unresolved []string
	if data != nil {
		personalized, err := s.personalizer.Personalize(ctx, html, data)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return "", "", nil, err
			}
			return "", "", nil, domain.NewValidationError(err.Error())
		}
		html = personalized.HTML
		unresolved = personalized.Unresolved
	}
	text, err := emailbuilder.PlainText(html)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to extract plain text: %w", err)
	}
	return html, text, unresolved, nil
}

// Preview renders merge tags with the given data
func (s *EditorService) Preview(ctx context.Context, req *domain.PreviewRequest) (*domain.PreviewResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	_, _, _, html, err := s.snapshot(req.SessionID)
	if err != nil {
		return nil, err
	}

	data := req.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	rendered, text, unresolved, err := s.render(ctx, html, data)
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to render preview")
		return nil, err
	}
	return &domain.PreviewResult{
		HTML:       rendered,
		Text:       text,
		MergeTags:  emailbuilder.MergeTags(html),
		Unresolved: unresolved,
	}, nil
}

// SendTest mails the exported design to one address. Merge tags are rendered
// when data is given. The subject falls back to the campaign subject.
func (s *EditorService) SendTest(ctx context.Context, req *domain.SendTestRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	sess, _, _, html, err := s.snapshot(req.SessionID)
	if err != nil {
		return err
	}
	if err := s.allow(limitTestSend, "test send", req.SessionID); err != nil {
		return err
	}

	subject := req.Subject
	if subject == "" && sess.campaignID != "" {
		campaign, err := s.loadCampaign(ctx, sess.campaignID)
		if err != nil {
			s.logger.WithField("campaign_id", sess.campaignID).WithField("error", err.Error()).Warn("Failed to load campaign subject")
		} else {
			subject = campaign.Subject
		}
	}

	rendered, text, unresolved, err := s.render(ctx, html, req.Data)
	if err != nil {
		return err
	}
	if len(unresolved) > 0 {
		s.logger.WithField("session_id", req.SessionID).WithField("unresolved", strings.Join(unresolved, ",")).Debug("Test email has merge tags without data")
	}

	err = s.mailer.SendTestEmail(ctx, mailer.Message{
		To:      req.Email,
		Subject: subject,
		HTML:    rendered,
		Text:    text,
	})
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).WithField("email", req.Email).WithField("error", err.Error()).Error("Failed to send test email")
		return err
	}

	s.logger.WithField("session_id", req.SessionID).WithField("email", req.Email).Info("Test email sent")
	return nil
}

// UploadImage stores an image and points the src of image block BlockID at it.
// BlockID may name a top-level block or a block inside a column.
func (s *EditorService) UploadImage(ctx context.Context, req *domain.UploadImageRequest) (*domain.UploadImageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, domain.NewValidationError("image uploads are not configured")
	}
	if _, ok := s.sessions.Get(req.SessionID); !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: req.SessionID}
	}
	if err := s.allow(limitUpload, "image upload", req.SessionID); err != nil {
		return nil, err
	}

	url, err := s.images.PutImage(ctx, req.Filename, req.ContentType, req.Data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, domain.NewValidationError(err.Error())
		}
		s.logger.WithField("session_id", req.SessionID).WithField("filename", req.Filename).WithField("error", err.Error()).Error("Failed to upload image")
		return nil, err
	}

	result := &domain.UploadImageResult{URL: url}
	if req.BlockID == "" {
		return result, nil
	}

	state, err := s.mutate(ctx, req.SessionID, "upload", func(e *emailbuilder.Editor) (bool, string, error) {
		return setImageSource(e, req.BlockID, url)
	})
	if err != nil {
		return nil, err
	}
	result.State = state
	return result, nil
}

// setImageSource updates the src of an image block, nested blocks are
// updated through their columns block
func setImageSource(e *emailbuilder.Editor, blockID, url string) (bool, string, error) {
	for _, b := range e.Blocks() {
		switch block := b.(type) {
		case *emailbuilder.ImageBlock:
			if block.ID != blockID {
				continue
			}
			block.Src = url
			return true, blockID, documentError(e.Update(block))
		case *emailbuilder.ColumnsBlock:
			for ci := range block.Columns {
				for _, nested := range block.Columns[ci].Blocks {
					if nested.GetID() != blockID {
						continue
					}
					img, ok := nested.(*emailbuilder.ImageBlock)
					if !ok {
						return false, "", domain.NewValidationError(fmt.Sprintf("block %s is not an image", blockID))
					}
					img.Src = url
					return true, blockID, documentError(e.Update(block))
				}
			}
		default:
			if b.GetID() == blockID {
				return false, "", domain.NewValidationError(fmt.Sprintf("block %s is not an image", blockID))
			}
		}
	}
	return false, "", &domain.ErrNotFound{Entity: "block", ID: blockID}
}
