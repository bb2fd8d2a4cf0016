package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ypamar/newsletter/internal/domain"
	domainmocks "github.com/ypamar/newsletter/internal/domain/mocks"
	"github.com/ypamar/newsletter/internal/service"
	"github.com/ypamar/newsletter/pkg/emailbuilder"
	"github.com/ypamar/newsletter/pkg/mailer"
	pkgmocks "github.com/ypamar/newsletter/pkg/mocks"
	"github.com/ypamar/newsletter/pkg/storage"
)

type editorServiceMocks struct {
	campaigns *domainmocks.MockCampaignDesignRepository
	library   *domainmocks.MockTemplateLibraryService
	mailer    *pkgmocks.MockMailer
	images    *pkgmocks.MockImageStore
}

func setupEditorServiceTest(t *testing.T, ctrl *gomock.Controller, configure ...func(*service.EditorServiceConfig)) (*service.EditorService, *editorServiceMocks) {
	m := &editorServiceMocks{
		campaigns: domainmocks.NewMockCampaignDesignRepository(ctrl),
		library:   domainmocks.NewMockTemplateLibraryService(ctrl),
		mailer:    pkgmocks.NewMockMailer(ctrl),
		images:    pkgmocks.NewMockImageStore(ctrl),
	}
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	config := service.EditorServiceConfig{
		HistoryLimit:   20,
		SessionTTL:     time.Hour,
		DefaultOptions: emailbuilder.ExportOptions{BackgroundColor: "#eeeeee", EmailWidth: 640},
		RenderTimeout:  time.Second,
	}
	for _, fn := range configure {
		fn(&config)
	}
	svc := service.NewEditorService(m.campaigns, m.library, m.mailer, m.images, mockLogger, config)
	t.Cleanup(svc.Stop)
	return svc, m
}

func openEmpty(t *testing.T, svc *service.EditorService) *domain.SessionState {
	state, err := svc.Open(context.Background(), &domain.OpenSessionRequest{})
	require.NoError(t, err)
	return state
}

func addBlock(t *testing.T, svc *service.EditorService, sessionID string, blockType emailbuilder.BlockType) *domain.SessionState {
	state, err := svc.AddBlock(context.Background(), &domain.AddBlockRequest{SessionID: sessionID, Type: string(blockType)})
	require.NoError(t, err)
	return state
}

func blockIDs(blocks []emailbuilder.Block) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.GetID()
	}
	return ids
}

func TestEditorService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty document with configured defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		state := openEmpty(t, svc)
		assert.NotEmpty(t, state.SessionID)
		assert.Empty(t, state.Blocks)
		assert.Equal(t, "#eeeeee", state.Options.BackgroundColor)
		assert.Equal(t, 640, state.Options.EmailWidth)
		assert.False(t, state.CanUndo)
		assert.False(t, state.CanRedo)
		assert.Contains(t, state.HTML, "<!DOCTYPE html")
		assert.Equal(t, 1, svc.SessionCount())
	})

	t.Run("Starter template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		state, err := svc.Open(ctx, &domain.OpenSessionRequest{Starter: "newsletter"})
		require.NoError(t, err)
		assert.NotEmpty(t, state.Blocks)
		assert.False(t, state.CanUndo, "the initial document is not undoable")
	})

	t.Run("Unknown starter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		_, err := svc.Open(ctx, &domain.OpenSessionRequest{Starter: "nope"})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Inline design wins and regenerates ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		design := `{"blocks":[{"id":"fixed","type":"spacer","height":42}],"options":{"bodyBg":"#000000","emailWidth":500},"version":2}`
		state, err := svc.Open(ctx, &domain.OpenSessionRequest{Starter: "promo", Design: json.RawMessage(design)})
		require.NoError(t, err)
		require.Len(t, state.Blocks, 1)
		assert.NotEqual(t, "fixed", state.Blocks[0].GetID())
		assert.Equal(t, 42, state.Blocks[0].(*emailbuilder.SpacerBlock).Height)
		assert.Equal(t, "#000000", state.Options.BackgroundColor)
		assert.Equal(t, 500, state.Options.EmailWidth)
	})

	t.Run("Invalid inline design", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		_, err := svc.Open(ctx, &domain.OpenSessionRequest{Design: json.RawMessage(`{"blocks":[{"type":"hologram"}]}`)})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Equal(t, 0, svc.SessionCount())
	})

	t.Run("Saved template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.library.EXPECT().Get(ctx, "tpl-1").Return(&domain.SavedTemplate{
			Key:    "tpl-1",
			Design: json.RawMessage(`{"blocks":[{"id":"a","type":"divider"},{"id":"b","type":"spacer"}],"version":2}`),
		}, nil)

		state, err := svc.Open(ctx, &domain.OpenSessionRequest{TemplateKey: "tpl-1"})
		require.NoError(t, err)
		require.Len(t, state.Blocks, 2)
		assert.Equal(t, emailbuilder.BlockTypeDivider, state.Blocks[0].GetType())
	})

	t.Run("Campaign with a saved design", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").Return(&domain.CampaignDesign{
			CampaignID: "camp-1",
			Subject:    "March news",
			Design:     json.RawMessage(`{"blocks":[{"id":"x","type":"title","text":"March"}],"version":2}`),
		}, nil)

		state, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1"})
		require.NoError(t, err)
		assert.Equal(t, "camp-1", state.CampaignID)
		require.Len(t, state.Blocks, 1)
		assert.Equal(t, "March", state.Blocks[0].(*emailbuilder.TitleBlock).Text)
	})

	t.Run("Campaign with a corrupt design opens empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").Return(&domain.CampaignDesign{
			CampaignID: "camp-1",
			Design:     json.RawMessage(`{"blocks":"oops"}`),
		}, nil)

		state, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1"})
		require.NoError(t, err)
		assert.Empty(t, state.Blocks)
	})

	t.Run("Cancelled caller does not fail the shared load", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		started := make(chan struct{}, 1)
		release := make(chan struct{})
		loadErr := make(chan error, 2)
		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").DoAndReturn(func(loadCtx context.Context, id string) (*domain.CampaignDesign, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
			loadErr <- loadCtx.Err()
			return &domain.CampaignDesign{CampaignID: id}, nil
		}).MinTimes(1).MaxTimes(2)

		first, cancelFirst := context.WithCancel(ctx)
		firstDone := make(chan error, 1)
		go func() {
			_, err := svc.Open(first, &domain.OpenSessionRequest{CampaignID: "camp-1"})
			firstDone <- err
		}()
		<-started

		secondDone := make(chan error, 1)
		go func() {
			_, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1"})
			secondDone <- err
		}()

		cancelFirst()
		assert.ErrorIs(t, <-firstDone, context.Canceled)

		close(release)
		require.NoError(t, <-secondDone)
		assert.NoError(t, <-loadErr, "the shared load keeps running after the first caller leaves")
	})

	t.Run("Unknown campaign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "missing").Return(nil, &domain.ErrNotFound{Entity: "campaign", ID: "missing"})

		_, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "missing"})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestEditorService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	_, err := svc.Get(ctx, "nope")
	var notFound *domain.ErrSessionNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nope", notFound.SessionID)

	_, err = svc.Undo(ctx, "nope")
	assert.True(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(svc.Close(ctx, "nope")))
}

func TestEditorService_Close(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	state := openEmpty(t, svc)
	require.NoError(t, svc.Close(ctx, state.SessionID))

	_, err := svc.Get(ctx, state.SessionID)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 0, svc.SessionCount())
}

func TestEditorService_BlockOperations(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	state := openEmpty(t, svc)
	sid := state.SessionID

	title := addBlock(t, svc, sid, emailbuilder.BlockTypeTitle)
	assert.True(t, title.Changed)
	assert.Equal(t, title.BlockID, title.Selected)
	assert.True(t, title.CanUndo)

	text := addBlock(t, svc, sid, emailbuilder.BlockTypeText)
	require.Len(t, text.Blocks, 2)

	// insert at the front
	zero := 0
	spacer, err := svc.AddBlock(ctx, &domain.AddBlockRequest{SessionID: sid, Type: "spacer", Index: &zero})
	require.NoError(t, err)
	assert.Equal(t, []string{spacer.BlockID, title.BlockID, text.BlockID}, blockIDs(spacer.Blocks))

	t.Run("Unknown type is rejected", func(t *testing.T) {
		_, err := svc.AddBlock(ctx, &domain.AddBlockRequest{SessionID: sid, Type: "carousel"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := svc.UpdateBlock(ctx, &domain.UpdateBlockRequest{
			SessionID: sid,
			Block:     json.RawMessage(fmt.Sprintf(`{"id":%q,"type":"title","text":"Spring <sale>"}`, title.BlockID)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Spring <sale>", updated.Blocks[1].(*emailbuilder.TitleBlock).Text)
		assert.Contains(t, updated.HTML, "Spring &lt;sale&gt;")
	})

	t.Run("Update of an unknown block", func(t *testing.T) {
		_, err := svc.UpdateBlock(ctx, &domain.UpdateBlockRequest{
			SessionID: sid,
			Block:     json.RawMessage(`{"id":"ghost","type":"title","text":"x"}`),
		})
		var notFound *domain.ErrNotFound
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "block", notFound.Entity)
	})

	t.Run("Update cannot change the type", func(t *testing.T) {
		_, err := svc.UpdateBlock(ctx, &domain.UpdateBlockRequest{
			SessionID: sid,
			Block:     json.RawMessage(fmt.Sprintf(`{"id":%q,"type":"text","text":"x"}`, title.BlockID)),
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Duplicate", func(t *testing.T) {
		dup, err := svc.DuplicateBlock(ctx, &domain.BlockRequest{SessionID: sid, BlockID: title.BlockID})
		require.NoError(t, err)
		require.True(t, dup.Changed)
		require.Len(t, dup.Blocks, 4)
		assert.Equal(t, dup.BlockID, dup.Blocks[2].GetID())
		assert.NotEqual(t, title.BlockID, dup.BlockID)
		assert.Equal(t, dup.BlockID, dup.Selected)

		gone, err := svc.DeleteBlock(ctx, &domain.BlockRequest{SessionID: sid, BlockID: dup.BlockID})
		require.NoError(t, err)
		assert.True(t, gone.Changed)
		assert.Len(t, gone.Blocks, 3)
		assert.Empty(t, gone.Selected)
	})

	t.Run("Missing blocks are no-ops", func(t *testing.T) {
		del, err := svc.DeleteBlock(ctx, &domain.BlockRequest{SessionID: sid, BlockID: "ghost"})
		require.NoError(t, err)
		assert.False(t, del.Changed)
		assert.Len(t, del.Blocks, 3)

		dup, err := svc.DuplicateBlock(ctx, &domain.BlockRequest{SessionID: sid, BlockID: "ghost"})
		require.NoError(t, err)
		assert.False(t, dup.Changed)
		assert.Empty(t, dup.BlockID)
	})

	t.Run("Move", func(t *testing.T) {
		moved, err := svc.MoveBlock(ctx, &domain.MoveBlockRequest{SessionID: sid, From: 0, To: 3})
		require.NoError(t, err)
		assert.True(t, moved.Changed)
		assert.Equal(t, []string{title.BlockID, text.BlockID, spacer.BlockID}, blockIDs(moved.Blocks))

		same, err := svc.MoveBlock(ctx, &domain.MoveBlockRequest{SessionID: sid, From: 0, To: 1})
		require.NoError(t, err)
		assert.False(t, same.Changed)

		out, err := svc.MoveBlock(ctx, &domain.MoveBlockRequest{SessionID: sid, From: 7, To: 0})
		require.NoError(t, err)
		assert.False(t, out.Changed)
	})

	t.Run("Select", func(t *testing.T) {
		sel, err := svc.Select(ctx, &domain.SelectRequest{SessionID: sid, BlockID: text.BlockID})
		require.NoError(t, err)
		assert.Equal(t, text.BlockID, sel.Selected)

		ignored, err := svc.Select(ctx, &domain.SelectRequest{SessionID: sid, BlockID: "ghost"})
		require.NoError(t, err)
		assert.False(t, ignored.Changed)
		assert.Equal(t, text.BlockID, ignored.Selected)

		cleared, err := svc.Select(ctx, &domain.SelectRequest{SessionID: sid})
		require.NoError(t, err)
		assert.Empty(t, cleared.Selected)
	})
}

func TestEditorService_UndoRedo(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	sid := openEmpty(t, svc).SessionID
	addBlock(t, svc, sid, emailbuilder.BlockTypeText)
	addBlock(t, svc, sid, emailbuilder.BlockTypeDivider)

	undone, err := svc.Undo(ctx, sid)
	require.NoError(t, err)
	assert.True(t, undone.Changed)
	assert.Len(t, undone.Blocks, 1)
	assert.True(t, undone.CanRedo)

	undone, err = svc.Undo(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, undone.Blocks)
	assert.False(t, undone.CanUndo)

	atStart, err := svc.Undo(ctx, sid)
	require.NoError(t, err)
	assert.False(t, atStart.Changed)

	redone, err := svc.Redo(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, redone.Blocks, 1)

	// a new change drops the redo branch
	branched := addBlock(t, svc, sid, emailbuilder.BlockTypeSpacer)
	assert.False(t, branched.CanRedo)
	atEnd, err := svc.Redo(ctx, sid)
	require.NoError(t, err)
	assert.False(t, atEnd.Changed)
}

func TestEditorService_Drop(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	sid := openEmpty(t, svc).SessionID
	cols := addBlock(t, svc, sid, emailbuilder.BlockTypeColumns2)
	container := cols.Blocks[0].(*emailbuilder.ColumnsBlock)
	left, right := container.Columns[0].ID, container.Columns[1].ID

	t.Run("Catalog type into a gap", func(t *testing.T) {
		zero := 0
		state, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "button", Index: &zero})
		require.NoError(t, err)
		require.True(t, state.Changed)
		require.Len(t, state.Blocks, 2)
		assert.Equal(t, state.BlockID, state.Blocks[0].GetID())
		assert.Equal(t, emailbuilder.BlockTypeButton, state.Blocks[0].GetType())
	})

	var nestedID string
	t.Run("Catalog type into a column", func(t *testing.T) {
		state, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "image", ColumnsID: container.ID, ColumnID: left})
		require.NoError(t, err)
		require.True(t, state.Changed)
		updated := state.Blocks[1].(*emailbuilder.ColumnsBlock)
		require.Len(t, updated.Columns[0].Blocks, 1)
		nestedID = updated.Columns[0].Blocks[0].GetID()
		assert.Equal(t, nestedID, state.BlockID)
	})

	t.Run("Across columns keeps the id", func(t *testing.T) {
		state, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: nestedID, ColumnsID: container.ID, ColumnID: right})
		require.NoError(t, err)
		require.True(t, state.Changed)
		updated := state.Blocks[1].(*emailbuilder.ColumnsBlock)
		assert.Empty(t, updated.Columns[0].Blocks)
		require.Len(t, updated.Columns[1].Blocks, 1)
		assert.Equal(t, nestedID, updated.Columns[1].Blocks[0].GetID())
		assert.Equal(t, nestedID, state.BlockID)
	})

	t.Run("Columns cannot nest", func(t *testing.T) {
		state, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "columns3", ColumnsID: container.ID, ColumnID: left})
		require.NoError(t, err)
		assert.False(t, state.Changed)
	})

	t.Run("Unresolvable payload", func(t *testing.T) {
		one := 1
		state, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "ghost", Index: &one})
		require.NoError(t, err)
		assert.False(t, state.Changed)
	})

	t.Run("Missing target", func(t *testing.T) {
		_, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "text"})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestEditorService_OptionsAndImport(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	sid := openEmpty(t, svc).SessionID
	addBlock(t, svc, sid, emailbuilder.BlockTypeText)

	state, err := svc.SetOptions(ctx, &domain.SetOptionsRequest{SessionID: sid, Options: emailbuilder.ExportOptions{EmailWidth: 2000, PreheaderText: "Big news inside"}})
	require.NoError(t, err)
	assert.Equal(t, emailbuilder.MaxEmailWidth, state.Options.EmailWidth)
	assert.Equal(t, emailbuilder.DefaultBackgroundColor, state.Options.BackgroundColor)
	assert.Contains(t, state.HTML, "Big news inside")

	_, err = svc.Import(ctx, &domain.ImportDesignRequest{SessionID: sid, Design: json.RawMessage(`{"blocks":[{"type":"mystery"}]}`)})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	unchanged, err := svc.Get(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, unchanged.Blocks, 1, "a rejected import applies nothing")

	imported, err := svc.Import(ctx, &domain.ImportDesignRequest{SessionID: sid, Design: json.RawMessage(`[{"type":"divider"},{"type":"spacer"},{"type":"footer"}]`)})
	require.NoError(t, err)
	assert.Len(t, imported.Blocks, 3)
	assert.True(t, imported.CanUndo)
}

func TestEditorService_ApplyTemplate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := setupEditorServiceTest(t, ctrl)

	sid := openEmpty(t, svc).SessionID

	starter, err := svc.ApplyTemplate(ctx, &domain.ApplyTemplateRequest{SessionID: sid, Starter: "greetings"})
	require.NoError(t, err)
	assert.NotEmpty(t, starter.Blocks)
	assert.True(t, starter.CanUndo)

	_, err = svc.ApplyTemplate(ctx, &domain.ApplyTemplateRequest{SessionID: sid, Starter: "unknown"})
	assert.True(t, domain.IsNotFound(err))

	m.library.EXPECT().Get(ctx, "saved").Return(&domain.SavedTemplate{
		Key:    "saved",
		Design: json.RawMessage(`{"blocks":[{"id":"q","type":"quote"}],"options":{"bodyBg":"#101010"},"version":2}`),
	}, nil)
	saved, err := svc.ApplyTemplate(ctx, &domain.ApplyTemplateRequest{SessionID: sid, TemplateKey: "saved"})
	require.NoError(t, err)
	require.Len(t, saved.Blocks, 1)
	assert.Equal(t, emailbuilder.BlockTypeQuote, saved.Blocks[0].GetType())
	assert.Equal(t, "#101010", saved.Options.BackgroundColor)

	m.library.EXPECT().Get(ctx, "gone").Return(nil, &domain.ErrNotFound{Entity: "template", ID: "gone"})
	_, err = svc.ApplyTemplate(ctx, &domain.ApplyTemplateRequest{SessionID: sid, TemplateKey: "gone"})
	assert.True(t, domain.IsNotFound(err))
}

func TestEditorService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes design and HTML back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").Return(&domain.CampaignDesign{CampaignID: "camp-1"}, nil)
		state, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1", Starter: "update"})
		require.NoError(t, err)

		var saved *domain.CampaignDesign
		m.campaigns.EXPECT().SaveCampaignDesign(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *domain.CampaignDesign) error {
			saved = d
			return nil
		})

		result, err := svc.Save(ctx, state.SessionID)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "camp-1", saved.CampaignID)
		assert.Equal(t, state.HTML, saved.HTML)
		assert.Equal(t, result, saved)

		design, err := emailbuilder.ParseDesign(saved.Design, emailbuilder.NewSequenceGenerator("t"))
		require.NoError(t, err)
		assert.Len(t, design.Blocks, len(state.Blocks))
	})

	t.Run("Session without campaign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		_, err := svc.Save(ctx, openEmpty(t, svc).SessionID)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").Return(&domain.CampaignDesign{CampaignID: "camp-1"}, nil)
		state, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1"})
		require.NoError(t, err)

		m.campaigns.EXPECT().SaveCampaignDesign(ctx, gomock.Any()).Return(errors.New("connection reset"))
		_, err = svc.Save(ctx, state.SessionID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestEditorService_Export(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	state, err := svc.Open(ctx, &domain.OpenSessionRequest{Starter: "newsletter"})
	require.NoError(t, err)
	sid := state.SessionID

	html, err := svc.Export(ctx, sid, domain.ExportFormatHTML)
	require.NoError(t, err)
	assert.Equal(t, state.HTML, html.Content)

	design, err := svc.Export(ctx, sid, domain.ExportFormatJSON)
	require.NoError(t, err)
	var decoded struct {
		Blocks  []json.RawMessage `json:"blocks"`
		Version int               `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(design.Content), &decoded))
	assert.Len(t, decoded.Blocks, len(state.Blocks))
	assert.Equal(t, emailbuilder.DesignVersion, decoded.Version)

	mjml, err := svc.Export(ctx, sid, domain.ExportFormatMJML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(mjml.Content), "<mjml>"))

	text, err := svc.Export(ctx, sid, domain.ExportFormatText)
	require.NoError(t, err)
	assert.NotContains(t, text.Content, "<table")
	assert.NotEmpty(t, text.Content)

	_, err = svc.Export(ctx, sid, domain.ExportFormat("pdf"))
	assert.True(t, domain.IsValidation(err))
}

func TestEditorService_Stats(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	sid := openEmpty(t, svc).SessionID
	addBlock(t, svc, sid, emailbuilder.BlockTypeText)
	addBlock(t, svc, sid, emailbuilder.BlockTypeFooter)

	stats, err := svc.Stats(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.BlockCount)
	assert.Greater(t, stats.WordCount, 0)
	assert.NotEmpty(t, stats.Level)
}

func TestEditorService_Preview(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := setupEditorServiceTest(t, ctrl)

	state, err := svc.Open(ctx, &domain.OpenSessionRequest{Starter: "update"})
	require.NoError(t, err)

	preview, err := svc.Preview(ctx, &domain.PreviewRequest{SessionID: state.SessionID, Data: map[string]interface{}{"first_name": "Grace"}})
	require.NoError(t, err)
	assert.Contains(t, preview.HTML, "Hi Grace! Here is what's new.")
	assert.NotContains(t, preview.HTML, "{{")
	assert.Contains(t, preview.Text, "Hi Grace!")
	assert.Equal(t, []emailbuilder.MergeTag{{Name: "first_name"}}, preview.MergeTags)
	assert.Empty(t, preview.Unresolved)

	t.Run("Reports tags without data", func(t *testing.T) {
		preview, err := svc.Preview(ctx, &domain.PreviewRequest{SessionID: state.SessionID})
		require.NoError(t, err)
		assert.Equal(t, []string{"first_name"}, preview.Unresolved)
		assert.Contains(t, preview.HTML, "Hi ! Here is what's new.")
	})
}

func TestEditorService_SendTest(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses the campaign subject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		m.campaigns.EXPECT().GetCampaignDesign(gomock.Any(), "camp-1").Return(&domain.CampaignDesign{CampaignID: "camp-1", Subject: "April update"}, nil).Times(2)
		state, err := svc.Open(ctx, &domain.OpenSessionRequest{CampaignID: "camp-1", Starter: "update"})
		require.NoError(t, err)

		var sent mailer.Message
		m.mailer.EXPECT().SendTestEmail(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			sent = msg
			return nil
		})

		err = svc.SendTest(ctx, &domain.SendTestRequest{
			SessionID: state.SessionID,
			Email:     " ada@example.com ",
			Data:      map[string]interface{}{"first_name": "Ada"},
		})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", sent.To)
		assert.Equal(t, "April update", sent.Subject)
		assert.Contains(t, sent.HTML, "Hi Ada!")
		assert.NotEmpty(t, sent.Text)
	})

	t.Run("Explicit subject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		m.mailer.EXPECT().SendTestEmail(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, "Draft", msg.Subject)
			return nil
		})

		require.NoError(t, svc.SendTest(ctx, &domain.SendTestRequest{SessionID: sid, Email: "a@example.com", Subject: "Draft"}))
	})

	t.Run("Invalid recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := setupEditorServiceTest(t, ctrl)

		err := svc.SendTest(ctx, &domain.SendTestRequest{SessionID: "s", Email: "not-an-email"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Mailer error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		m.mailer.EXPECT().SendTestEmail(ctx, gomock.Any()).Return(errors.New("failed to send test email: 554 rejected"))

		err := svc.SendTest(ctx, &domain.SendTestRequest{SessionID: sid, Email: "a@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "554 rejected")
	})

	t.Run("Rate limited per session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl, func(c *service.EditorServiceConfig) {
			c.TestSendLimit = 2
			c.RateWindow = time.Hour
		})

		first := openEmpty(t, svc).SessionID
		second := openEmpty(t, svc).SessionID
		m.mailer.EXPECT().SendTestEmail(ctx, gomock.Any()).Return(nil).Times(3)

		req := &domain.SendTestRequest{SessionID: first, Email: "a@example.com"}
		require.NoError(t, svc.SendTest(ctx, req))
		require.NoError(t, svc.SendTest(ctx, req))

		err := svc.SendTest(ctx, req)
		require.Error(t, err)
		assert.True(t, domain.IsRateLimited(err))
		var limited *domain.ErrRateLimited
		require.ErrorAs(t, err, &limited)
		assert.Equal(t, "test send", limited.Action)
		assert.Greater(t, limited.RetryAfter, 59*time.Minute)

		// other sessions have their own budget
		require.NoError(t, svc.SendTest(ctx, &domain.SendTestRequest{SessionID: second, Email: "a@example.com"}))
	})
}

func TestEditorService_UploadImage(t *testing.T) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n")

	t.Run("Top-level image block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		image := addBlock(t, svc, sid, emailbuilder.BlockTypeImage)

		m.images.EXPECT().PutImage(ctx, "hero.png", "image/png", png).Return("https://cdn.example.com/hero.png", nil)

		result, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, BlockID: image.BlockID, Filename: "hero.png", ContentType: "image/png", Data: png})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/hero.png", result.URL)
		require.NotNil(t, result.State)
		assert.Equal(t, "https://cdn.example.com/hero.png", result.State.Blocks[0].(*emailbuilder.ImageBlock).Src)
		assert.Contains(t, result.State.HTML, "https://cdn.example.com/hero.png")
	})

	t.Run("Nested image block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		cols := addBlock(t, svc, sid, emailbuilder.BlockTypeColumns2)
		container := cols.Blocks[0].(*emailbuilder.ColumnsBlock)
		dropped, err := svc.Drop(ctx, &domain.DropRequest{SessionID: sid, Payload: "image", ColumnsID: container.ID, ColumnID: container.Columns[1].ID})
		require.NoError(t, err)

		m.images.EXPECT().PutImage(ctx, "side.jpg", "image/jpeg", png).Return("https://cdn.example.com/side.jpg", nil)

		result, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, BlockID: dropped.BlockID, Filename: "side.jpg", ContentType: "image/jpeg", Data: png})
		require.NoError(t, err)
		updated := result.State.Blocks[0].(*emailbuilder.ColumnsBlock)
		assert.Equal(t, "https://cdn.example.com/side.jpg", updated.Columns[1].Blocks[0].(*emailbuilder.ImageBlock).Src)
		assert.Equal(t, container.ID, updated.ID)
	})

	t.Run("Upload only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		m.images.EXPECT().PutImage(ctx, "a.gif", "image/gif", png).Return("https://cdn.example.com/a.gif", nil)

		result, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, Filename: "a.gif", ContentType: "image/gif", Data: png})
		require.NoError(t, err)
		assert.Nil(t, result.State)
	})

	t.Run("Block is not an image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		text := addBlock(t, svc, sid, emailbuilder.BlockTypeText)
		m.images.EXPECT().PutImage(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/a.png", nil)

		_, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, BlockID: text.BlockID, Filename: "a.png", ContentType: "image/png", Data: png})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Rejected by the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl)

		sid := openEmpty(t, svc).SessionID
		m.images.EXPECT().PutImage(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("%w: unsupported image content type: %q", storage.ErrInvalidImage, "image/tiff"))

		_, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, Filename: "a.tiff", ContentType: "image/tiff", Data: png})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Rate limited per session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := setupEditorServiceTest(t, ctrl, func(c *service.EditorServiceConfig) {
			c.UploadLimit = 1
		})

		sid := openEmpty(t, svc).SessionID
		m.images.EXPECT().PutImage(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/a.png", nil).Times(1)

		req := &domain.UploadImageRequest{SessionID: sid, Filename: "a.png", ContentType: "image/png", Data: png}
		_, err := svc.UploadImage(ctx, req)
		require.NoError(t, err)

		_, err = svc.UploadImage(ctx, req)
		assert.True(t, domain.IsRateLimited(err))
	})

	t.Run("Uploads disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockLogger := pkgmocks.NewMockLogger(ctrl)
		mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
		svc := service.NewEditorService(domainmocks.NewMockCampaignDesignRepository(ctrl), domainmocks.NewMockTemplateLibraryService(ctrl), pkgmocks.NewMockMailer(ctrl), nil, mockLogger, service.EditorServiceConfig{})
		defer svc.Stop()

		sid := openEmpty(t, svc).SessionID
		_, err := svc.UploadImage(ctx, &domain.UploadImageRequest{SessionID: sid, Filename: "a.png", ContentType: "image/png", Data: png})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}
