package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/ypamar/newsletter/internal/domain"
	"github.com/ypamar/newsletter/pkg/emailbuilder"
)

// MockEditorService is a mock of EditorService interface
type MockEditorService struct {
	ctrl     *gomock.Controller
	recorder *MockEditorServiceMockRecorder
}

// MockEditorServiceMockRecorder is the mock recorder for MockEditorService
type MockEditorServiceMockRecorder struct {
	mock *MockEditorService
}

// NewMockEditorService creates a new mock instance
func NewMockEditorService(ctrl *gomock.Controller) *MockEditorService {
	mock := &MockEditorService{ctrl: ctrl}
	mock.recorder = &MockEditorServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEditorService) EXPECT() *MockEditorServiceMockRecorder {
	return m.recorder
}

// Open mocks base method
func (m *MockEditorService) Open(ctx context.Context, req *domain.OpenSessionRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Open", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Open indicates an expected call of Open
func (mr *MockEditorServiceMockRecorder) Open(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Open", reflect.TypeOf((*MockEditorService)(nil).Open), ctx, req)
}

// Close mocks base method
func (m *MockEditorService) Close(ctx context.Context, sessionID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close", ctx, sessionID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close
func (mr *MockEditorServiceMockRecorder) Close(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockEditorService)(nil).Close), ctx, sessionID)
}

// Get mocks base method
func (m *MockEditorService) Get(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, sessionID)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockEditorServiceMockRecorder) Get(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockEditorService)(nil).Get), ctx, sessionID)
}

// AddBlock mocks base method
func (m *MockEditorService) AddBlock(ctx context.Context, req *domain.AddBlockRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddBlock", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddBlock indicates an expected call of AddBlock
func (mr *MockEditorServiceMockRecorder) AddBlock(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddBlock", reflect.TypeOf((*MockEditorService)(nil).AddBlock), ctx, req)
}

// UpdateBlock mocks base method
func (m *MockEditorService) UpdateBlock(ctx context.Context, req *domain.UpdateBlockRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBlock", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateBlock indicates an expected call of UpdateBlock
func (mr *MockEditorServiceMockRecorder) UpdateBlock(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBlock", reflect.TypeOf((*MockEditorService)(nil).UpdateBlock), ctx, req)
}

// DeleteBlock mocks base method
func (m *MockEditorService) DeleteBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteBlock", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteBlock indicates an expected call of DeleteBlock
func (mr *MockEditorServiceMockRecorder) DeleteBlock(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteBlock", reflect.TypeOf((*MockEditorService)(nil).DeleteBlock), ctx, req)
}

// DuplicateBlock mocks base method
func (m *MockEditorService) DuplicateBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DuplicateBlock", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DuplicateBlock indicates an expected call of DuplicateBlock
func (mr *MockEditorServiceMockRecorder) DuplicateBlock(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DuplicateBlock", reflect.TypeOf((*MockEditorService)(nil).DuplicateBlock), ctx, req)
}

// MoveBlock mocks base method
func (m *MockEditorService) MoveBlock(ctx context.Context, req *domain.MoveBlockRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MoveBlock", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MoveBlock indicates an expected call of MoveBlock
func (mr *MockEditorServiceMockRecorder) MoveBlock(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MoveBlock", reflect.TypeOf((*MockEditorService)(nil).MoveBlock), ctx, req)
}

// Drop mocks base method
func (m *MockEditorService) Drop(ctx context.Context, req *domain.DropRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Drop", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Drop indicates an expected call of Drop
func (mr *MockEditorServiceMockRecorder) Drop(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Drop", reflect.TypeOf((*MockEditorService)(nil).Drop), ctx, req)
}

// Select mocks base method
func (m *MockEditorService) Select(ctx context.Context, req *domain.SelectRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Select", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Select indicates an expected call of Select
func (mr *MockEditorServiceMockRecorder) Select(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Select", reflect.TypeOf((*MockEditorService)(nil).Select), ctx, req)
}

// Undo mocks base method
func (m *MockEditorService) Undo(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Undo", ctx, sessionID)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Undo indicates an expected call of Undo
func (mr *MockEditorServiceMockRecorder) Undo(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Undo", reflect.TypeOf((*MockEditorService)(nil).Undo), ctx, sessionID)
}

// Redo mocks base method
func (m *MockEditorService) Redo(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Redo", ctx, sessionID)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Redo indicates an expected call of Redo
func (mr *MockEditorServiceMockRecorder) Redo(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Redo", reflect.TypeOf((*MockEditorService)(nil).Redo), ctx, sessionID)
}

// SetOptions mocks base method
func (m *MockEditorService) SetOptions(ctx context.Context, req *domain.SetOptionsRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetOptions", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SetOptions indicates an expected call of SetOptions
func (mr *MockEditorServiceMockRecorder) SetOptions(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetOptions", reflect.TypeOf((*MockEditorService)(nil).SetOptions), ctx, req)
}

// Import mocks base method
func (m *MockEditorService) Import(ctx context.Context, req *domain.ImportDesignRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Import", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Import indicates an expected call of Import
func (mr *MockEditorServiceMockRecorder) Import(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Import", reflect.TypeOf((*MockEditorService)(nil).Import), ctx, req)
}

// ApplyTemplate mocks base method
func (m *MockEditorService) ApplyTemplate(ctx context.Context, req *domain.ApplyTemplateRequest) (*domain.SessionState, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyTemplate", ctx, req)
	ret0, _ := ret[0].(*domain.SessionState)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ApplyTemplate indicates an expected call of ApplyTemplate
func (mr *MockEditorServiceMockRecorder) ApplyTemplate(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyTemplate", reflect.TypeOf((*MockEditorService)(nil).ApplyTemplate), ctx, req)
}

// Save mocks base method
func (m *MockEditorService) Save(ctx context.Context, sessionID string) (*domain.CampaignDesign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, sessionID)
	ret0, _ := ret[0].(*domain.CampaignDesign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Save indicates an expected call of Save
func (mr *MockEditorServiceMockRecorder) Save(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockEditorService)(nil).Save), ctx, sessionID)
}

// Export mocks base method
func (m *MockEditorService) Export(ctx context.Context, sessionID string, format domain.ExportFormat) (*domain.ExportResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Export", ctx, sessionID, format)
	ret0, _ := ret[0].(*domain.ExportResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Export indicates an expected call of Export
func (mr *MockEditorServiceMockRecorder) Export(ctx, sessionID, format interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Export", reflect.TypeOf((*MockEditorService)(nil).Export), ctx, sessionID, format)
}

// Stats mocks base method
func (m *MockEditorService) Stats(ctx context.Context, sessionID string) (*emailbuilder.Stats, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stats", ctx, sessionID)
	ret0, _ := ret[0].(*emailbuilder.Stats)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Stats indicates an expected call of Stats
func (mr *MockEditorServiceMockRecorder) Stats(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stats", reflect.TypeOf((*MockEditorService)(nil).Stats), ctx, sessionID)
}

// Preview mocks base method
func (m *MockEditorService) Preview(ctx context.Context, req *domain.PreviewRequest) (*domain.PreviewResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Preview", ctx, req)
	ret0, _ := ret[0].(*domain.PreviewResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Preview indicates an expected call of Preview
func (mr *MockEditorServiceMockRecorder) Preview(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Preview", reflect.TypeOf((*MockEditorService)(nil).Preview), ctx, req)
}

// SendTest mocks base method
func (m *MockEditorService) SendTest(ctx context.Context, req *domain.SendTestRequest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendTest", ctx, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendTest indicates an expected call of SendTest
func (mr *MockEditorServiceMockRecorder) SendTest(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendTest", reflect.TypeOf((*MockEditorService)(nil).SendTest), ctx, req)
}

// UploadImage mocks base method
func (m *MockEditorService) UploadImage(ctx context.Context, req *domain.UploadImageRequest) (*domain.UploadImageResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UploadImage", ctx, req)
	ret0, _ := ret[0].(*domain.UploadImageResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UploadImage indicates an expected call of UploadImage
func (mr *MockEditorServiceMockRecorder) UploadImage(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UploadImage", reflect.TypeOf((*MockEditorService)(nil).UploadImage), ctx, req)
}
