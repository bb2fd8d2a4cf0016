package mocks

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/ypamar/newsletter/internal/domain"
)

// MockTemplateLibraryService is a mock of TemplateLibraryService interface
type MockTemplateLibraryService struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateLibraryServiceMockRecorder
}

// MockTemplateLibraryServiceMockRecorder is the mock recorder for MockTemplateLibraryService
type MockTemplateLibraryServiceMockRecorder struct {
	mock *MockTemplateLibraryService
}

// NewMockTemplateLibraryService creates a new mock instance
func NewMockTemplateLibraryService(ctrl *gomock.Controller) *MockTemplateLibraryService {
	mock := &MockTemplateLibraryService{ctrl: ctrl}
	mock.recorder = &MockTemplateLibraryServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTemplateLibraryService) EXPECT() *MockTemplateLibraryServiceMockRecorder {
	return m.recorder
}

// List mocks base method
func (m *MockTemplateLibraryService) List(ctx context.Context) ([]*domain.SavedTemplateSummary, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx)
	ret0, _ := ret[0].([]*domain.SavedTemplateSummary)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockTemplateLibraryServiceMockRecorder) List(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockTemplateLibraryService)(nil).List), ctx)
}

// Get mocks base method
func (m *MockTemplateLibraryService) Get(ctx context.Context, key string) (*domain.SavedTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(*domain.SavedTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockTemplateLibraryServiceMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockTemplateLibraryService)(nil).Get), ctx, key)
}

// Save mocks base method
func (m *MockTemplateLibraryService) Save(ctx context.Context, name string, description string, design json.RawMessage) (*domain.SavedTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, name, description, design)
	ret0, _ := ret[0].(*domain.SavedTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Save indicates an expected call of Save
func (mr *MockTemplateLibraryServiceMockRecorder) Save(ctx, name, description, design interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockTemplateLibraryService)(nil).Save), ctx, name, description, design)
}

// Delete mocks base method
func (m *MockTemplateLibraryService) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTemplateLibraryServiceMockRecorder) Delete(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTemplateLibraryService)(nil).Delete), ctx, key)
}
