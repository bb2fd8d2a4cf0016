package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/ypamar/newsletter/internal/domain"
)

// MockDesignStore is a mock of DesignStore interface
type MockDesignStore struct {
	ctrl     *gomock.Controller
	recorder *MockDesignStoreMockRecorder
}

// MockDesignStoreMockRecorder is the mock recorder for MockDesignStore
type MockDesignStoreMockRecorder struct {
	mock *MockDesignStore
}

// NewMockDesignStore creates a new mock instance
func NewMockDesignStore(ctrl *gomock.Controller) *MockDesignStore {
	mock := &MockDesignStore{ctrl: ctrl}
	mock.recorder = &MockDesignStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockDesignStore) EXPECT() *MockDesignStoreMockRecorder {
	return m.recorder
}

// Get mocks base method
func (m *MockDesignStore) Get(ctx context.Context, key string) (*domain.StoreEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(*domain.StoreEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockDesignStoreMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockDesignStore)(nil).Get), ctx, key)
}

// Set mocks base method
func (m *MockDesignStore) Set(ctx context.Context, key string, value string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, key, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// Set indicates an expected call of Set
func (mr *MockDesignStoreMockRecorder) Set(ctx, key, value interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockDesignStore)(nil).Set), ctx, key, value)
}

// Delete mocks base method
func (m *MockDesignStore) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockDesignStoreMockRecorder) Delete(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockDesignStore)(nil).Delete), ctx, key)
}

// List mocks base method
func (m *MockDesignStore) List(ctx context.Context, prefix string) ([]*domain.StoreEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, prefix)
	ret0, _ := ret[0].([]*domain.StoreEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockDesignStoreMockRecorder) List(ctx, prefix interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockDesignStore)(nil).List), ctx, prefix)
}
