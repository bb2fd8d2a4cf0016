package pkgmocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/ypamar/newsletter/pkg/mailer"
)

// MockMailer is a mock of Mailer interface
type MockMailer struct {
	ctrl     *gomock.Controller
	recorder *MockMailerMockRecorder
}

// MockMailerMockRecorder is the mock recorder for MockMailer
type MockMailerMockRecorder struct {
	mock *MockMailer
}

// NewMockMailer creates a new mock instance
func NewMockMailer(ctrl *gomock.Controller) *MockMailer {
	mock := &MockMailer{ctrl: ctrl}
	mock.recorder = &MockMailerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMailer) EXPECT() *MockMailerMockRecorder {
	return m.recorder
}

// SendTestEmail mocks base method
func (m *MockMailer) SendTestEmail(ctx context.Context, msg mailer.Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendTestEmail", ctx, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendTestEmail indicates an expected call of SendTestEmail
func (mr *MockMailerMockRecorder) SendTestEmail(ctx, msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendTestEmail", reflect.TypeOf((*MockMailer)(nil).SendTestEmail), ctx, msg)
}
