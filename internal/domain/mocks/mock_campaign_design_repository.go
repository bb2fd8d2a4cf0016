package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/ypamar/newsletter/internal/domain"
)

// MockCampaignDesignRepository is a mock of CampaignDesignRepository interface
type MockCampaignDesignRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCampaignDesignRepositoryMockRecorder
}

// MockCampaignDesignRepositoryMockRecorder is the mock recorder for MockCampaignDesignRepository
type MockCampaignDesignRepositoryMockRecorder struct {
	mock *MockCampaignDesignRepository
}

// NewMockCampaignDesignRepository creates a new mock instance
func NewMockCampaignDesignRepository(ctrl *gomock.Controller) *MockCampaignDesignRepository {
	mock := &MockCampaignDesignRepository{ctrl: ctrl}
	mock.recorder = &MockCampaignDesignRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCampaignDesignRepository) EXPECT() *MockCampaignDesignRepositoryMockRecorder {
	return m.recorder
}

// GetCampaignDesign mocks base method
func (m *MockCampaignDesignRepository) GetCampaignDesign(ctx context.Context, campaignID string) (*domain.CampaignDesign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCampaignDesign", ctx, campaignID)
	ret0, _ := ret[0].(*domain.CampaignDesign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCampaignDesign indicates an expected call of GetCampaignDesign
func (mr *MockCampaignDesignRepositoryMockRecorder) GetCampaignDesign(ctx, campaignID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCampaignDesign", reflect.TypeOf((*MockCampaignDesignRepository)(nil).GetCampaignDesign), ctx, campaignID)
}

// SaveCampaignDesign mocks base method
func (m *MockCampaignDesignRepository) SaveCampaignDesign(ctx context.Context, design *domain.CampaignDesign) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveCampaignDesign", ctx, design)
	ret0, _ := ret[0].(error)
	return ret0
}

// SaveCampaignDesign indicates an expected call of SaveCampaignDesign
func (mr *MockCampaignDesignRepositoryMockRecorder) SaveCampaignDesign(ctx, design interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveCampaignDesign", reflect.TypeOf((*MockCampaignDesignRepository)(nil).SaveCampaignDesign), ctx, design)
}
