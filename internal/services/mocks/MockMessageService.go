package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMessageService is a mock type for the MessageService type
type MockMessageService struct {
	mock.Mock
}

func (_m *MockMessageService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Message)
	}

	return r0, ret.Error(1)
}

func (_m *MockMessageService) SubmitEstimate(ctx context.Context, req *models.EstimateRequest) (*models.Message, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Message)
	}

	return r0, ret.Error(1)
}

func (_m *MockMessageService) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Message)
	}

	return r0, ret.Error(1)
}

func (_m *MockMessageService) ListMessages(ctx context.Context, filter models.MessageFilter) (*models.MessagePage, error) {
	ret := _m.Called(ctx, filter)

	var r0 *models.MessagePage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MessagePage)
	}

	return r0, ret.Error(1)
}

func (_m *MockMessageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	ret := _m.Called(ctx, id, read)
	return ret.Error(0)
}

func (_m *MockMessageService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewMockMessageService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageService {
	m := &MockMessageService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
