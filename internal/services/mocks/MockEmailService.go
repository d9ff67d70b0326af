package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

// MockEmailService is a mock type for the EmailService type
type MockEmailService struct {
	mock.Mock
}

func (_m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := _m.Called(ctx, req)
	return ret.Error(0)
}

func (_m *MockEmailService) GetSendGridClient() *sendgrid.Client {
	ret := _m.Called()

	var r0 *sendgrid.Client
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sendgrid.Client)
	}

	return r0
}

func NewMockEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEmailService {
	m := &MockEmailService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
