package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MessageRepository is a mock type for the MessageRepository type
type MessageRepository struct {
	mock.Mock
}

func (_m *MessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	ret := _m.Called(ctx, message)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Message) error); ok {
		return rf(ctx, message)
	}

	return ret.Error(0)
}

func (_m *MessageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Message)
	}

	return r0, ret.Error(1)
}

func (_m *MessageRepository) ListMessages(ctx context.Context, filter models.MessageFilter, limit int, offset int) ([]*models.Message, error) {
	ret := _m.Called(ctx, filter, limit, offset)

	var r0 []*models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Message)
	}

	return r0, ret.Error(1)
}

func (_m *MessageRepository) CountMessages(ctx context.Context, filter models.MessageFilter) (int64, error) {
	ret := _m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MessageRepository) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	ret := _m.Called(ctx, id, read)
	return ret.Error(0)
}

func (_m *MessageRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewMessageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageRepository {
	m := &MessageRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
