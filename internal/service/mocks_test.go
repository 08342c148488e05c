package service

import (
	"context"
	"time"

	"clubhouse/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdateMembershipStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, message *model.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	args := m.Called(ctx, id)
	message, _ := args.Get(0).(*model.Message)
	return message, args.Error(1)
}

func (m *mockMessageRepo) ListWithAuthors(ctx context.Context) ([]model.MessageWithAuthor, error) {
	args := m.Called(ctx)
	messages, _ := args.Get(0).([]model.MessageWithAuthor)
	return messages, args.Error(1)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) Find(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
