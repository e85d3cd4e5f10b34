package mocks

import (
	"context"
	"time"

	"habitcircle_backend/internal/model"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersInGroup(ctx context.Context, groupID string) ([]*model.User, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) ListPostsSince(ctx context.Context, since time.Time) ([]*model.TimelinePost, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TimelinePost), args.Error(1)
}

func (m *MockTimelineRepository) GetPost(ctx context.Context, postID string) (*model.TimelinePost, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimelinePost), args.Error(1)
}

type MockAuthoredContentRepository struct {
	mock.Mock
}

func (m *MockAuthoredContentRepository) AuthoredDocPaths(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthoredContentRepository) UpdateAuthorFields(ctx context.Context, paths []string, author model.Author) error {
	args := m.Called(ctx, paths, author)
	return args.Error(0)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GroupIDsWithMember(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGroupRepository) RemoveMemberFromGroups(ctx context.Context, groupIDs []string, userID string) error {
	args := m.Called(ctx, groupIDs, userID)
	return args.Error(0)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) DeleteObject(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type MockPushClient struct {
	mock.Mock
}

func (m *MockPushClient) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *MockPushClient) SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.BatchResponse), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendMulticast(ctx context.Context, tokens []string, title, body string) (*model.MulticastOutcome, error) {
	args := m.Called(ctx, tokens, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MulticastOutcome), args.Error(1)
}

func (m *MockNotificationService) SendSingle(ctx context.Context, token, title, body string) error {
	args := m.Called(ctx, token, title, body)
	return args.Error(0)
}
