package service

import (
	"context"
	"errors"
	"time"

	"habitcircle_backend/internal/model"
)

var (
	ErrPostNotFound = errors.New("parent post not found")
	ErrUserNotFound = errors.New("user not found")
)

type ReminderServiceI interface {
	SendDailyReminders(ctx context.Context) error
}

type NotificationServiceI interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string) (*model.MulticastOutcome, error)
	SendSingle(ctx context.Context, token, title, body string) error
}

type ProfileSyncServiceI interface {
	SyncProfile(ctx context.Context, userID string, before, after *model.User) error
}

type DeletionServiceI interface {
	ProcessUserUpdate(ctx context.Context, userID string, before, after *model.User) error
}

type CommentNotifyServiceI interface {
	NotifyPostAuthor(ctx context.Context, postID string, comment *model.Comment) error
}

type PostFanoutServiceI interface {
	NotifyGroup(ctx context.Context, post *model.TimelinePost) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	ListUsersInGroup(ctx context.Context, groupID string) ([]*model.User, error)
}

type QuestRepository interface {
	ListQuests(ctx context.Context) ([]*model.Quest, error)
}

type TimelineRepository interface {
	ListPostsSince(ctx context.Context, since time.Time) ([]*model.TimelinePost, error)
	GetPost(ctx context.Context, postID string) (*model.TimelinePost, error)
}

// AuthoredContentRepository exposes every document carrying a given user's
// author snapshot. UpdateAuthorFields applies one atomic batch; callers are
// responsible for keeping batches under the store's write cap.
type AuthoredContentRepository interface {
	AuthoredDocPaths(ctx context.Context, userID string) ([]string, error)
	UpdateAuthorFields(ctx context.Context, paths []string, author model.Author) error
}

type GroupRepository interface {
	GroupIDsWithMember(ctx context.Context, userID string) ([]string, error)
	RemoveMemberFromGroups(ctx context.Context, groupIDs []string, userID string) error
}

type IdentityProvider interface {
	DeleteUser(ctx context.Context, uid string) error
}

type BlobStore interface {
	DeleteObject(ctx context.Context, path string) error
}
