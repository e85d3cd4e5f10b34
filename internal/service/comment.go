package service

import (
	"context"
	"errors"
	"fmt"

	"habitcircle_backend/internal/model"
	"habitcircle_backend/internal/repository"

	"go.uber.org/zap"
)

const commentTitle = "あなたの投稿にコメントがつきました！"

type CommentNotifyService struct {
	timelines TimelineRepository
	users     UserRepository
	notifier  NotificationServiceI
	log       *zap.Logger
}

func NewCommentNotifyService(
	timelines TimelineRepository,
	users UserRepository,
	notifier NotificationServiceI,
	log *zap.Logger,
) *CommentNotifyService {
	return &CommentNotifyService{
		timelines: timelines,
		users:     users,
		notifier:  notifier,
		log:       log,
	}
}

// NotifyPostAuthor sends the post author a notification about a new comment.
// Comments by the author on their own post are suppressed. A missing parent
// post is an integrity error; the event is dropped, not retried.
func (s *CommentNotifyService) NotifyPostAuthor(ctx context.Context, postID string, comment *model.Comment) error {
	if comment == nil {
		s.log.Info("comment data missing, skipping notification", zap.String("post_id", postID))
		return nil
	}

	post, err := s.timelines.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("post %s: %w", postID, ErrPostNotFound)
		}
		return fmt.Errorf("failed to load parent post %s: %w", postID, err)
	}

	if comment.UserID == post.UserID {
		s.log.Info("author commented on own post, no notification needed",
			zap.String("post_id", postID))
		return nil
	}

	author, err := s.users.GetUser(ctx, post.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("post author %s: %w", post.UserID, ErrUserNotFound)
		}
		return fmt.Errorf("failed to load post author %s: %w", post.UserID, err)
	}

	if author.FCMToken == "" {
		s.log.Info("post author has no push token, skipping notification",
			zap.String("user_id", post.UserID))
		return nil
	}

	return s.notifier.SendSingle(ctx, author.FCMToken, commentTitle, comment.Text)
}

var _ CommentNotifyServiceI = (*CommentNotifyService)(nil)
