package service

import (
	"context"
	"fmt"

	"habitcircle_backend/internal/model"

	"go.uber.org/zap"
)

const fanoutTitle = "グループに新しい投稿がありました！"

type PostFanoutService struct {
	users    UserRepository
	notifier NotificationServiceI
	log      *zap.Logger
}

func NewPostFanoutService(users UserRepository, notifier NotificationServiceI, log *zap.Logger) *PostFanoutService {
	return &PostFanoutService{
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// NotifyGroup broadcasts a new-post notification to every other member of the
// post's group who has a push token.
func (s *PostFanoutService) NotifyGroup(ctx context.Context, post *model.TimelinePost) error {
	if post == nil {
		s.log.Info("post data missing, skipping fanout")
		return nil
	}
	if post.GroupID == "" {
		s.log.Info("post has no group, skipping fanout", zap.String("post_id", post.ID))
		return nil
	}

	members, err := s.users.ListUsersInGroup(ctx, post.GroupID)
	if err != nil {
		return fmt.Errorf("failed to list members of group %s: %w", post.GroupID, err)
	}

	var tokens []string
	for _, member := range members {
		if member.ID == post.UserID || member.FCMToken == "" {
			continue
		}
		tokens = append(tokens, member.FCMToken)
	}

	if len(tokens) == 0 {
		s.log.Info("no other members with push tokens in group",
			zap.String("group_id", post.GroupID))
		return nil
	}

	body := fmt.Sprintf("%sさんが新しく投稿しました。", post.Author.DisplayName)
	outcome, err := s.notifier.SendMulticast(ctx, tokens, fanoutTitle, body)
	if err != nil {
		return fmt.Errorf("failed to fan out to group %s: %w", post.GroupID, err)
	}

	s.log.Info("group fanout finished",
		zap.String("group_id", post.GroupID),
		zap.Int("success_count", outcome.SuccessCount),
		zap.Int("failure_count", outcome.FailureCount()))
	return nil
}

var _ PostFanoutServiceI = (*PostFanoutService)(nil)
