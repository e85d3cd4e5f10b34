package service

import (
	"context"
	"fmt"

	"habitcircle_backend/internal/model"

	"go.uber.org/zap"
)

// maxBatchWrites is the store's hard limit on writes per atomic batch.
const maxBatchWrites = 500

type ProfileSyncService struct {
	content AuthoredContentRepository
	log     *zap.Logger
}

func NewProfileSyncService(content AuthoredContentRepository, log *zap.Logger) *ProfileSyncService {
	return &ProfileSyncService{
		content: content,
		log:     log,
	}
}

// SyncProfile re-applies the user's profile fields to every post and comment
// that embeds their author snapshot. Writes are committed in groups of at most
// maxBatchWrites; there is no atomicity across groups, and re-running after a
// partial failure converges to the same final state.
func (s *ProfileSyncService) SyncProfile(ctx context.Context, userID string, before, after *model.User) error {
	if before == nil || after == nil {
		s.log.Info("user snapshot missing, skipping profile sync", zap.String("user_id", userID))
		return nil
	}

	if before.DisplayName == after.DisplayName && before.PhotoURL == after.PhotoURL {
		return nil
	}

	author := model.Author{
		DisplayName: after.DisplayName,
		PhotoURL:    after.PhotoURL,
	}

	paths, err := s.content.AuthoredDocPaths(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to collect authored documents for user %s: %w", userID, err)
	}

	for start := 0; start < len(paths); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(paths) {
			end = len(paths)
		}
		if err := s.content.UpdateAuthorFields(ctx, paths[start:end], author); err != nil {
			return fmt.Errorf("failed to commit author updates for user %s: %w", userID, err)
		}
	}

	s.log.Info("profile synced",
		zap.String("user_id", userID),
		zap.Int("document_count", len(paths)))
	return nil
}

var _ ProfileSyncServiceI = (*ProfileSyncService)(nil)
