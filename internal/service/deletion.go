package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"habitcircle_backend/internal/model"

	"go.uber.org/zap"
)

// profileObjectPrefix is where the app stores uploaded profile photos; objects
// outside it are never deleted by the cascade.
const profileObjectPrefix = "profiles/"

type DeletionService struct {
	identity    IdentityProvider
	blobs       BlobStore
	groups      GroupRepository
	storageHost string
	log         *zap.Logger
}

func NewDeletionService(
	identity IdentityProvider,
	blobs BlobStore,
	groups GroupRepository,
	storageHost string,
	log *zap.Logger,
) *DeletionService {
	return &DeletionService{
		identity:    identity,
		blobs:       blobs,
		groups:      groups,
		storageHost: storageHost,
		log:         log,
	}
}

// ProcessUserUpdate runs the deletion cascade when a user update flips
// isDeleted from false to true. Identity removal gates everything: if it
// fails, no cleanup runs and the user stays marked for deletion so a later
// re-drive can try again. Photo and group cleanup are each best-effort and
// independent of one another.
func (s *DeletionService) ProcessUserUpdate(ctx context.Context, userID string, before, after *model.User) error {
	if before == nil || after == nil {
		s.log.Info("user snapshot missing, skipping deletion check", zap.String("user_id", userID))
		return nil
	}
	if !after.IsDeleted || before.IsDeleted {
		return nil
	}

	s.log.Info("user marked for deletion, starting cascade", zap.String("user_id", userID))

	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete identity for user %s: %w", userID, err)
	}
	s.log.Info("identity deleted", zap.String("user_id", userID))

	s.deleteProfilePhoto(ctx, userID, before.PhotoURL)
	s.removeFromGroups(ctx, userID)

	return nil
}

func (s *DeletionService) deleteProfilePhoto(ctx context.Context, userID, photoURL string) {
	if photoURL == "" {
		return
	}

	path, hosted, err := objectPathFromURL(photoURL, s.storageHost)
	if err != nil {
		s.log.Warn("failed to parse photo url, skipping photo cleanup",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	if !hosted {
		s.log.Info("photo url is external, skipping photo cleanup",
			zap.String("user_id", userID))
		return
	}
	if !strings.HasPrefix(path, profileObjectPrefix) {
		s.log.Warn("unexpected photo object path, skipping photo cleanup",
			zap.String("user_id", userID),
			zap.String("path", path))
		return
	}

	if err := s.blobs.DeleteObject(ctx, path); err != nil {
		s.log.Warn("failed to delete photo object",
			zap.String("user_id", userID),
			zap.String("path", path),
			zap.Error(err))
		return
	}
	s.log.Info("photo object deleted",
		zap.String("user_id", userID),
		zap.String("path", path))
}

func (s *DeletionService) removeFromGroups(ctx context.Context, userID string) {
	groupIDs, err := s.groups.GroupIDsWithMember(ctx, userID)
	if err != nil {
		s.log.Warn("failed to find groups for user",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	if len(groupIDs) == 0 {
		return
	}

	if err := s.groups.RemoveMemberFromGroups(ctx, groupIDs, userID); err != nil {
		s.log.Warn("failed to remove user from groups",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	s.log.Info("removed user from groups",
		zap.String("user_id", userID),
		zap.Int("group_count", len(groupIDs)))
}

// objectPathFromURL extracts the storage object path from a download URL of
// the form https://<host>/v0/b/<bucket>/o/<escaped path>?.... hosted is false
// when the URL points at a different host.
func objectPathFromURL(rawURL, host string) (path string, hosted bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, err
	}
	if u.Host != host {
		return "", false, nil
	}

	const marker = "/o/"
	escaped := u.EscapedPath()
	idx := strings.Index(escaped, marker)
	if idx < 0 {
		return "", false, fmt.Errorf("no object segment in url path %q", escaped)
	}

	path, err = url.PathUnescape(escaped[idx+len(marker):])
	if err != nil {
		return "", false, err
	}
	if path == "" {
		return "", false, fmt.Errorf("empty object path in url %q", rawURL)
	}
	return path, true, nil
}

var _ DeletionServiceI = (*DeletionService)(nil)
