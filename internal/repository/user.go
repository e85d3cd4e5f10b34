package repository

import (
	"context"

	"habitcircle_backend/internal/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userDoc struct {
	DisplayName           string   `firestore:"displayName"`
	PhotoURL              string   `firestore:"photoUrl"`
	FCMToken              string   `firestore:"fcmToken"`
	GroupID               string   `firestore:"groupId"`
	ParticipatingQuestIDs []string `firestore:"participatingQuestIds"`
	BlockedUserIDs        []string `firestore:"blockedUserIds"`
	IsDeleted             bool     `firestore:"isDeleted"`
}

func (d *userDoc) toModel(id string) *model.User {
	return &model.User{
		ID:                    id,
		DisplayName:           d.DisplayName,
		PhotoURL:              d.PhotoURL,
		FCMToken:              d.FCMToken,
		GroupID:               d.GroupID,
		ParticipatingQuestIDs: d.ParticipatingQuestIDs,
		BlockedUserIDs:        d.BlockedUserIDs,
		IsDeleted:             d.IsDeleted,
	}
}

func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	return r.collectUsers(r.client.Collection(usersCollection).Documents(ctx))
}

func (r *Repository) ListUsersInGroup(ctx context.Context, groupID string) ([]*model.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("groupId", "==", groupID).
		Documents(ctx)
	return r.collectUsers(iter)
}

func (r *Repository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get user %s", userID)
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, errors.Wrapf(err, "failed to decode user %s", userID)
	}
	return d.toModel(doc.Ref.ID), nil
}

func (r *Repository) collectUsers(iter *firestore.DocumentIterator) ([]*model.User, error) {
	defer iter.Stop()

	var users []*model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate users")
		}

		var d userDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, errors.Wrapf(err, "failed to decode user %s", doc.Ref.ID)
		}
		users = append(users, d.toModel(doc.Ref.ID))
	}
	return users, nil
}
