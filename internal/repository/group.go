package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

func (r *Repository) GroupIDsWithMember(ctx context.Context, userID string) ([]string, error) {
	iter := r.client.Collection(groupsCollection).
		Where("members", "array-contains", userID).
		Documents(ctx)
	defer iter.Stop()

	var groupIDs []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate groups")
		}
		groupIDs = append(groupIDs, doc.Ref.ID)
	}
	return groupIDs, nil
}

// RemoveMemberFromGroups drops the user from each group's member array in one
// atomic batch.
func (r *Repository) RemoveMemberFromGroups(ctx context.Context, groupIDs []string, userID string) error {
	batch := r.client.Batch()
	for _, groupID := range groupIDs {
		batch.Update(r.client.Collection(groupsCollection).Doc(groupID), []firestore.Update{
			{Path: "members", Value: firestore.ArrayRemove(userID)},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit group membership removal")
	}
	return nil
}
