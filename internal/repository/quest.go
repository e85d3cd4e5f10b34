package repository

import (
	"context"

	"habitcircle_backend/internal/model"

	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

type questDoc struct {
	Title       string `firestore:"title"`
	Description string `firestore:"description"`
	Type        string `firestore:"type"`
	Frequency   string `firestore:"frequency"`
	GroupID     string `firestore:"groupId"`
	Threshold   int    `firestore:"threshold"`
}

func (r *Repository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	iter := r.client.Collection(questsCollection).Documents(ctx)
	defer iter.Stop()

	var quests []*model.Quest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate quests")
		}

		var d questDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, errors.Wrapf(err, "failed to decode quest %s", doc.Ref.ID)
		}
		quests = append(quests, &model.Quest{
			ID:          doc.Ref.ID,
			Title:       d.Title,
			Description: d.Description,
			Type:        d.Type,
			Frequency:   model.Frequency(d.Frequency),
			GroupID:     d.GroupID,
			Threshold:   d.Threshold,
		})
	}
	return quests, nil
}
