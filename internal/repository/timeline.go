package repository

import (
	"context"
	"strings"
	"time"

	"habitcircle_backend/internal/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type authorDoc struct {
	DisplayName string `firestore:"displayName"`
	PhotoURL    string `firestore:"photoUrl"`
}

type timelineDoc struct {
	UserID    string    `firestore:"userId"`
	QuestID   string    `firestore:"questId"`
	GroupID   string    `firestore:"groupId"`
	Author    authorDoc `firestore:"author"`
	MediaURL  string    `firestore:"mediaUrl"`
	MediaType string    `firestore:"mediaType"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func (d *timelineDoc) toModel(id string) *model.TimelinePost {
	return &model.TimelinePost{
		ID:      id,
		UserID:  d.UserID,
		QuestID: d.QuestID,
		GroupID: d.GroupID,
		Author: model.Author{
			DisplayName: d.Author.DisplayName,
			PhotoURL:    d.Author.PhotoURL,
		},
		MediaURL:  d.MediaURL,
		MediaType: d.MediaType,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

func (r *Repository) ListPostsSince(ctx context.Context, since time.Time) ([]*model.TimelinePost, error) {
	iter := r.client.Collection(timelinesCollection).
		Where("createdAt", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	var posts []*model.TimelinePost
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate posts")
		}

		var d timelineDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, errors.Wrapf(err, "failed to decode post %s", doc.Ref.ID)
		}
		posts = append(posts, d.toModel(doc.Ref.ID))
	}
	return posts, nil
}

func (r *Repository) GetPost(ctx context.Context, postID string) (*model.TimelinePost, error) {
	doc, err := r.client.Collection(timelinesCollection).Doc(postID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get post %s", postID)
	}

	var d timelineDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, errors.Wrapf(err, "failed to decode post %s", postID)
	}
	return d.toModel(doc.Ref.ID), nil
}

// AuthoredDocPaths returns the store paths of every post and every comment
// (across all posts, via a collection-group query) authored by the user.
func (r *Repository) AuthoredDocPaths(ctx context.Context, userID string) ([]string, error) {
	var paths []string

	postsIter := r.client.Collection(timelinesCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	paths, err := appendDocPaths(paths, postsIter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect posts for user %s", userID)
	}

	commentsIter := r.client.CollectionGroup(commentsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	paths, err = appendDocPaths(paths, commentsIter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect comments for user %s", userID)
	}

	return paths, nil
}

// UpdateAuthorFields rewrites the embedded author snapshot of the given
// documents in one atomic batch. Only the author fields are touched.
func (r *Repository) UpdateAuthorFields(ctx context.Context, paths []string, author model.Author) error {
	batch := r.client.Batch()
	for _, path := range paths {
		batch.Update(r.client.Doc(path), []firestore.Update{
			{Path: "author.displayName", Value: author.DisplayName},
			{Path: "author.photoUrl", Value: author.PhotoURL},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit author update batch")
	}
	return nil
}

func appendDocPaths(paths []string, iter *firestore.DocumentIterator) ([]string, error) {
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		paths = append(paths, relativePath(doc.Ref))
	}
	return paths, nil
}

// relativePath strips the projects/<p>/databases/<d>/documents/ prefix so the
// path can be resolved again with client.Doc.
func relativePath(ref *firestore.DocumentRef) string {
	parts := strings.SplitN(ref.Path, "/documents/", 2)
	return parts[len(parts)-1]
}
