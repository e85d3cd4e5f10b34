package repository

import (
	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

const (
	usersCollection     = "users"
	questsCollection    = "quests"
	groupsCollection    = "groups"
	timelinesCollection = "timelines"
	commentsCollection  = "comments"
)

type Repository struct {
	client *firestore.Client
}

// New wraps an already-constructed Firestore client. The client is injected so
// tests and callers control its lifecycle; no package-level handle exists.
func New(client *firestore.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Close() error {
	return r.client.Close()
}
