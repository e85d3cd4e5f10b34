package model

type User struct {
	ID                    string
	DisplayName           string
	PhotoURL              string
	FCMToken              string
	GroupID               string
	ParticipatingQuestIDs []string
	BlockedUserIDs        []string
	IsDeleted             bool
}

// Author is the denormalized profile snapshot embedded in posts and comments.
// It must always mirror the owning user's current DisplayName/PhotoURL.
type Author struct {
	DisplayName string
	PhotoURL    string
}

type Group struct {
	ID      string
	Members []string
}
