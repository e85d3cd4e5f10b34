package model

import "time"

// TimelinePost is a user's proof-of-completion post for a quest.
type TimelinePost struct {
	ID        string
	UserID    string
	QuestID   string
	GroupID   string
	Author    Author
	MediaURL  string
	MediaType string
	Comment   string
	CreatedAt time.Time
}

type Comment struct {
	ID        string
	UserID    string
	Author    Author
	Text      string
	CreatedAt time.Time
}
