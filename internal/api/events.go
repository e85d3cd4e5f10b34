package api

import (
	"time"

	"habitcircle_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Trigger payloads carry document snapshots as the store serializes them;
// update events hold a before/after pair, create events the created document.

type userPayload struct {
	DisplayName           string   `json:"displayName"`
	PhotoURL              string   `json:"photoUrl"`
	FCMToken              string   `json:"fcmToken"`
	GroupID               string   `json:"groupId"`
	ParticipatingQuestIDs []string `json:"participatingQuestIds"`
	BlockedUserIDs        []string `json:"blockedUserIds"`
	IsDeleted             bool     `json:"isDeleted"`
}

func (p *userPayload) toModel(id string) *model.User {
	if p == nil {
		return nil
	}
	return &model.User{
		ID:                    id,
		DisplayName:           p.DisplayName,
		PhotoURL:              p.PhotoURL,
		FCMToken:              p.FCMToken,
		GroupID:               p.GroupID,
		ParticipatingQuestIDs: p.ParticipatingQuestIDs,
		BlockedUserIDs:        p.BlockedUserIDs,
		IsDeleted:             p.IsDeleted,
	}
}

type userUpdateEvent struct {
	Before *userPayload `json:"before"`
	After  *userPayload `json:"after"`
}

type authorPayload struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

type timelinePayload struct {
	UserID    string        `json:"userId"`
	QuestID   string        `json:"questId"`
	GroupID   string        `json:"groupId"`
	Author    authorPayload `json:"author"`
	MediaURL  string        `json:"mediaUrl"`
	MediaType string        `json:"mediaType"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p *timelinePayload) toModel(id string) *model.TimelinePost {
	return &model.TimelinePost{
		ID:      id,
		UserID:  p.UserID,
		QuestID: p.QuestID,
		GroupID: p.GroupID,
		Author: model.Author{
			DisplayName: p.Author.DisplayName,
			PhotoURL:    p.Author.PhotoURL,
		},
		MediaURL:  p.MediaURL,
		MediaType: p.MediaType,
		Comment:   p.Comment,
		CreatedAt: p.CreatedAt,
	}
}

type commentPayload struct {
	UserID    string        `json:"userId"`
	Author    authorPayload `json:"author"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p *commentPayload) toModel(id string) *model.Comment {
	return &model.Comment{
		ID:     id,
		UserID: p.UserID,
		Author: model.Author{
			DisplayName: p.Author.DisplayName,
			PhotoURL:    p.Author.PhotoURL,
		},
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
	}
}

func decodeBody(c *gin.Context, v interface{}) error {
	data, err := c.GetRawData()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
