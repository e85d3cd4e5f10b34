package api

import (
	"net/http"

	"habitcircle_backend/internal/service"
	"habitcircle_backend/pkg/auth"
	"habitcircle_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type commentTriggerRoutes struct {
	cs service.CommentNotifyServiceI
}

func NewCommentTriggerRoutes(handler *gin.RouterGroup, cs service.CommentNotifyServiceI, a *auth.TriggerAuth) {
	r := &commentTriggerRoutes{cs: cs}
	h := handler.Group("/triggers")
	h.Use(a.TriggerAuthMiddleware())
	{
		h.POST("/timelines/:post_id/comments/:comment_id", r.HandleCommentCreated)
	}
}

func (r *commentTriggerRoutes) HandleCommentCreated(c *gin.Context) {
	postID := c.Param("post_id")
	commentID := c.Param("comment_id")
	log := logger.Logger().With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("post_id", postID),
		zap.String("comment_id", commentID))

	var payload commentPayload
	if err := decodeBody(c, &payload); err != nil {
		log.Error("failed to decode comment create event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := r.cs.NotifyPostAuthor(c.Request.Context(), postID, payload.toModel(commentID)); err != nil {
		log.Error("comment notification failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
