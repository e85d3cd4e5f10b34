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

type timelineTriggerRoutes struct {
	fs service.PostFanoutServiceI
}

func NewTimelineTriggerRoutes(handler *gin.RouterGroup, fs service.PostFanoutServiceI, a *auth.TriggerAuth) {
	r := &timelineTriggerRoutes{fs: fs}
	h := handler.Group("/triggers")
	h.Use(a.TriggerAuthMiddleware())
	{
		h.POST("/timelines/:post_id", r.HandlePostCreated)
	}
}

func (r *timelineTriggerRoutes) HandlePostCreated(c *gin.Context) {
	postID := c.Param("post_id")
	log := logger.Logger().With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("post_id", postID))

	var payload timelinePayload
	if err := decodeBody(c, &payload); err != nil {
		log.Error("failed to decode post create event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := r.fs.NotifyGroup(c.Request.Context(), payload.toModel(postID)); err != nil {
		log.Error("post fanout failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
