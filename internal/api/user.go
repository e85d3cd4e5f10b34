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

type userTriggerRoutes struct {
	ps service.ProfileSyncServiceI
	ds service.DeletionServiceI
}

func NewUserTriggerRoutes(handler *gin.RouterGroup, ps service.ProfileSyncServiceI, ds service.DeletionServiceI, a *auth.TriggerAuth) {
	r := &userTriggerRoutes{ps: ps, ds: ds}
	h := handler.Group("/triggers")
	h.Use(a.TriggerAuthMiddleware())
	{
		h.POST("/users/:user_id", r.HandleUserUpdated)
	}
}

// HandleUserUpdated fans one user-update event into profile sync and the
// deletion cascade. The two run independently; a failure in one is logged and
// never blocks or aborts the other.
func (r *userTriggerRoutes) HandleUserUpdated(c *gin.Context) {
	userID := c.Param("user_id")
	log := logger.Logger().With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("user_id", userID))

	var event userUpdateEvent
	if err := decodeBody(c, &event); err != nil {
		log.Error("failed to decode user update event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	before := event.Before.toModel(userID)
	after := event.After.toModel(userID)

	if err := r.ps.SyncProfile(c.Request.Context(), userID, before, after); err != nil {
		log.Error("profile sync failed", zap.Error(err))
	}

	if err := r.ds.ProcessUserUpdate(c.Request.Context(), userID, before, after); err != nil {
		log.Error("deletion cascade failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
