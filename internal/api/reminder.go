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

type reminderRoutes struct {
	rs service.ReminderServiceI
}

func NewReminderRoutes(handler *gin.RouterGroup, rs service.ReminderServiceI, a *auth.TriggerAuth) {
	r := &reminderRoutes{rs: rs}
	h := handler.Group("/jobs")
	h.Use(a.TriggerAuthMiddleware())
	{
		h.POST("/daily-reminder", r.RunDailyReminder)
	}
}

// RunDailyReminder handles the scheduler tick. Processing errors are logged
// and swallowed; the pusher must never retry a finished pass.
func (r *reminderRoutes) RunDailyReminder(c *gin.Context) {
	log := logger.Logger().With(zap.String("invocation_id", uuid.NewString()))
	log.Info("daily reminder triggered")

	if err := r.rs.SendDailyReminders(c.Request.Context()); err != nil {
		log.Error("daily reminder failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
