package api

import (
	"net/http"

	"bias_notifier/internal/service"
	"bias_notifier/pkg/auth"
	"bias_notifier/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type cronRoutes struct {
	reminders service.ReminderServiceI
	rewards   service.RewardServiceI
	a         *auth.CronAuth
}

// NewCronRoutes registers the trigger endpoints the external cron hits.
// Both run behind the shared-secret check.
func NewCronRoutes(handler *gin.RouterGroup, reminders service.ReminderServiceI, rewards service.RewardServiceI, a *auth.CronAuth) {
	r := &cronRoutes{reminders: reminders, rewards: rewards, a: a}
	h := handler.Group("/cron")
	h.Use(a.CronAuthMiddleware())
	{
		h.GET("/notifications", r.RunNotifications)
		h.GET("/rewards", r.RunRewardCheck)
	}
}

type CycleResponse struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

func (r *cronRoutes) RunNotifications(c *gin.Context) {
	log := logger.Logger()

	result, err := r.reminders.RunCycle(c.Request.Context())
	if err != nil {
		log.Error("reminder cycle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notifications"})
		return
	}

	c.JSON(http.StatusOK, CycleResponse{
		Processed: result.Processed,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Skipped:   result.Skipped,
	})
}

func (r *cronRoutes) RunRewardCheck(c *gin.Context) {
	log := logger.Logger()

	result, err := r.rewards.RunCycle(c.Request.Context())
	if err != nil {
		log.Error("reward cycle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rewards"})
		return
	}

	c.JSON(http.StatusOK, CycleResponse{
		Processed: result.Processed,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Skipped:   result.Skipped,
	})
}
