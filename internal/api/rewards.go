package api

import (
	"net/http"

	"bias_notifier/internal/model"
	"bias_notifier/internal/service"
	"bias_notifier/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type rewardRoutes struct {
	ss service.SubscriptionServiceI
}

func NewRewardRoutes(handler *gin.RouterGroup, ss service.SubscriptionServiceI) {
	r := &rewardRoutes{ss: ss}
	h := handler.Group("/rewards")
	{
		h.POST("/watch", r.Watch)
		h.POST("/unwatch", r.Unwatch)
	}
}

type WatchRequest struct {
	FCMToken   string `json:"fcmToken"`
	XPRAccount string `json:"xprAccount"`
}

type WatchResponse struct {
	ID string `json:"id"`
}

func (r *rewardRoutes) Watch(c *gin.Context) {
	log := logger.Logger()

	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fcmToken"})
		return
	}
	if req.XPRAccount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing xprAccount"})
		return
	}

	watch := &model.RewardWatch{
		FCMToken:   req.FCMToken,
		XPRAccount: req.XPRAccount,
	}

	if err := r.ss.WatchRewards(c.Request.Context(), watch); err != nil {
		log.Error("failed to save reward watch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reward watch"})
		return
	}

	c.JSON(http.StatusCreated, WatchResponse{ID: watch.ID.String()})
}

type UnwatchRequest struct {
	FCMToken string `json:"fcmToken"`
}

func (r *rewardRoutes) Unwatch(c *gin.Context) {
	log := logger.Logger()

	var req UnwatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fcmToken"})
		return
	}

	if err := r.ss.UnwatchRewards(c.Request.Context(), req.FCMToken); err != nil {
		log.Error("failed to delete reward watches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reward watches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
