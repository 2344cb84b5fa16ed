package api

import (
	"net/http"
	"time"

	"bias_notifier/internal/model"
	"bias_notifier/internal/service"
	"bias_notifier/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type subscriptionRoutes struct {
	ss service.SubscriptionServiceI
}

func NewSubscriptionRoutes(handler *gin.RouterGroup, ss service.SubscriptionServiceI) {
	r := &subscriptionRoutes{ss: ss}
	h := handler.Group("/subscriptions")
	{
		h.POST("", r.Subscribe)
		h.POST("/unsubscribe", r.Unsubscribe)
	}
}

type SubscribeRequest struct {
	FCMToken        string    `json:"fcmToken"`
	BiasName        string    `json:"biasName"`
	BiasTone        string    `json:"biasTone"`
	NotifyAt        time.Time `json:"notifyAt"`
	IntervalMinutes int       `json:"intervalMinutes"`
}

type SubscribeResponse struct {
	ID string `json:"id"`
}

func (r *subscriptionRoutes) Subscribe(c *gin.Context) {
	log := logger.Logger()

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fcmToken"})
		return
	}
	if req.IntervalMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intervalMinutes must not be negative"})
		return
	}

	sub := &model.Subscription{
		FCMToken:        req.FCMToken,
		BiasName:        req.BiasName,
		BiasTone:        req.BiasTone,
		NotifyAt:        req.NotifyAt.UTC(),
		IntervalMinutes: req.IntervalMinutes,
	}

	if err := r.ss.Subscribe(c.Request.Context(), sub); err != nil {
		log.Error("failed to save subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save subscription"})
		return
	}

	c.JSON(http.StatusCreated, SubscribeResponse{ID: sub.ID.String()})
}

type UnsubscribeRequest struct {
	FCMToken string `json:"fcmToken"`
}

func (r *subscriptionRoutes) Unsubscribe(c *gin.Context) {
	log := logger.Logger()

	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fcmToken"})
		return
	}

	if err := r.ss.Unsubscribe(c.Request.Context(), req.FCMToken); err != nil {
		log.Error("failed to delete subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
