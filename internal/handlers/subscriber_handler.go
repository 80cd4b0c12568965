package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/delizza/mailing-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriberHandler handles subscriber-related HTTP requests
type SubscriberHandler struct {
	subscriberService services.SubscriberService
}

// NewSubscriberHandler creates a new SubscriberHandler
func NewSubscriberHandler(subscriberService services.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscriberService: subscriberService}
}

// CreateSubscriber handles POST /subscribers
func (h *SubscriberHandler) CreateSubscriber(c *gin.Context) {
	var subscriber models.Subscriber
	if err := c.ShouldBindJSON(&subscriber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if subscriber.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.subscriberService.CreateSubscriber(c.Request.Context(), &subscriber); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscriber"})
		return
	}

	c.JSON(http.StatusCreated, subscriber)
}

// GetSubscriberByID handles GET /subscribers/:id
func (h *SubscriberHandler) GetSubscriberByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	subscriber, err := h.subscriberService.GetSubscriberByID(c.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscriber"})
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

// GetSubscriberByEmail handles GET /subscribers/email/:email
func (h *SubscriberHandler) GetSubscriberByEmail(c *gin.Context) {
	subscriber, err := h.subscriberService.GetSubscriberByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscriber"})
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

// GetAllSubscribers handles GET /subscribers
func (h *SubscriberHandler) GetAllSubscribers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	subscribers, err := h.subscriberService.GetAllSubscribers(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscribers"})
		return
	}

	c.JSON(http.StatusOK, subscribers)
}

// GetSubscriberCount handles GET /subscribers/count
func (h *SubscriberHandler) GetSubscriberCount(c *gin.Context) {
	count, err := h.subscriberService.GetSubscriberCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateSubscriber handles PUT /subscribers/:id
func (h *SubscriberHandler) UpdateSubscriber(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var subscriber models.Subscriber
	if err := c.ShouldBindJSON(&subscriber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subscriber.ID = id

	if err := h.subscriberService.UpdateSubscriber(c.Request.Context(), &subscriber); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscriber"})
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

// DeleteSubscriber handles DELETE /subscribers/:id
func (h *SubscriberHandler) DeleteSubscriber(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.subscriberService.DeleteSubscriber(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscriber"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber deleted"})
}
