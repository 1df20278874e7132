package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// finalShipmentNote is written on the event recorded by DeliverOrder.
const finalShipmentNote = "ارسال نهایی"

type eventRequest struct {
	Type       string `json:"type" binding:"required"`
	Direction  string `json:"direction"`
	HappenedAt string `json:"happenedAt"`
	Notes      string `json:"notes"`
}

// GetEvents returns the order's timeline, oldest first.
func (h *Handler) GetEvents(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Store.GetOrder(ctx, id); err != nil {
		storeError(c, err, "order")
		return
	}
	events, err := h.Store.ListEvents(ctx, id)
	if err != nil {
		storeError(c, err, "events")
		return
	}
	if events == nil {
		events = []models.OrderEvent{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) AddEvent(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidEventType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event type"})
		return
	}
	if req.Direction == "" {
		req.Direction = models.DirectionInternal
	}
	if !models.ValidDirection(req.Direction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid direction"})
		return
	}
	now := time.Now().UTC()
	happenedAt := now
	if strings.TrimSpace(req.HappenedAt) != "" {
		t, err := jalali.ParseDay(req.HappenedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid happenedAt"})
			return
		}
		happenedAt = t
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetOrder(ctx, id); err != nil {
		storeError(c, err, "order")
		return
	}
	event := models.OrderEvent{
		ID:         primitive.NewObjectID(),
		OrderID:    id,
		Type:       req.Type,
		Direction:  req.Direction,
		HappenedAt: happenedAt,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  now,
	}
	if err := h.Store.AddEvent(ctx, &event); err != nil {
		storeError(c, err, "event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// DeliverOrder marks the order delivered on the given shipping day and
// records the final shipment back to the clinic on its timeline.
func (h *Handler) DeliverOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		ShippedDate string `json:"shippedDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shippedDate is required"})
		return
	}
	shipped, err := jalali.ParseDay(req.ShippedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shippedDate"})
		return
	}

	ctx := c.Request.Context()
	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		storeError(c, err, "order")
		return
	}
	order.ShippedDate = &shipped
	order.Status = models.StatusDelivered
	if err := h.Store.SaveOrder(ctx, order); err != nil {
		storeError(c, err, "order")
		return
	}

	event := models.OrderEvent{
		ID:         primitive.NewObjectID(),
		OrderID:    id,
		Type:       models.EventFinalShipment,
		Direction:  models.DirectionLabToClinic,
		HappenedAt: shipped,
		Notes:      finalShipmentNote,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Store.AddEvent(ctx, &event); err != nil {
		storeError(c, err, "event")
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(*order))
}
