package handlers

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StageLabels serves the stage dropdown: a JSON array of the order's stage
// labels in production order. Unknown or malformed order ids yield [].
func (h *Handler) StageLabels(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Query("order_id"))
	if err != nil {
		c.JSON(http.StatusOK, []string{})
		return
	}
	labels, err := h.Store.StageLabels(c.Request.Context(), orderID)
	if err != nil {
		storeError(c, err, "stages")
		return
	}
	if labels == nil {
		labels = []string{}
	}
	c.JSON(http.StatusOK, labels)
}

func (h *Handler) GetStages(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	stages, err := h.Store.ListStages(c.Request.Context(), orderID)
	if err != nil {
		storeError(c, err, "stages")
		return
	}
	if stages == nil {
		stages = []models.Stage{}
	}
	c.JSON(http.StatusOK, stages)
}

// AddStage appends a stage to an order. Without an explicit position it goes
// after the existing ones.
func (h *Handler) AddStage(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Label    string `json:"label" binding:"required"`
		Position int    `json:"position" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Label) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stage label is required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetOrder(ctx, orderID); err != nil {
		storeError(c, err, "order")
		return
	}
	position := req.Position
	if position == 0 {
		existing, err := h.Store.ListStages(ctx, orderID)
		if err != nil {
			storeError(c, err, "stages")
			return
		}
		for _, st := range existing {
			position = max(position, st.Position)
		}
		position++
	}

	stage := models.Stage{
		ID:       primitive.NewObjectID(),
		OrderID:  orderID,
		Label:    strings.TrimSpace(req.Label),
		Position: position,
	}
	if err := h.Store.AddStage(ctx, &stage); err != nil {
		storeError(c, err, "stage")
		return
	}
	c.JSON(http.StatusCreated, stage)
}

// CreateTransfer records a digital-lab transfer. The stage must be one the
// dropdown offered for that order.
func (h *Handler) CreateTransfer(c *gin.Context) {
	var req struct {
		OrderID   string  `json:"orderId" binding:"required"`
		StageName string  `json:"stageName" binding:"required"`
		LabName   string  `json:"labName" binding:"required"`
		Cost      float64 `json:"cost" binding:"min=0"`
		SentAt    string  `json:"sentAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	sentAt := time.Now().UTC()
	if req.SentAt != "" {
		if sentAt, err = jalali.ParseDay(req.SentAt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentAt date"})
			return
		}
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetOrder(ctx, orderID); err != nil {
		storeError(c, err, "order")
		return
	}
	labels, err := h.Store.StageLabels(ctx, orderID)
	if err != nil {
		storeError(c, err, "stages")
		return
	}
	if !slices.Contains(labels, req.StageName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stage does not belong to this order"})
		return
	}

	transfer := models.DigitalLabTransfer{
		ID:        primitive.NewObjectID(),
		OrderID:   orderID,
		StageName: req.StageName,
		LabName:   strings.TrimSpace(req.LabName),
		Cost:      req.Cost,
		SentAt:    sentAt,
	}
	if err := h.Store.CreateTransfer(ctx, &transfer); err != nil {
		storeError(c, err, "transfer")
		return
	}
	c.JSON(http.StatusCreated, transfer)
}
