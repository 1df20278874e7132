package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/middleware"
	"github.com/harentsoaR/dentlab-api/internal/models"
	"github.com/harentsoaR/dentlab-api/internal/services"
	"github.com/harentsoaR/dentlab-api/internal/stageloader"
	"github.com/harentsoaR/dentlab-api/internal/store"
	"github.com/harentsoaR/dentlab-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	Store    store.Store
	Tokens   *utils.TokenManager
	Notifier services.Notifier
}

func NewHandler(st store.Store, tokens *utils.TokenManager, notifier services.Notifier) *Handler {
	return &Handler{
		Store:    st,
		Tokens:   tokens,
		Notifier: notifier,
	}
}

// RegisterRoutes mounts every endpoint on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	// Consumed by the stage dropdown of the digital-lab transfer form.
	r.GET(stageloader.StagesPath, middleware.AuthMiddleware(h.Tokens), h.StageLabels)

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(h.Tokens)) // Protect all /api routes
	{
		apiRoutes.GET("/me", h.GetCurrentUser)
		apiRoutes.PUT("/me", h.UpdateCurrentUser)

		apiRoutes.GET("/orders", h.GetOrders)
		apiRoutes.POST("/orders", h.CreateOrder)
		apiRoutes.GET("/orders/:id", h.GetOrder)
		apiRoutes.PUT("/orders/:id", h.UpdateOrder)
		apiRoutes.PATCH("/orders/:id/status",
			middleware.RequireRole(models.RoleAdmin, models.RoleTechnician), h.UpdateOrderStatus)

		apiRoutes.POST("/orders/:id/deliver",
			middleware.RequireRole(models.RoleAdmin, models.RoleTechnician), h.DeliverOrder)
		apiRoutes.GET("/orders/:id/events", h.GetEvents)
		apiRoutes.POST("/orders/:id/events", h.AddEvent)

		apiRoutes.GET("/orders/:id/stages", h.GetStages)
		apiRoutes.POST("/orders/:id/stages", h.AddStage)
		apiRoutes.POST("/transfers", h.CreateTransfer)

		apiRoutes.GET("/reports/accounting",
			middleware.RequireRole(models.RoleAdmin), h.AccountingReport)

		apiRoutes.GET("/dates/convert", h.ConvertDate)
		apiRoutes.GET("/teeth/preview", h.PreviewTeeth)
	}
}

func orderIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeError answers with 404 for missing documents and 500 otherwise.
func storeError(c *gin.Context, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	log.Printf("%s: store error: %v", what, err)
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access " + what})
}
