package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/models"
	"github.com/harentsoaR/dentlab-api/internal/store"
	"github.com/harentsoaR/dentlab-api/internal/teeth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// orderRequest mirrors the admin order form. Teeth is the hidden field value
// ("11,12,21"); dates may be Jalali or Gregorian.
type orderRequest struct {
	PatientName  string  `json:"patientName" binding:"required"`
	PatientPhone string  `json:"patientPhone"`
	Doctor       string  `json:"doctor" binding:"required"`
	OrderType    string  `json:"orderType" binding:"required"`
	UnitCount    int     `json:"unitCount" binding:"omitempty,min=1"`
	Shade        string  `json:"shade"`
	Price        float64 `json:"price" binding:"min=0"`
	SerialNumber string  `json:"serialNumber"`
	Status       string  `json:"status"`
	Teeth        string  `json:"teeth"`
	Notes        string  `json:"notes"`
	OrderDate    string  `json:"orderDate"`
	DueDate      string  `json:"dueDate"`
}

type orderUpdateRequest struct {
	PatientName  *string  `json:"patientName"`
	PatientPhone *string  `json:"patientPhone"`
	Doctor       *string  `json:"doctor"`
	OrderType    *string  `json:"orderType"`
	UnitCount    *int     `json:"unitCount" binding:"omitempty,min=1"`
	Shade        *string  `json:"shade"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	SerialNumber *string  `json:"serialNumber"`
	Teeth        *string  `json:"teeth"`
	Notes        *string  `json:"notes"`
	OrderDate    *string  `json:"orderDate"`
	DueDate      *string  `json:"dueDate"`
}

type orderResponse struct {
	models.Order
	TotalPrice      float64 `json:"totalPrice"`
	TeethCSV        string  `json:"teethCsv"`
	TeethSummary    string  `json:"teethSummary"`
	TeethEmpty      bool    `json:"teethEmpty"`
	OrderDateJalali string  `json:"orderDateJalali,omitempty"`
	DueDateJalali   string  `json:"dueDateJalali,omitempty"`
	ShippedJalali   string  `json:"shippedDateJalali,omitempty"`
}

// orderDetailResponse is a single order with its timeline.
type orderDetailResponse struct {
	orderResponse
	Events []models.OrderEvent `json:"events"`
}

func newOrderResponse(o models.Order) orderResponse {
	if o.Teeth == nil {
		o.Teeth = []string{}
	}
	csv := strings.Join(o.Teeth, ",")
	summary, empty := teeth.Summary(csv)
	resp := orderResponse{
		Order:        o,
		TotalPrice:   o.TotalPrice(),
		TeethCSV:     csv,
		TeethSummary: summary,
		TeethEmpty:   empty,
	}
	if o.OrderDate != nil {
		resp.OrderDateJalali = jalali.FromTime(*o.OrderDate).String()
	}
	if o.DueDate != nil {
		resp.DueDateJalali = jalali.FromTime(*o.DueDate).String()
	}
	if o.ShippedDate != nil {
		resp.ShippedJalali = jalali.FromTime(*o.ShippedDate).String()
	}
	return resp
}

// parseOptionalDay turns "" into nil and anything else into a day, or fails.
func parseOptionalDay(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := jalali.ParseDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// applyTeeth stores the normalized selection on the order and rewrites the
// teeth line of the notes, the way the chart does when its form is submitted.
func applyTeeth(o *models.Order, sel *teeth.Selection, notes string) {
	o.Teeth = sel.Strings()
	o.Notes = teeth.SyncNotes(notes, sel.CSV())
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusReceived
	}
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	orderDate, err1 := parseOptionalDay(req.OrderDate)
	dueDate, err2 := parseOptionalDay(req.DueDate)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY/MM/DD (Jalali) or YYYY-MM-DD"})
		return
	}
	unitCount := req.UnitCount
	if unitCount == 0 {
		unitCount = 1
	}

	order := models.Order{
		ID:           primitive.NewObjectID(),
		PatientName:  strings.TrimSpace(req.PatientName),
		PatientPhone: req.PatientPhone,
		Doctor:       strings.TrimSpace(req.Doctor),
		OrderType:    req.OrderType,
		UnitCount:    unitCount,
		Shade:        req.Shade,
		Price:        req.Price,
		SerialNumber: req.SerialNumber,
		Status:       status,
		OrderDate:    orderDate,
		DueDate:      dueDate,
		CreatedAt:    time.Now().UTC(),
	}
	applyTeeth(&order, teeth.Prefill(req.Teeth, "", "", req.Notes), req.Notes)

	if err := h.Store.CreateOrder(c.Request.Context(), &order); err != nil {
		storeError(c, err, "order")
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// GetOrders lists orders, optionally filtered by status and a due-date range
// (e.g. /api/orders?status=ready&from=1402/01/01&to=1402/01/31).
func (h *Handler) GetOrders(c *gin.Context) {
	var f store.OrderFilter
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		f.Status = status
	}
	for param, dst := range map[string]*time.Time{"from": &f.DueFrom, "to": &f.DueTo} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := jalali.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " date"})
			return
		}
		*dst = t
	}

	orders, err := h.Store.ListOrders(c.Request.Context(), f)
	if err != nil {
		storeError(c, err, "orders")
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
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
	c.JSON(http.StatusOK, orderDetailResponse{orderResponse: newOrderResponse(*order), Events: events})
}

// UpdateOrder applies a partial update. Sending notes without teeth keeps the
// stored teeth and re-syncs their line in the notes.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		storeError(c, err, "order")
		return
	}

	setString(&order.PatientName, req.PatientName)
	setString(&order.PatientPhone, req.PatientPhone)
	setString(&order.Doctor, req.Doctor)
	setString(&order.OrderType, req.OrderType)
	setString(&order.Shade, req.Shade)
	setString(&order.SerialNumber, req.SerialNumber)
	if req.UnitCount != nil {
		order.UnitCount = *req.UnitCount
	}
	if req.Price != nil {
		order.Price = *req.Price
	}
	if req.OrderDate != nil {
		if order.OrderDate, err = parseOptionalDay(*req.OrderDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderDate"})
			return
		}
	}
	if req.DueDate != nil {
		if order.DueDate, err = parseOptionalDay(*req.DueDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
			return
		}
	}
	if req.Teeth != nil || req.Notes != nil {
		csv := strings.Join(order.Teeth, ",")
		if req.Teeth != nil {
			csv = *req.Teeth
		}
		notes := order.Notes
		if req.Notes != nil {
			notes = *req.Notes
		}
		applyTeeth(order, teeth.NewSelection(csv), notes)
	}

	if err := h.Store.SaveOrder(ctx, order); err != nil {
		storeError(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// UpdateOrderStatus moves an order through its lifecycle and texts the
// patient once it is ready.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Store.SetOrderStatus(ctx, id, req.Status); err != nil {
		storeError(c, err, "order")
		return
	}

	if req.Status == models.StatusReady && h.Notifier != nil {
		if order, err := h.Store.GetOrder(ctx, id); err == nil {
			h.Notifier.OrderReady(order)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": req.Status})
}
