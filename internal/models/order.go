package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	StatusReceived   = "received"
	StatusInProgress = "in_progress"
	StatusReady      = "ready"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var orderStatuses = []string{StatusReceived, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return slices.Contains(orderStatuses, s)
}

type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientName  string             `bson:"patientName" json:"patientName"`
	PatientPhone string             `bson:"patientPhone" json:"patientPhone"`
	Doctor       string             `bson:"doctor" json:"doctor"`
	OrderType    string             `bson:"orderType" json:"orderType"`
	UnitCount    int                `bson:"unitCount" json:"unitCount"`
	Shade        string             `bson:"shade" json:"shade"`
	Price        float64            `bson:"price" json:"price"` // per unit, toman
	SerialNumber string             `bson:"serialNumber" json:"serialNumber"`
	Status       string             `bson:"status" json:"status"`
	Teeth        []string           `bson:"teeth" json:"teeth"` // sorted FDI codes
	Notes        string             `bson:"notes" json:"notes"`
	OrderDate    *time.Time         `bson:"orderDate,omitempty" json:"orderDate,omitempty"`
	DueDate      *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ShippedDate  *time.Time         `bson:"shippedDate,omitempty" json:"shippedDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// TotalPrice is the unit price times the number of units.
func (o *Order) TotalPrice() float64 {
	return float64(o.UnitCount) * o.Price
}
