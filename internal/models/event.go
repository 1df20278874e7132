package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeline event types.
const (
	EventReceived      = "received"
	EventTryIn         = "try_in"
	EventReturned      = "returned"
	EventFinalShipment = "final_shipment"
	EventNote          = "note"
)

// Directions of an event between clinic and lab.
const (
	DirectionClinicToLab = "clinic_to_lab"
	DirectionLabToClinic = "lab_to_clinic"
	DirectionInternal    = "internal"
)

var (
	eventTypes = []string{EventReceived, EventTryIn, EventReturned, EventFinalShipment, EventNote}
	directions = []string{DirectionClinicToLab, DirectionLabToClinic, DirectionInternal}
)

func ValidEventType(s string) bool { return slices.Contains(eventTypes, s) }

func ValidDirection(s string) bool { return slices.Contains(directions, s) }

// OrderEvent is one entry on an order's timeline.
type OrderEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID    primitive.ObjectID `bson:"orderId" json:"orderId"`
	Type       string             `bson:"type" json:"type"`
	Direction  string             `bson:"direction" json:"direction"`
	HappenedAt time.Time          `bson:"happenedAt" json:"happenedAt"`
	Notes      string             `bson:"notes" json:"notes"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
