package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage is one production step of an order (scan, design, milling...).
type Stage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID  primitive.ObjectID `bson:"orderId" json:"orderId"`
	Label    string             `bson:"label" json:"label"`
	Position int                `bson:"position" json:"position"`
	Done     bool               `bson:"done" json:"done"`
}

// DigitalLabTransfer records an order sent to an outside digital lab for one
// of its stages.
type DigitalLabTransfer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	StageName string             `bson:"stageName" json:"stageName"`
	LabName   string             `bson:"labName" json:"labName"`
	Cost      float64            `bson:"cost" json:"cost"`
	SentAt    time.Time          `bson:"sentAt" json:"sentAt"`
}
