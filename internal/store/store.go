// Package store persists users, orders, stages and digital-lab transfers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// OrderFilter narrows ListOrders. Zero fields are ignored.
type OrderFilter struct {
	Status  string
	DueFrom time.Time
	DueTo   time.Time // inclusive day

	// Doctor matches case-insensitively anywhere in the doctor's name.
	Doctor string
	// PeriodFrom and PeriodTo keep orders whose due date or creation day
	// falls in the range, as the accounting report does. Both inclusive.
	PeriodFrom time.Time
	PeriodTo   time.Time
}

type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUserName(ctx context.Context, id primitive.ObjectID, fullName string) error

	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error

	AddStage(ctx context.Context, s *models.Stage) error
	ListStages(ctx context.Context, orderID primitive.ObjectID) ([]models.Stage, error)
	// StageLabels returns the order's stage labels by ascending position.
	StageLabels(ctx context.Context, orderID primitive.ObjectID) ([]string, error)

	CreateTransfer(ctx context.Context, t *models.DigitalLabTransfer) error

	AddEvent(ctx context.Context, e *models.OrderEvent) error
	// ListEvents returns the order's timeline, oldest first.
	ListEvents(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderEvent, error)
}
