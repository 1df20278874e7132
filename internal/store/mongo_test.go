package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapErr(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

func TestOrderQuery(t *testing.T) {
	assert.Empty(t, orderQuery(OrderFilter{}))

	from := time.Date(2023, time.March, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.April, 20, 0, 0, 0, 0, time.UTC)
	q := orderQuery(OrderFilter{Status: "ready", Doctor: "Dr. (M)", PeriodFrom: from, PeriodTo: to})

	assert.Equal(t, "ready", q["status"])
	assert.Equal(t, primitive.Regex{Pattern: `Dr\. \(M\)`, Options: "i"}, q["doctor"])
	period := bson.M{"$gte": from, "$lt": to.AddDate(0, 0, 1)}
	assert.Equal(t, bson.A{bson.M{"dueDate": period}, bson.M{"createdAt": period}}, q["$or"])
	assert.NotContains(t, q, "dueDate")

	q = orderQuery(OrderFilter{DueTo: to})
	assert.Equal(t, bson.M{"$lt": to.AddDate(0, 0, 1)}, q["dueDate"])
}

// Runs only when TEST_MONGO_URI points at a disposable MongoDB.
func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	db := client.Database("dentlab_test_" + primitive.NewObjectID().Hex())
	defer db.Drop(ctx)

	s := NewMongoStore(db)
	require.NoError(t, s.EnsureIndexes(ctx))

	order := &models.Order{PatientName: "Ali", Status: models.StatusReceived, Teeth: []string{"11", "21"}, CreatedAt: time.Now()}
	require.NoError(t, s.CreateOrder(ctx, order))

	for i, label := range []string{"Milling", "Scan", "Design"} {
		pos := []int{3, 1, 2}[i]
		require.NoError(t, s.AddStage(ctx, &models.Stage{OrderID: order.ID, Label: label, Position: pos}))
	}
	labels, err := s.StageLabels(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scan", "Design", "Milling"}, labels)

	require.NoError(t, s.SetOrderStatus(ctx, order.ID, models.StatusReady))
	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, got.Status)
	assert.Equal(t, []string{"11", "21"}, got.Teeth)

	happened := time.Date(2023, time.March, 21, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddEvent(ctx, &models.OrderEvent{OrderID: order.ID, Type: models.EventFinalShipment, HappenedAt: happened.AddDate(0, 0, 2)}))
	require.NoError(t, s.AddEvent(ctx, &models.OrderEvent{OrderID: order.ID, Type: models.EventReceived, HappenedAt: happened}))
	events, err := s.ListEvents(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventReceived, events[0].Type)

	_, err = s.GetOrder(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@lab.test"}))
	err = s.CreateUser(ctx, &models.User{Email: "a@lab.test"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
