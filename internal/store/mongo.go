package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	ordersCollection    = "orders"
	stagesCollection    = "stages"
	transfersCollection = "transfers"
	eventsCollection    = "events"
)

var _ Store = (*MongoStore)(nil)

type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates the unique email index and the per-order lookup
// indexes of stages and events.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = s.db.Collection(stagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "position", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("stages index: %w", err)
	}
	_, err = s.db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "happenedAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("events index: %w", err)
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(usersCollection).InsertOne(ctx, u)
	return mapErr(err)
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *MongoStore) UpdateUserName(ctx context.Context, id primitive.ObjectID, fullName string) error {
	res, err := s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"fullName": fullName}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(ordersCollection).InsertOne(ctx, o)
	return mapErr(err)
}

func (s *MongoStore) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := s.db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func orderQuery(f OrderFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if due := dayRange(f.DueFrom, f.DueTo); len(due) > 0 {
		filter["dueDate"] = due
	}
	if f.Doctor != "" {
		filter["doctor"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Doctor), Options: "i"}
	}
	if period := dayRange(f.PeriodFrom, f.PeriodTo); len(period) > 0 {
		filter["$or"] = bson.A{
			bson.M{"dueDate": period},
			bson.M{"createdAt": period},
		}
	}
	return filter
}

func (s *MongoStore) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	filter := orderQuery(f)

	// Newest first, like the admin changelist.
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(ordersCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// dayRange builds a $gte/$lt condition covering whole days.
func dayRange(from, to time.Time) bson.M {
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lt"] = to.AddDate(0, 0, 1)
	}
	return r
}

func (s *MongoStore) SaveOrder(ctx context.Context, o *models.Order) error {
	res, err := s.db.Collection(ordersCollection).ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SetOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.db.Collection(ordersCollection).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AddStage(ctx context.Context, st *models.Stage) error {
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(stagesCollection).InsertOne(ctx, st)
	return mapErr(err)
}

func (s *MongoStore) ListStages(ctx context.Context, orderID primitive.ObjectID) ([]models.Stage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(stagesCollection).Find(ctx, bson.M{"orderId": orderID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stages := make([]models.Stage, 0)
	if err := cursor.All(ctx, &stages); err != nil {
		return nil, err
	}
	return stages, nil
}

func (s *MongoStore) StageLabels(ctx context.Context, orderID primitive.ObjectID) ([]string, error) {
	stages, err := s.ListStages(ctx, orderID)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(stages))
	for _, st := range stages {
		labels = append(labels, st.Label)
	}
	return labels, nil
}

func (s *MongoStore) CreateTransfer(ctx context.Context, t *models.DigitalLabTransfer) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(transfersCollection).InsertOne(ctx, t)
	return mapErr(err)
}

func (s *MongoStore) AddEvent(ctx context.Context, e *models.OrderEvent) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(eventsCollection).InsertOne(ctx, e)
	return mapErr(err)
}

func (s *MongoStore) ListEvents(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "happenedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(eventsCollection).Find(ctx, bson.M{"orderId": orderID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := make([]models.OrderEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
