package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/models"
	"github.com/harentsoaR/dentlab-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory store.Store for handler tests.
type fakeStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]models.User
	orders    map[primitive.ObjectID]models.Order
	stages    []models.Stage
	transfers []models.DigitalLabTransfer
	events    []models.OrderEvent
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[primitive.ObjectID]models.User),
		orders: make(map[primitive.ObjectID]models.Order),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) UpdateUserName(_ context.Context, id primitive.ObjectID, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.FullName = fullName
	f.users[id] = u
	return nil
}

func (f *fakeStore) CreateOrder(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (f *fakeStore) ListOrders(_ context.Context, flt store.OrderFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.Order
	for _, o := range f.orders {
		if flt.Status != "" && o.Status != flt.Status {
			continue
		}
		if !flt.DueFrom.IsZero() && (o.DueDate == nil || o.DueDate.Before(flt.DueFrom)) {
			continue
		}
		if !flt.DueTo.IsZero() && (o.DueDate == nil || !o.DueDate.Before(flt.DueTo.AddDate(0, 0, 1))) {
			continue
		}
		if flt.Doctor != "" && !strings.Contains(strings.ToLower(o.Doctor), strings.ToLower(flt.Doctor)) {
			continue
		}
		if !flt.PeriodFrom.IsZero() || !flt.PeriodTo.IsZero() {
			created := o.CreatedAt
			if !inPeriod(o.DueDate, flt) && !inPeriod(&created, flt) {
				continue
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) SaveOrder(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[o.ID]; !ok {
		return store.ErrNotFound
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeStore) SetOrderStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeStore) AddStage(_ context.Context, s *models.Stage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages = append(f.stages, *s)
	return nil
}

func (f *fakeStore) ListStages(_ context.Context, orderID primitive.ObjectID) ([]models.Stage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.Stage
	for _, s := range f.stages {
		if s.OrderID == orderID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStore) StageLabels(ctx context.Context, orderID primitive.ObjectID) ([]string, error) {
	stages, err := f.ListStages(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, s := range stages {
		labels = append(labels, s.Label)
	}
	return labels, nil
}

func (f *fakeStore) CreateTransfer(_ context.Context, t *models.DigitalLabTransfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transfers = append(f.transfers, *t)
	return nil
}

func inPeriod(t *time.Time, flt store.OrderFilter) bool {
	if t == nil {
		return false
	}
	if !flt.PeriodFrom.IsZero() && t.Before(flt.PeriodFrom) {
		return false
	}
	if !flt.PeriodTo.IsZero() && !t.Before(flt.PeriodTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (f *fakeStore) AddEvent(_ context.Context, e *models.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) ListEvents(_ context.Context, orderID primitive.ObjectID) ([]models.OrderEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.OrderEvent
	for _, e := range f.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].HappenedAt.Before(out[j].HappenedAt) })
	return out, nil
}

var errStoreDown = errors.New("store down")

// recordingNotifier captures OrderReady calls.
type recordingNotifier struct {
	mu    sync.Mutex
	ready []models.Order
}

func (n *recordingNotifier) OrderReady(o *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ready = append(n.ready, *o)
}
