package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/mailer"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
)

// In-memory stores with the not-found and conflict behaviour of the Mongo
// repositories.

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[primitive.ObjectID]models.User{}}
	for _, u := range users {
		f.users[u.ID] = *u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return helper.Validation("User already exists with this email")
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) find(match func(models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, helper.NotFound("User not found")
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Email == email })
}

func (f *fakeUsers) FindByVerificationToken(_ context.Context, code string, now time.Time) (*models.User, error) {
	return f.find(func(u models.User) bool {
		return u.VerificationToken == code && u.VerificationTokenExpiresAt != nil && u.VerificationTokenExpiresAt.After(now)
	})
}

func (f *fakeUsers) FindByResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	return f.find(func(u models.User) bool {
		return u.ResetPasswordToken == token && u.ResetPasswordTokenExpiresAt != nil && u.ResetPasswordTokenExpiresAt.After(now)
	})
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return helper.NotFound("User not found")
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) get(id primitive.ObjectID) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

type fakeRestaurants struct {
	mu          sync.Mutex
	restaurants map[primitive.ObjectID]models.Restaurant
	appendErr   error
}

func newFakeRestaurants(restaurants ...*models.Restaurant) *fakeRestaurants {
	f := &fakeRestaurants{restaurants: map[primitive.ObjectID]models.Restaurant{}}
	for _, r := range restaurants {
		f.restaurants[r.ID] = *r
	}
	return f
}

func (f *fakeRestaurants) Create(_ context.Context, restaurant *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.restaurants {
		if r.User == restaurant.User {
			return helper.Conflict("Restaurant already exists for this user")
		}
	}
	f.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (f *fakeRestaurants) find(match func(models.Restaurant) bool) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.restaurants {
		if match(r) {
			r := r
			return &r, nil
		}
	}
	return nil, helper.NotFound("Restaurant not found")
}

func (f *fakeRestaurants) FindByOwner(_ context.Context, ownerID primitive.ObjectID) (*models.Restaurant, error) {
	return f.find(func(r models.Restaurant) bool { return r.User == ownerID })
}

func (f *fakeRestaurants) FindByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	return f.find(func(r models.Restaurant) bool { return r.ID == id })
}

func (f *fakeRestaurants) Update(_ context.Context, restaurant *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.restaurants[restaurant.ID]; !ok {
		return helper.NotFound("Restaurant not found")
	}
	f.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (f *fakeRestaurants) AppendMenu(ctx context.Context, ownerID, menuID primitive.ObjectID) (*models.Restaurant, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	restaurant, err := f.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	restaurant.Menus = append(restaurant.Menus, menuID)
	f.mu.Lock()
	f.restaurants[restaurant.ID] = *restaurant
	f.mu.Unlock()
	return restaurant, nil
}

// Search mirrors the Mongo filter for the predicates the tests use.
func (f *fakeRestaurants) Search(_ context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	contains := func(s, sub string) bool { return strings.Contains(strings.ToLower(s), strings.ToLower(sub)) }
	out := []models.Restaurant{}
	for _, r := range f.restaurants {
		if q := filter.SearchText; q != "" && !contains(r.RestaurantName, q) && !contains(r.City, q) && !contains(r.Country, q) {
			continue
		}
		if q := filter.SearchQuery; q != "" {
			match := contains(r.RestaurantName, q)
			for _, c := range r.Cuisines {
				match = match || contains(c, q)
			}
			if !match {
				continue
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RestaurantName < out[j].RestaurantName })
	return out, nil
}

func (f *fakeRestaurants) get(id primitive.ObjectID) models.Restaurant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restaurants[id]
}

func (f *fakeRestaurants) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.restaurants)
}

type fakeMenus struct {
	mu    sync.Mutex
	menus map[primitive.ObjectID]models.Menu
}

func newFakeMenus(menus ...*models.Menu) *fakeMenus {
	f := &fakeMenus{menus: map[primitive.ObjectID]models.Menu{}}
	for _, m := range menus {
		f.menus[m.ID] = *m
	}
	return f
}

func (f *fakeMenus) Create(_ context.Context, menu *models.Menu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menus[menu.ID] = *menu
	return nil
}

func (f *fakeMenus) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.menus, id)
	return nil
}

func (f *fakeMenus) FindByID(_ context.Context, id primitive.ObjectID) (*models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.menus[id]
	if !ok {
		return nil, helper.NotFound("Menu not found!")
	}
	return &m, nil
}

func (f *fakeMenus) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Menu{}
	for _, id := range ids {
		if m, ok := f.menus[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMenus) Update(_ context.Context, menu *models.Menu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.menus[menu.ID]; !ok {
		return helper.NotFound("Menu not found!")
	}
	f.menus[menu.ID] = *menu
	return nil
}

func (f *fakeMenus) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.menus)
}

type fakeOrders struct {
	mu         sync.Mutex
	orders     map[primitive.ObjectID]models.Order
	createErr  error
	confirmErr error
}

func newFakeOrders(orders ...*models.Order) *fakeOrders {
	f := &fakeOrders{orders: map[primitive.ObjectID]models.Order{}}
	for _, o := range orders {
		f.orders[o.ID] = *o
	}
	return f
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, helper.NotFound("Order not found")
	}
	return &o, nil
}

func (f *fakeOrders) list(match func(models.Order) bool) []models.OrderDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.OrderDetail{}
	for _, o := range f.orders {
		if match(o) {
			out = append(out, models.OrderDetail{Order: o})
		}
	}
	return out
}

func (f *fakeOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	return f.list(func(o models.Order) bool { return o.User == userID }), nil
}

func (f *fakeOrders) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]models.OrderDetail, error) {
	return f.list(func(o models.Order) bool { return o.Restaurant == restaurantID }), nil
}

func (f *fakeOrders) Confirm(_ context.Context, id primitive.ObjectID, amountTotal *int64, now time.Time) (*models.Order, bool, error) {
	if f.confirmErr != nil {
		return nil, false, f.confirmErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != models.StatusPending {
		return nil, false, nil
	}
	o.Status = models.StatusConfirmed
	if amountTotal != nil {
		o.TotalAmount = *amountTotal
	}
	o.Version++
	o.Updated_at = now
	f.orders[id] = o
	return &o, true, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, order *models.Order, next models.OrderStatus, now time.Time) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[order.ID]
	if !ok || o.Status != order.Status || o.Version != order.Version {
		return nil, helper.Conflict("Order was modified concurrently")
	}
	o.Status = next
	o.Version++
	o.Updated_at = now
	f.orders[o.ID] = o
	return &o, nil
}

func (f *fakeOrders) get(id primitive.ObjectID) models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id]
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// testify mocks for the remote collaborators.

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*payment.CheckoutSession)
	return session, args.Error(1)
}

func (m *mockGateway) ExpireCheckoutSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) VerifyEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	args := m.Called(payload, signatureHeader)
	event, _ := args.Get(0).(*payment.Event)
	return event, args.Error(1)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, file interface{}) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) MarkProcessed(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) OrderStatusChanged(ctx context.Context, order models.Order) error {
	return m.Called(ctx, order).Error(0)
}

// memoryLedger is a working ledger for scenarios that redeliver events.
type memoryLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemoryLedger() *memoryLedger { return &memoryLedger{seen: map[string]bool{}} }

func (l *memoryLedger) Seen(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[eventID], nil
}

func (l *memoryLedger) MarkProcessed(_ context.Context, eventID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[eventID] = true
	return nil
}
