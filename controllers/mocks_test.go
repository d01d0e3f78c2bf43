package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, in services.SignupInput) (*models.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, in services.LoginInput) (*models.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *mockAuthService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) IssueSession(w http.ResponseWriter, userID string) (string, error) {
	args := m.Called(w, userID)
	return args.String(0), args.Error(1)
}

type mockRestaurantService struct{ mock.Mock }

func (m *mockRestaurantService) Create(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error) {
	args := m.Called(ctx, ownerID, attrs, image)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurantService) Get(ctx context.Context, ownerID string) (*models.RestaurantDetail, error) {
	args := m.Called(ctx, ownerID)
	r, _ := args.Get(0).(*models.RestaurantDetail)
	return r, args.Error(1)
}

func (m *mockRestaurantService) Update(ctx context.Context, ownerID string, attrs models.RestaurantAttrs, image interface{}) (*models.Restaurant, error) {
	args := m.Called(ctx, ownerID, attrs, image)
	r, _ := args.Get(0).(*models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurantService) GetSingle(ctx context.Context, restaurantID string) (*models.RestaurantDetail, error) {
	args := m.Called(ctx, restaurantID)
	r, _ := args.Get(0).(*models.RestaurantDetail)
	return r, args.Error(1)
}

func (m *mockRestaurantService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]models.Restaurant)
	return r, args.Error(1)
}

func (m *mockRestaurantService) Orders(ctx context.Context, ownerID string) ([]models.OrderDetail, error) {
	args := m.Called(ctx, ownerID)
	o, _ := args.Get(0).([]models.OrderDetail)
	return o, args.Error(1)
}

func (m *mockRestaurantService) UpdateOrderStatus(ctx context.Context, ownerID, orderID string, next models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, ownerID, orderID, next)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type mockMenuService struct{ mock.Mock }

func (m *mockMenuService) AddMenu(ctx context.Context, ownerID string, attrs models.MenuAttrs, image interface{}) (*models.Menu, error) {
	args := m.Called(ctx, ownerID, attrs, image)
	menu, _ := args.Get(0).(*models.Menu)
	return menu, args.Error(1)
}

func (m *mockMenuService) EditMenu(ctx context.Context, menuID string, patch models.MenuPatch, image interface{}) (*models.Menu, error) {
	args := m.Called(ctx, menuID, patch, image)
	menu, _ := args.Get(0).(*models.Menu)
	return menu, args.Error(1)
}

type mockCheckoutService struct{ mock.Mock }

func (m *mockCheckoutService) CreateCheckoutSession(ctx context.Context, userID string, req services.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, userID, req)
	s, _ := args.Get(0).(*payment.CheckoutSession)
	return s, args.Error(1)
}

func (m *mockCheckoutService) GetOrders(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]models.OrderDetail)
	return o, args.Error(1)
}

type mockWebhookService struct{ mock.Mock }

func (m *mockWebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

type mockHub struct{ mock.Mock }

func (m *mockHub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	return m.Called(w, r, userID).Error(0)
}

var (
	_ AuthServiceInterface       = (*mockAuthService)(nil)
	_ SessionIssuer              = (*mockSessions)(nil)
	_ RestaurantServiceInterface = (*mockRestaurantService)(nil)
	_ MenuServiceInterface       = (*mockMenuService)(nil)
	_ CheckoutServiceInterface   = (*mockCheckoutService)(nil)
	_ WebhookServiceInterface    = (*mockWebhookService)(nil)
	_ TrackingHub                = (*mockHub)(nil)
)

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, userID))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
