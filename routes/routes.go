package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/abhisheksh99/Food-Delivery-App-v2/controllers"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
)

type Handlers struct {
	Users       *controller.UserController
	Restaurants *controller.RestaurantController
	Menus       *controller.MenuController
	Orders      *controller.OrderController
}

// Guards are the access checks routes opt into. Admin assumes Authenticated ran first.
type Guards struct {
	Authenticated mux.MiddlewareFunc
	Admin         mux.MiddlewareFunc
}

func (g Guards) user(h http.HandlerFunc) http.Handler {
	return g.Authenticated(h)
}

func (g Guards) admin(h http.HandlerFunc) http.Handler {
	return g.Authenticated(g.Admin(h))
}

func NewRouter(h Handlers, g Guards) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, middleware.Recoverer)

	UserRoutes(router.PathPrefix("/user").Subrouter(), h.Users, g)
	RestaurantRoutes(router.PathPrefix("/restaurant").Subrouter(), h.Restaurants, g)
	MenuRoutes(router.PathPrefix("/menu").Subrouter(), h.Menus, g)
	OrderRoutes(router.PathPrefix("/order").Subrouter(), h.Orders, g)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helper.WriteMessage(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helper.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return router
}

func UserRoutes(router *mux.Router, c *controller.UserController, g Guards) {
	router.HandleFunc("/signup", c.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
	router.HandleFunc("/verify-email", c.VerifyEmail).Methods(http.MethodPost)
	router.HandleFunc("/forgot-password", c.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password/{token}", c.ResetPassword).Methods(http.MethodPost)

	router.Handle("/check-auth", g.user(c.CheckAuth)).Methods(http.MethodGet)
	router.Handle("/profile/update", g.user(c.UpdateProfile)).Methods(http.MethodPut)
}

// RestaurantRoutes registers the fixed paths before /{id} so "order" and
// "search" are never read as restaurant ids.
func RestaurantRoutes(router *mux.Router, c *controller.RestaurantController, g Guards) {
	router.Handle("", g.admin(c.CreateRestaurant)).Methods(http.MethodPost)
	router.Handle("", g.admin(c.GetRestaurant)).Methods(http.MethodGet)
	router.Handle("", g.admin(c.UpdateRestaurant)).Methods(http.MethodPut)

	router.Handle("/order", g.admin(c.GetRestaurantOrders)).Methods(http.MethodGet)
	router.Handle("/order/export", g.admin(c.ExportRestaurantOrders)).Methods(http.MethodGet)
	router.Handle("/order/{orderId}/status", g.admin(c.UpdateOrderStatus)).Methods(http.MethodPut)

	router.Handle("/search", g.user(c.SearchRestaurant)).Methods(http.MethodGet)
	router.Handle("/search/{searchText}", g.user(c.SearchRestaurant)).Methods(http.MethodGet)
	router.Handle("/{id}", g.user(c.GetSingleRestaurant)).Methods(http.MethodGet)
}

func MenuRoutes(router *mux.Router, c *controller.MenuController, g Guards) {
	router.Handle("", g.admin(c.AddMenu)).Methods(http.MethodPost)
	router.Handle("/{id}", g.admin(c.EditMenu)).Methods(http.MethodPut)
}

// OrderRoutes leaves the webhook public; it authenticates by signature instead.
func OrderRoutes(router *mux.Router, c *controller.OrderController, g Guards) {
	router.HandleFunc("/webhook", c.StripeWebhook).Methods(http.MethodPost)

	router.Handle("", g.user(c.GetOrders)).Methods(http.MethodGet)
	router.Handle("/checkout/create-checkout-session", g.user(c.CreateCheckoutSession)).Methods(http.MethodPost)
	router.Handle("/track", g.user(c.TrackOrders)).Methods(http.MethodGet)
}
