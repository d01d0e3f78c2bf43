package controller

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/reports"
)

type RestaurantController struct {
	restaurants RestaurantServiceInterface
}

func NewRestaurantController(restaurants RestaurantServiceInterface) *RestaurantController {
	return &RestaurantController{restaurants: restaurants}
}

// CreateRestaurant expects a multipart form with the banner under imageFile.
func (c *RestaurantController) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	attrs, image, closeImage, err := restaurantForm(r)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	defer closeImage()

	restaurant, err := c.restaurants.Create(ctx, middleware.UserIDFromContext(r.Context()), attrs, image)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusCreated, helper.Envelope{
		"message":    "Restaurant Added",
		"restaurant": restaurant,
	})
}

func (c *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	restaurant, err := c.restaurants.Get(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"restaurant": restaurant})
}

func (c *RestaurantController) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	attrs, image, closeImage, err := restaurantForm(r)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	defer closeImage()

	restaurant, err := c.restaurants.Update(ctx, middleware.UserIDFromContext(r.Context()), attrs, image)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message":    "Restaurant updated",
		"restaurant": restaurant,
	})
}

func (c *RestaurantController) GetRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.restaurants.Orders(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"orders": orders})
}

// ExportRestaurantOrders downloads the restaurant's orders as a spreadsheet.
func (c *RestaurantController) ExportRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.restaurants.Orders(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteOrdersWorkbook(&buf, orders); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", reports.OrdersContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (c *RestaurantController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input struct {
		Status models.OrderStatus `json:"status" validate:"required"`
	}
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	order, err := c.restaurants.UpdateOrderStatus(ctx, middleware.UserIDFromContext(r.Context()), mux.Vars(r)["orderId"], input.Status)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message": "Status updated",
		"status":  order.Status,
	})
}

// SearchRestaurant reads the free text from the path, searchQuery and the
// comma separated selectedCuisines from the query string.
func (c *RestaurantController) SearchRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query := r.URL.Query()
	cuisines, err := helper.ParseStringList(query.Get("selectedCuisines"))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}

	restaurants, err := c.restaurants.Search(ctx, models.SearchFilter{
		SearchText:       strings.TrimSpace(mux.Vars(r)["searchText"]),
		SearchQuery:      strings.TrimSpace(query.Get("searchQuery")),
		SelectedCuisines: cuisines,
	})
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"data": restaurants})
}

func (c *RestaurantController) GetSingleRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	restaurant, err := c.restaurants.GetSingle(ctx, mux.Vars(r)["id"])
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"restaurant": restaurant})
}

func restaurantForm(r *http.Request) (models.RestaurantAttrs, interface{}, func(), error) {
	if err := parseForm(r); err != nil {
		return models.RestaurantAttrs{}, nil, func() {}, err
	}
	attrs, err := restaurantAttrsFromForm(r)
	if err != nil {
		return attrs, nil, func() {}, err
	}
	image, closeImage, err := formImage(r, "imageFile")
	return attrs, image, closeImage, err
}
