package controller

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

const maxUploadSize = 10 << 20

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return &helper.AppError{Kind: helper.KindValidation, Message: "Invalid form data", Err: err}
	}
	return nil
}

// formImage returns the uploaded file under field, or nil when none was sent.
// The result is an untyped nil in that case so services can test image == nil.
func formImage(r *http.Request, field string) (interface{}, func(), error) {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	} else if err != nil {
		return nil, func() {}, &helper.AppError{Kind: helper.KindValidation, Message: "Invalid image upload", Err: err}
	}
	return file, func() { file.Close() }, nil
}

func restaurantAttrsFromForm(r *http.Request) (models.RestaurantAttrs, error) {
	attrs := models.RestaurantAttrs{
		RestaurantName: strings.TrimSpace(r.FormValue("restaurantName")),
		City:           strings.TrimSpace(r.FormValue("city")),
		Country:        strings.TrimSpace(r.FormValue("country")),
	}

	deliveryTime, err := strconv.Atoi(strings.TrimSpace(r.FormValue("deliveryTime")))
	if err != nil {
		return attrs, helper.Validation("deliveryTime must be a whole number of minutes")
	}
	attrs.DeliveryTime = deliveryTime

	cuisines, err := helper.ParseStringList(r.FormValue("cuisines"))
	if err != nil {
		return attrs, err
	}
	attrs.Cuisines = cuisines
	return attrs, nil
}

func menuAttrsFromForm(r *http.Request) (models.MenuAttrs, error) {
	attrs := models.MenuAttrs{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		return attrs, err
	}
	attrs.Price = price
	return attrs, nil
}

// menuPatchFromForm only sets the fields present and non-empty in the form.
func menuPatchFromForm(r *http.Request) (models.MenuPatch, error) {
	var patch models.MenuPatch
	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		patch.Name = &name
	}
	if description := strings.TrimSpace(r.FormValue("description")); description != "" {
		patch.Description = &description
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := parsePrice(raw)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	return patch, nil
}

// parsePrice accepts finite decimal prices in (0, MaxMenuPrice].
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, helper.Validation("price must be a number")
	}
	if price <= 0 || price > models.MaxMenuPrice {
		return 0, helper.Validation("price must be greater than 0 and at most 100000")
	}
	return price, nil
}
