package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
)

type MenuController struct {
	menus MenuServiceInterface
}

func NewMenuController(menus MenuServiceInterface) *MenuController {
	return &MenuController{menus: menus}
}

// AddMenu expects a multipart form with the item photo under image.
func (c *MenuController) AddMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := parseForm(r); err != nil {
		helper.WriteError(w, r, err)
		return
	}
	attrs, err := menuAttrsFromForm(r)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	image, closeImage, err := formImage(r, "image")
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	defer closeImage()

	menu, err := c.menus.AddMenu(ctx, middleware.UserIDFromContext(r.Context()), attrs, image)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusCreated, helper.Envelope{
		"message": "Menu added successfully",
		"menu":    menu,
	})
}

func (c *MenuController) EditMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := parseForm(r); err != nil {
		helper.WriteError(w, r, err)
		return
	}
	patch, err := menuPatchFromForm(r)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	image, closeImage, err := formImage(r, "image")
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	defer closeImage()

	menu, err := c.menus.EditMenu(ctx, mux.Vars(r)["id"], patch, image)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message": "Menu updated",
		"menu":    menu,
	})
}
