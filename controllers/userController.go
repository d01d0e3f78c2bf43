package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
)

type UserController struct {
	auth     AuthServiceInterface
	sessions SessionIssuer
}

func NewUserController(auth AuthServiceInterface, sessions SessionIssuer) *UserController {
	return &UserController{auth: auth, sessions: sessions}
}

func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input services.SignupInput
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	user, err := c.auth.Signup(ctx, input)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	if _, err := c.sessions.IssueSession(w, user.ID.Hex()); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	helper.WriteJSON(w, http.StatusCreated, helper.Envelope{
		"message": "User created successfully",
		"user":    user,
	})
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input services.LoginInput
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	user, err := c.auth.Login(ctx, input)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	if _, err := c.sessions.IssueSession(w, user.ID.Hex()); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message": "Welcome back " + user.Fullname,
		"user":    user,
	})
}

func (c *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input struct {
		VerificationCode string `json:"verificationCode" validate:"required"`
	}
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	user, err := c.auth.VerifyEmail(ctx, input.VerificationCode)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message": "Email verified successfully.",
		"user":    user,
	})
}

func (c *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	helper.ClearSession(w)
	helper.WriteMessage(w, http.StatusOK, "Logged out successfully.")
}

func (c *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	if err := c.auth.ForgotPassword(ctx, input.Email); err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteMessage(w, http.StatusOK, "Password reset link sent to your email")
}

func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input struct {
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	if err := c.auth.ResetPassword(ctx, mux.Vars(r)["token"], input.NewPassword); err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteMessage(w, http.StatusOK, "Password reset successfully.")
}

func (c *UserController) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := c.auth.CheckAuth(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{"user": user})
}

func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input models.ProfileUpdate
	if err := helper.DecodeJSON(r.Body, &input); err != nil {
		helper.WriteError(w, r, err)
		return
	}

	user, err := c.auth.UpdateProfile(ctx, middleware.UserIDFromContext(r.Context()), input)
	if err != nil {
		helper.WriteError(w, r, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, helper.Envelope{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
