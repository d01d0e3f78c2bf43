package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "userId"
	RequestIDKey contextKey = "requestId"
)

type TokenValidator interface {
	ValidateToken(signedToken string) (string, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Authentication resolves the session cookie to a user id and stores it in
// the request context.
func Authentication(tokens TokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(helper.SessionCookieName)
			if err != nil || cookie.Value == "" {
				helper.WriteError(w, r, helper.Unauthorized("User not authenticated"))
				return
			}

			userID, err := tokens.ValidateToken(cookie.Value)
			if err != nil {
				helper.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets only restaurant admins through. It must run after Authentication.
func RequireAdmin(users UserLookup) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := primitive.ObjectIDFromHex(UserIDFromContext(r.Context()))
			if err != nil {
				helper.WriteError(w, r, helper.Unauthorized("User not authenticated"))
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if errors.Is(err, helper.ErrNotFound) {
				helper.WriteError(w, r, helper.Unauthorized("User not authenticated"))
				return
			} else if err != nil {
				helper.WriteError(w, r, err)
				return
			}
			if !user.Admin {
				helper.WriteError(w, r, helper.Forbidden("Restaurant admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated user id, or "" outside Authentication.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
