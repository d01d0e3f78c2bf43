package helper

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "token"
	SessionTTL        = 24 * time.Hour
)

type SignedDetails struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session tokens with one HMAC secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// GenerateToken creates a session token for userID valid for SessionTTL.
func (m *TokenManager) GenerateToken(userID string) (string, error) {
	now := m.now()
	claims := &SignedDetails{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ValidateToken checks the signature and expiry and returns the user id.
func (m *TokenManager) ValidateToken(signedToken string) (string, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &AppError{Kind: KindSessionExpired, Message: "Token expired", Err: err}
		}
		return "", &AppError{Kind: KindUnauthenticated, Message: "Invalid token", Err: err}
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", &AppError{Kind: KindUnauthenticated, Message: "Invalid token"}
	}
	return claims.UserID, nil
}

// IssueSession signs a token for userID and sets it as the session cookie.
func (m *TokenManager) IssueSession(w http.ResponseWriter, userID string) (string, error) {
	token, err := m.GenerateToken(userID)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// ClearSession expires the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
