package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
)

func TestUserController_Login(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Fullname: "Ada Lovelace", Email: "ada@example.com"}
	input := services.LoginInput{Email: "ada@example.com", Password: "secret1"}

	tests := []struct {
		name         string
		body         string
		prepareMocks func(auth *mockAuthService, sessions *mockSessions)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			body: `{"email":"ada@example.com","password":"secret1"}`,
			prepareMocks: func(auth *mockAuthService, sessions *mockSessions) {
				auth.On("Login", mock.Anything, input).Return(user, nil)
				sessions.On("IssueSession", mock.Anything, user.ID.Hex()).Return("jwt", nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Welcome back Ada Lovelace",
		},
		{
			name: "wrong password",
			body: `{"email":"ada@example.com","password":"secret1"}`,
			prepareMocks: func(auth *mockAuthService, sessions *mockSessions) {
				auth.On("Login", mock.Anything, input).Return(nil, helper.Validation("Incorrect email or password"))
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Incorrect email or password",
		},
		{
			name:         "malformed email",
			body:         `{"email":"ada","password":"secret1"}`,
			prepareMocks: func(*mockAuthService, *mockSessions) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			auth, sessions := &mockAuthService{}, &mockSessions{}
			testCase.prepareMocks(auth, sessions)

			rec := httptest.NewRecorder()
			NewUserController(auth, sessions).Login(rec, httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(testCase.body)))

			assert.Equal(t, testCase.expectedCode, rec.Code)
			if testCase.expectedMsg != "" {
				assert.Equal(t, testCase.expectedMsg, decodeBody(t, rec)["message"])
			}
			auth.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestUserController_SignUp(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Fullname: "Ada", Email: "ada@example.com"}
	auth, sessions := &mockAuthService{}, &mockSessions{}
	auth.On("Signup", mock.Anything, services.SignupInput{
		Fullname: "Ada", Email: "ada@example.com", Password: "secret1", Contact: "0123456789",
	}).Return(user, nil)
	sessions.On("IssueSession", mock.Anything, user.ID.Hex()).Return("jwt", nil)

	body := `{"fullname":"Ada","email":"ada@example.com","password":"secret1","contact":"0123456789"}`
	rec := httptest.NewRecorder()
	NewUserController(auth, sessions).SignUp(rec, httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "User created successfully", resp["message"])
	assert.NotContains(t, resp["user"], "password")
}

func TestUserController_Logout(t *testing.T) {
	rec := httptest.NewRecorder()
	NewUserController(nil, nil).Logout(rec, httptest.NewRequest(http.MethodPost, "/user/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, helper.SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestUserController_ResetPassword(t *testing.T) {
	auth := &mockAuthService{}
	auth.On("ResetPassword", mock.Anything, "reset-token", "newsecret").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/user/reset-password/reset-token", strings.NewReader(`{"newPassword":"newsecret"}`))
	req = mux.SetURLVars(req, map[string]string{"token": "reset-token"})
	rec := httptest.NewRecorder()
	NewUserController(auth, nil).ResetPassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	auth.AssertExpectations(t)
}

func TestUserController_CheckAuthUsesSessionUser(t *testing.T) {
	auth := &mockAuthService{}
	auth.On("CheckAuth", mock.Anything, "user-1").Return(nil, helper.NotFound("User not found"))

	rec := httptest.NewRecorder()
	NewUserController(auth, nil).CheckAuth(rec, asUser(httptest.NewRequest(http.MethodGet, "/user/check-auth", nil), "user-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	auth.AssertExpectations(t)
}
