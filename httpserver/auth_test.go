package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinelog/auth"
	"cinelog/httpserver"
	"cinelog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func newAuthServer(t *testing.T) (*httpserver.Server, *MockAuthService) {
	t.Helper()
	server := httpserver.Default(testConfig())
	svc := new(MockAuthService)
	server.AuthService = svc
	return server, svc
}

func postJSON(server *httpserver.Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	t.Run("returns token pair", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Register", mock.Anything, "Ripley", "ripley@example.com", "Secret123!").
			Return(auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)

		rec := postJSON(server, "/api/auth/register",
			`{"name":"Ripley","email":"ripley@example.com","password":"Secret123!"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var tokens map[string]string
		decodeAPIResult(t, rec, &tokens)
		assert.Equal(t, "access", tokens["accessToken"])
		assert.Equal(t, "refresh", tokens["refreshToken"])
		svc.AssertExpectations(t)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		server, svc := newAuthServer(t)

		rec := postJSON(server, "/api/auth/register",
			`{"name":"Ripley","email":"not-an-email","password":"Secret123!"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Register", mock.Anything, "Ripley", "ripley@example.com", "Secret123!").
			Return(auth.TokenPair{}, user.ErrEmailAlreadyExists)

		rec := postJSON(server, "/api/auth/register",
			`{"name":"Ripley","email":"ripley@example.com","password":"Secret123!"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "100409", resp.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns token pair", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Login", mock.Anything, "ripley@example.com", "Secret123!").
			Return(auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)

		rec := postJSON(server, "/api/auth/login",
			`{"email":"ripley@example.com","password":"Secret123!"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var tokens map[string]string
		decodeAPIResult(t, rec, &tokens)
		assert.Equal(t, "access", tokens["accessToken"])
		svc.AssertExpectations(t)
	})

	t.Run("wrong credentials map to 401", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Login", mock.Anything, "ripley@example.com", "wrong-pass").
			Return(auth.TokenPair{}, auth.ErrInvalidCredentials)

		rec := postJSON(server, "/api/auth/login",
			`{"email":"ripley@example.com","password":"wrong-pass"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "invalid credentials", resp.Message)
	})

	t.Run("locked account maps to 429", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Login", mock.Anything, "ripley@example.com", "Secret123!").
			Return(auth.TokenPair{}, auth.ErrAccountLocked)

		rec := postJSON(server, "/api/auth/login",
			`{"email":"ripley@example.com","password":"Secret123!"}`)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "account temporarily locked", resp.Message)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates tokens", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Refresh", mock.Anything, "old-refresh").
			Return(auth.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		rec := postJSON(server, "/api/auth/refresh", `{"refreshToken":"old-refresh"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var tokens map[string]string
		decodeAPIResult(t, rec, &tokens)
		assert.Equal(t, "new-access", tokens["accessToken"])
		assert.Equal(t, "new-refresh", tokens["refreshToken"])
	})

	t.Run("invalid token maps to 401", func(t *testing.T) {
		server, svc := newAuthServer(t)
		svc.On("Refresh", mock.Anything, "stale").
			Return(auth.TokenPair{}, auth.ErrInvalidRefreshToken)

		rec := postJSON(server, "/api/auth/refresh", `{"refreshToken":"stale"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "invalid refresh token", resp.Message)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		server, svc := newAuthServer(t)

		rec := postJSON(server, "/api/auth/refresh", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Refresh")
	})
}
