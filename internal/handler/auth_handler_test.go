package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/handler"
	"github.com/noah-isme/teachback-api/internal/service"
)

type mockAuthService struct {
	registerResponse dto.AuthResponse
	registerErr      error
	loginResponse    dto.AuthResponse
	loginErr         error
	lastRegister     dto.RegisterRequest
}

func (m *mockAuthService) Register(_ context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error) {
	m.lastRegister = payload
	if m.registerErr != nil {
		return dto.AuthResponse{}, m.registerErr
	}
	return m.registerResponse, nil
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest) (dto.AuthResponse, error) {
	if m.loginErr != nil {
		return dto.AuthResponse{}, m.loginErr
	}
	return m.loginResponse, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v2/auth"))
	return app
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	svc := &mockAuthService{registerResponse: dto.AuthResponse{
		Token: "token",
		User:  dto.UserResponse{ID: 1, Username: "maya"},
	}}
	app := newAuthApp(svc)

	body := `{"username":"maya","email":"maya@example.com","password":"secret123","confirm_password":"secret123","first_name":"Maya","last_name":"Chen"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, "account created", payload.Message)
	require.Equal(t, "token", payload.Data.Token)
	require.Equal(t, "maya", svc.lastRegister.Username)
}

func TestAuthHandler_RegisterDuplicateUsername(t *testing.T) {
	svc := &mockAuthService{registerErr: service.ErrUsernameTaken}
	app := newAuthApp(svc)

	body := `{"username":"maya","email":"maya@example.com","password":"secret123","confirm_password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_RegisterInvalidBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	body := `{"username":"maya","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
