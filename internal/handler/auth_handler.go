package handler

import (
	"errors"
	"net/http"

	"ledger-service/internal/middleware"
	"ledger-service/internal/model"
	"ledger-service/internal/service"
	"ledger-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterRequest defines the structure for sign up requests
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token
type LoginResponse struct {
	Token string       `json:"token"`
	Owner *model.Owner `json:"owner"`
}

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a shop owner account
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegisterRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}

	owner, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, service.ErrUsernameTaken) {
		log.Warn("Username already registered", zap.String("username", req.Username))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Username already registered"})
	}
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusCreated, owner)
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req LoginRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}

	token, owner, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		log.Warn("Login failed", zap.String("username", req.Username))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
	}
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, Owner: owner})
}

// Logout acknowledges the client dropping its token
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not logged in"})
	}
	h.auth.Logout(c.Request().Context(), claims.OwnerID, claims.Username)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out", "username": claims.Username})
}
