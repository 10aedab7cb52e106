package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ledger-service/internal/ledger"
	"ledger-service/internal/middleware"
	"ledger-service/internal/service"
	"ledger-service/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestValidator plugs go-playground/validator into echo
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// decode binds and validates the request body. When ok is false the
// response has been written and err is what the handler should return.
func decode(c echo.Context, req interface{}) (ok bool, err error) {
	log := logger.FromEcho(c)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(req); err != nil {
		log.Warn("Request validation failed", zap.Error(err))
		return false, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "code": "invalid_request"})
	}
	return true, nil
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
}

func ownerID(c echo.Context) uint {
	id, _ := middleware.OwnerFromContext(c)
	return id
}

func paramID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps service failures onto HTTP. A record that belongs to
// another owner redirects to listing instead of revealing that it exists.
func respondError(c echo.Context, err error, listing string) error {
	log := logger.FromEcho(c)

	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("Validation failed", zap.String("field", verr.Field), zap.String("code", verr.Code()))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Error(), "code": verr.Code()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	case errors.Is(err, service.ErrNotOwned):
		log.Warn("Access to record of another owner", zap.String("redirect", listing))
		return c.Redirect(http.StatusSeeOther, listing)
	default:
		log.Error("Request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
