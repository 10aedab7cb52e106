package handler

import (
	"net/http"

	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
)

// ProfileRequest replaces the owner's contact numbers
type ProfileRequest struct {
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,max=15"`
	WhatsAppNumber *string `json:"whatsapp_number" validate:"omitempty,max=15"`
}

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req ProfileRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	profile, err := h.profiles.Update(c.Request().Context(), ownerID(c), service.ProfileInput{
		PhoneNumber:    req.PhoneNumber,
		WhatsAppNumber: req.WhatsAppNumber,
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, profile)
}
