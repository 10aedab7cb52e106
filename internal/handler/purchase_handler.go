package handler

import (
	"net/http"
	"strings"

	"ledger-service/internal/model"
	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
)

// PurchaseRequest defines the structure for purchase creation requests. The
// total is always computed from the product price and never read from input.
type PurchaseRequest struct {
	ProductID     uint   `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PaymentStatus string `json:"payment_status"`
}

// PurchaseUpdateRequest changes only the fields that are present
type PurchaseUpdateRequest struct {
	ProductID     *uint   `json:"product_id"`
	Quantity      *int    `json:"quantity"`
	PaymentStatus *string `json:"payment_status"`
}

// PaymentRequest sets the payment status of a purchase
type PaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// paymentStatus normalizes case; unknown values pass through and are rejected
// by the pricing rule.
func paymentStatus(raw string) model.PaymentStatus {
	if s, err := model.ParsePaymentStatus(raw); err == nil {
		return s
	}
	return model.PaymentStatus(strings.TrimSpace(raw))
}

type PurchaseHandler struct {
	purchases *service.PurchaseService
}

func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// ListByCustomer handles GET /api/customers/:id/purchases
func (h *PurchaseHandler) ListByCustomer(c echo.Context) error {
	customerID, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	purchases, err := h.purchases.ListByCustomer(c.Request().Context(), ownerID(c), customerID)
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, purchases)
}

// Create handles POST /api/customers/:id/purchases
func (h *PurchaseHandler) Create(c echo.Context) error {
	customerID, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var req PurchaseRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}

	purchase, err := h.purchases.Create(c.Request().Context(), ownerID(c), customerID, service.PurchaseInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PaymentStatus: paymentStatus(req.PaymentStatus),
	})
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var req PurchaseUpdateRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}

	update := service.PurchaseUpdate{ProductID: req.ProductID, Quantity: req.Quantity}
	if req.PaymentStatus != nil {
		status := paymentStatus(*req.PaymentStatus)
		update.PaymentStatus = &status
	}
	purchase, err := h.purchases.Update(c.Request().Context(), ownerID(c), id, update)
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, purchase)
}

// SetPayment handles PATCH /api/purchases/:id/payment
func (h *PurchaseHandler) SetPayment(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var req PaymentRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	purchase, err := h.purchases.SetPaymentStatus(c.Request().Context(), ownerID(c), id, paymentStatus(req.PaymentStatus))
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.purchases.Delete(c.Request().Context(), ownerID(c), id); err != nil {
		return respondError(c, err, customersPath)
	}
	return c.NoContent(http.StatusNoContent)
}
