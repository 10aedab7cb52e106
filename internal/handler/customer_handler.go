package handler

import (
	"net/http"

	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
)

const customersPath = "/api/customers"

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=15"`
	Address string `json:"address"`
}

func (r CustomerRequest) input() service.CustomerInput {
	return service.CustomerInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, customers)
}

// Get returns the customer with its purchase history
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	detail, err := h.customers.Detail(c.Request().Context(), ownerID(c), id)
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req CustomerRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	customer, err := h.customers.Create(c.Request().Context(), ownerID(c), req.input())
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var req CustomerRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	customer, err := h.customers.Update(c.Request().Context(), ownerID(c), id, req.input())
	if err != nil {
		return respondError(c, err, customersPath)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.customers.Delete(c.Request().Context(), ownerID(c), id); err != nil {
		return respondError(c, err, customersPath)
	}
	return c.NoContent(http.StatusNoContent)
}
