package handler

import (
	"net/http"

	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const productsPath = "/api/products"

// ProductRequest defines the structure for product creation/update requests.
// Price accepts a JSON number or string.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description *string          `json:"description"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{Name: r.Name, Price: *r.Price, Description: r.Description}
}

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err, productsPath)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	product, err := h.products.Get(c.Request().Context(), ownerID(c), id)
	if err != nil {
		return respondError(c, err, productsPath)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	product, err := h.products.Create(c.Request().Context(), ownerID(c), req.input())
	if err != nil {
		return respondError(c, err, productsPath)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var req ProductRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	product, err := h.products.Update(c.Request().Context(), ownerID(c), id, req.input())
	if err != nil {
		return respondError(c, err, productsPath)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.products.Delete(c.Request().Context(), ownerID(c), id); err != nil {
		return respondError(c, err, productsPath)
	}
	return c.NoContent(http.StatusNoContent)
}
