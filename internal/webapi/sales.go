package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/tiendafacil/inventario/internal/domain"
)

type salePayload struct {
	ProductID string      `json:"productId"`
	Quantity  interface{} `json:"quantity"`
	SalePrice interface{} `json:"salePrice"`
}

// registerSale carries the sell-screen validation: product selected,
// positive quantity and price, and enough stock on hand. The gateway itself
// stays permissive, so the stock check lives here at the boundary.
func (s *Server) registerSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale", err.Error())
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A product must be selected", nil)
	}
	qty, err := toWholeNumber(payload.Quantity)
	if err != nil || qty <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be greater than 0", nil)
	}
	price, err := cast.ToFloat64E(payload.SalePrice)
	if err != nil || price <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Sale price must be greater than 0", nil)
	}

	ctx := c.Request().Context()
	gw := s.app.Gateway()

	product, err := gw.GetProductByID(ctx, payload.ProductID)
	if err != nil {
		return failFor(c, err)
	}
	if qty > product.Quantity {
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Not enough stock available", map[string]interface{}{
			"available": product.Quantity,
			"requested": qty,
		})
	}

	sale, err := gw.RegisterSale(ctx, domain.SaleInput{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
		CostPrice:   product.CostPrice,
		SalePrice:   price,
	})
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, sale)
}

func (s *Server) listSales(c echo.Context) error {
	ctx := c.Request().Context()
	gw := s.app.Gateway()

	if productID := strings.TrimSpace(c.QueryParam("productId")); productID != "" {
		sales, err := gw.GetSalesByProduct(ctx, productID)
		if err != nil {
			return failFor(c, err)
		}
		return ok(c, sales)
	}
	if name := strings.TrimSpace(c.QueryParam("product")); name != "" {
		sales, err := gw.GetSalesByProductName(ctx, name)
		if err != nil {
			return failFor(c, err)
		}
		return ok(c, sales)
	}

	sales, err := gw.GetSales(ctx)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, sales)
}
