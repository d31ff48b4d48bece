package webapi

import (
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/tiendafacil/inventario/internal/domain"
	"github.com/tiendafacil/inventario/internal/report"
)

// toWholeNumber converts a payload value to an int. Absent values and
// fractional numbers are rejected rather than coerced to a misleading
// zero or truncated.
func toWholeNumber(v interface{}) (int, error) {
	if v == nil {
		return 0, errors.New("value is missing")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("%v is not a whole number", f)
	}
	return int(f), nil
}

// productPayload accepts quantity and costPrice as either JSON numbers or
// form-style strings; they are converted explicitly and garbage is a typed
// 400, never a silent zero.
type productPayload struct {
	Name      string      `json:"name"`
	Quantity  interface{} `json:"quantity"`
	CostPrice interface{} `json:"costPrice"`
	Image     string      `json:"image"`
}

func (p *productPayload) toProduct() (*domain.Product, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}
	qty, err := toWholeNumber(p.Quantity)
	if err != nil {
		return nil, domain.NewValidationError("quantity", "must be a whole number")
	}
	if p.CostPrice == nil {
		return nil, domain.NewValidationError("costPrice", "must be a number")
	}
	cost, err := cast.ToFloat64E(p.CostPrice)
	if err != nil {
		return nil, domain.NewValidationError("costPrice", "must be a number")
	}
	return &domain.Product{
		Name:      name,
		Quantity:  qty,
		CostPrice: cost,
		Image:     p.Image,
	}, nil
}

func (s *Server) listProducts(c echo.Context) error {
	ctx := c.Request().Context()
	gw := s.app.Gateway()

	// Empty queries are short-circuited here, not in the gateway.
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		products, err := gw.GetProducts(ctx)
		if err != nil {
			return failFor(c, err)
		}
		return ok(c, products)
	}

	products, err := gw.SearchProductsByName(ctx, q)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, products)
}

func (s *Server) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := payload.toProduct()
	if err != nil {
		return failFor(c, err)
	}
	if err := s.app.Gateway().AddProduct(c.Request().Context(), p); err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.app.Gateway().GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func (s *Server) updateProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := payload.toProduct()
	if err != nil {
		return failFor(c, err)
	}
	p.ID = c.Param("id")
	if err := s.app.Gateway().UpdateProduct(c.Request().Context(), p); err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := s.app.Gateway().DeleteProduct(c.Request().Context(), id); err != nil {
		return failFor(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func (s *Server) lowStockProducts(c echo.Context) error {
	products, err := s.app.Gateway().GetLowStockProducts(c.Request().Context())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, products)
}

func (s *Server) outOfStockProducts(c echo.Context) error {
	products, err := s.app.Gateway().GetOutOfStockProducts(c.Request().Context())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, products)
}

// importProducts bulk-adds products from a CSV request body with columns
// name, quantity, costPrice. Rows are inserted one by one; the response
// reports how many made it and the first error encountered, if any.
func (s *Server) importProducts(c echo.Context) error {
	products, err := report.ParseProductsCSV(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CSV", "Unable to parse import file", err.Error())
	}

	ctx := c.Request().Context()
	gw := s.app.Gateway()
	imported := 0
	var firstErr error
	for i := range products {
		if err := gw.AddProduct(ctx, &products[i]); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		imported++
	}

	resp := map[string]interface{}{"imported": imported, "total": len(products)}
	if firstErr != nil {
		resp["error"] = firstErr.Error()
	}
	return ok(c, resp)
}
