package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tiendafacil/inventario/internal/domain"
)

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": apiError{Code: code, Message: message, Detail: detail},
	})
}

// failFor maps the domain error taxonomy onto HTTP statuses.
func failFor(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case domain.IsDuplicate(err):
		return fail(c, http.StatusConflict, "DUPLICATE", err.Error(), nil)
	case domain.IsValidation(err):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "store operation failed", err.Error())
	}
}
