// Package webapi exposes the gateway operations to the screen controllers
// over a local HTTP JSON API, plus the CSV import/export endpoints.
package webapi

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tiendafacil/inventario/internal/app"
	"go.uber.org/zap"
)

type Server struct {
	app app.AppContext
	e   *echo.Echo
}

func NewServer(appCtx app.AppContext) *Server {
	s := &Server{app: appCtx, e: echo.New()}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.Use(middleware.Recover())
	s.e.Use(requestLogger())
	s.registerRoutes()
	return s
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	}
}

func (s *Server) registerRoutes() {
	api := s.e.Group("/api")

	api.GET("/products", s.listProducts)
	api.POST("/products", s.createProduct)
	api.POST("/products/import", s.importProducts)
	api.GET("/products/low-stock", s.lowStockProducts)
	api.GET("/products/out-of-stock", s.outOfStockProducts)
	api.GET("/products/:id", s.getProduct)
	api.PUT("/products/:id", s.updateProduct)
	api.DELETE("/products/:id", s.deleteProduct)

	api.POST("/sales", s.registerSale)
	api.GET("/sales", s.listSales)

	api.GET("/reports/sales", s.salesReport)
	api.GET("/reports/sales/export", s.exportSalesReport)
}

// Echo returns the underlying router, used by tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) Start() error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("web api listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
