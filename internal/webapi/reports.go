package webapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/tiendafacil/inventario/internal/domain"
	"github.com/tiendafacil/inventario/internal/report"
	"github.com/tiendafacil/inventario/internal/store"
)

// resolveReportSales loads the sales for a report request. Preset filters
// (all/today/week/month) mirror the report screen tabs; explicit start/end
// parameters accept any common date format.
func (s *Server) resolveReportSales(c echo.Context) ([]domain.Sale, string, error) {
	ctx := c.Request().Context()
	gw := s.app.Gateway()

	startParam := strings.TrimSpace(c.QueryParam("start"))
	endParam := strings.TrimSpace(c.QueryParam("end"))
	if startParam != "" || endParam != "" {
		if startParam == "" {
			return nil, "", domain.NewValidationError("start", "is required when end is given")
		}
		start, err := dateparse.ParseLocal(startParam)
		if err != nil {
			return nil, "", domain.NewValidationError("start", "unrecognized date")
		}
		// An open-ended range: no end means everything from start until now.
		end := time.Now()
		if endParam != "" {
			end, err = dateparse.ParseLocal(endParam)
			if err != nil {
				return nil, "", domain.NewValidationError("end", "unrecognized date")
			}
		}
		sales, err := gw.GetSalesByDateRange(ctx, start, end)
		return sales, "rango", err
	}

	filter := strings.ToLower(strings.TrimSpace(c.QueryParam("filter")))
	var (
		start, end time.Time
		ranged     = true
	)
	switch filter {
	case "today":
		start, end = report.TodayRange()
	case "week":
		start, end = report.WeekRange()
	case "month":
		start, end = report.MonthRange()
	case "", "all":
		filter = "all"
		ranged = false
	default:
		return nil, "", domain.NewValidationError("filter", "must be all, today, week or month")
	}

	if !ranged {
		sales, err := gw.GetSales(ctx)
		return sales, filter, err
	}
	sales, err := gw.GetSalesByDateRange(ctx, start, end)
	return sales, filter, err
}

// salesReport returns the filtered sales with their totals block, the same
// numbers the report screen shows above the table.
func (s *Server) salesReport(c echo.Context) error {
	sales, filter, err := s.resolveReportSales(c)
	if err != nil {
		return failFor(c, err)
	}
	totals := store.CalculateSalesTotals(sales)
	return ok(c, map[string]interface{}{
		"filter": filter,
		"sales":  sales,
		"totals": totals,
		"formatted": map[string]string{
			"totalProfit":  report.FormatCurrency(totals.TotalProfit),
			"totalRevenue": report.FormatCurrency(totals.TotalRevenue),
		},
	})
}

// exportSalesReport streams the filtered sales as a CSV download named
// reporte_<filter>_<date>.csv.
func (s *Server) exportSalesReport(c echo.Context) error {
	sales, filter, err := s.resolveReportSales(c)
	if err != nil {
		return failFor(c, err)
	}
	if len(sales) == 0 {
		return fail(c, http.StatusNotFound, "NO_DATA", "No data to export", nil)
	}

	var buf bytes.Buffer
	if err := report.ExportSalesCSV(&buf, sales); err != nil {
		return failFor(c, err)
	}

	filename := fmt.Sprintf("reporte_%s_%s.csv", filter, time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
