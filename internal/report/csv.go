package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/tiendafacil/inventario/internal/domain"
)

// CSVHeader is the fixed export header the report screen has always used.
const CSVHeader = "Fecha,Producto,Cantidad,Precio Costo,Precio Venta,Ganancia"

// ExportSalesCSV writes one row per sale under the fixed header. The product
// name is always double-quoted; numeric fields are bare. This exact shape is
// what downstream spreadsheets expect, so it is rendered by hand rather than
// through a minimal-quoting CSV writer.
func ExportSalesCSV(w io.Writer, sales []domain.Sale) error {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, s := range sales {
		b.WriteString(FormatDate(s.Date))
		b.WriteByte(',')
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(s.ProductName, `"`, `""`))
		b.WriteByte('"')
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(s.Quantity))
		b.WriteByte(',')
		b.WriteString(formatNumber(s.CostPrice))
		b.WriteByte(',')
		b.WriteString(formatNumber(s.SalePrice))
		b.WriteByte(',')
		b.WriteString(formatNumber(s.Profit))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write csv")
}

// formatNumber renders a price the way the original report did: shortest
// decimal form, no forced trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// productRow is the CSV shape accepted by the bulk product import.
type productRow struct {
	Name      string  `csv:"name"`
	Quantity  int     `csv:"quantity"`
	CostPrice float64 `csv:"costPrice"`
}

// ParseProductsCSV reads a product import file (columns name, quantity,
// costPrice) into products ready for insertion.
func ParseProductsCSV(r io.Reader) ([]domain.Product, error) {
	var rows []productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "parse products csv")
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Product{
			Name:      strings.TrimSpace(row.Name),
			Quantity:  row.Quantity,
			CostPrice: row.CostPrice,
		})
	}
	return out, nil
}
