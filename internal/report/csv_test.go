package report

import (
	"strings"
	"testing"
	"time"

	"github.com/tiendafacil/inventario/internal/domain"
)

func TestExportSalesCSV(t *testing.T) {
	sales := []domain.Sale{{
		Date:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local),
		ProductName: "Widget",
		Quantity:    2,
		CostPrice:   2.00,
		SalePrice:   5.00,
		Profit:      6.00,
	}}

	var b strings.Builder
	if err := ExportSalesCSV(&b, sales); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if lines[0] != CSVHeader {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != `15/01/2024,"Widget",2,2,5,6` {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestExportSalesCSVEscapesQuotes(t *testing.T) {
	sales := []domain.Sale{{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		ProductName: `Tubo 1/2"`,
		Quantity:    1,
		SalePrice:   3,
	}}

	var b strings.Builder
	if err := ExportSalesCSV(&b, sales); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(b.String(), `"Tubo 1/2"""`) {
		t.Fatalf("embedded quote not doubled: %q", b.String())
	}
}

func TestParseProductsCSV(t *testing.T) {
	in := "name,quantity,costPrice\nWidget,10,2.5\n\"Tornillo, caja\",100,0.1\n"
	products, err := ParseProductsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Name != "Widget" || products[0].Quantity != 10 || products[0].CostPrice != 2.5 {
		t.Fatalf("first row wrong: %+v", products[0])
	}
	if products[1].Name != "Tornillo, caja" {
		t.Fatalf("quoted name wrong: %q", products[1].Name)
	}
}

func TestParseProductsCSVMalformed(t *testing.T) {
	in := "name,quantity,costPrice\nWidget,diez,2.5\n"
	if _, err := ParseProductsCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected parse error for non-numeric quantity")
	}
}
