package store

import (
	"context"
	"testing"

	"github.com/tiendafacil/inventario/internal/domain"
)

func TestAddAndGetProduct(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p := &domain.Product{Name: "Widget", Quantity: 10, CostPrice: 2.00}
	if err := g.AddProduct(ctx, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatal("expected stamped timestamps")
	}

	got, err := g.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != p.Name || got.Quantity != p.Quantity || got.CostPrice != p.CostPrice {
		t.Fatalf("got %+v, want fields of %+v", got, p)
	}
}

func TestAddProductDuplicateID(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p := &domain.Product{ID: "fixed-id", Name: "Widget", Quantity: 1, CostPrice: 1}
	if err := g.AddProduct(ctx, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	err := g.AddProduct(ctx, &domain.Product{ID: "fixed-id", Name: "Other", Quantity: 1, CostPrice: 1})
	if !domain.IsDuplicate(err) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
}

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	cases := []struct {
		name string
		p    domain.Product
	}{
		{"empty name", domain.Product{Name: "  ", Quantity: 1, CostPrice: 1}},
		{"negative quantity", domain.Product{Name: "Widget", Quantity: -1, CostPrice: 1}},
		{"negative cost", domain.Product{Name: "Widget", Quantity: 1, CostPrice: -0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.p
			if err := g.AddProduct(ctx, &p); !domain.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	g := newTestGateway(t)
	_, err := g.GetProductByID(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateProductUpsert(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p := &domain.Product{Name: "Widget", Quantity: 10, CostPrice: 2}
	if err := g.AddProduct(ctx, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	created := p.CreatedAt

	p.Name = "Widget Pro"
	p.Quantity = 7
	if err := g.UpdateProduct(ctx, p); err != nil {
		t.Fatalf("update product: %v", err)
	}
	got, err := g.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Widget Pro" || got.Quantity != 7 {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed on update: %v != %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.After(created) && !got.UpdatedAt.Equal(created) {
		t.Fatalf("updatedAt not restamped: %v", got.UpdatedAt)
	}

	// Upsert: updating an absent id creates it.
	fresh := &domain.Product{ID: "brand-new", Name: "Gadget", Quantity: 2, CostPrice: 3}
	if err := g.UpdateProduct(ctx, fresh); err != nil {
		t.Fatalf("upsert product: %v", err)
	}
	if _, err := g.GetProductByID(ctx, "brand-new"); err != nil {
		t.Fatalf("upserted product missing: %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p := &domain.Product{Name: "Widget", Quantity: 1, CostPrice: 1}
	if err := g.AddProduct(ctx, p); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := g.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := g.GetProductByID(ctx, p.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}

	// Deleting an absent id is a no-op, not an error.
	if err := g.DeleteProduct(ctx, "missing"); err != nil {
		t.Fatalf("delete of absent id should be a no-op, got %v", err)
	}
}

func TestSearchProductsByName(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	for _, name := range []string{"Widget", "Gadget", "Wide Brush"} {
		if err := g.AddProduct(ctx, &domain.Product{Name: name, Quantity: 1, CostPrice: 1}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	got, err := g.SearchProductsByName(ctx, "wid")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search 'wid' returned %d products, want 2", len(got))
	}

	none, err := g.SearchProductsByName(ctx, "xyz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("search 'xyz' returned %d products, want 0", len(none))
	}
}

// TestStockClassification follows a product from healthy stock through low
// stock to out of stock via successive sales.
func TestStockClassification(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p := &domain.Product{Name: "Widget", Quantity: 10, CostPrice: 2.00}
	if err := g.AddProduct(ctx, p); err != nil {
		t.Fatalf("add product: %v", err)
	}

	low, err := g.GetLowStockProducts(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if containsProduct(low, p.ID) {
		t.Fatal("quantity 10 should not be low stock")
	}

	if _, err := g.RegisterSale(ctx, domain.SaleInput{ProductID: p.ID, Quantity: 6, CostPrice: 2, SalePrice: 5}); err != nil {
		t.Fatalf("sale of 6: %v", err)
	}
	low, err = g.GetLowStockProducts(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if !containsProduct(low, p.ID) {
		t.Fatal("quantity 4 should be low stock")
	}

	if _, err := g.RegisterSale(ctx, domain.SaleInput{ProductID: p.ID, Quantity: 4, CostPrice: 2, SalePrice: 5}); err != nil {
		t.Fatalf("sale of 4: %v", err)
	}
	low, err = g.GetLowStockProducts(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if containsProduct(low, p.ID) {
		t.Fatal("quantity 0 should not be low stock")
	}
	out, err := g.GetOutOfStockProducts(ctx)
	if err != nil {
		t.Fatalf("out of stock: %v", err)
	}
	if !containsProduct(out, p.ID) {
		t.Fatal("quantity 0 should be out of stock")
	}
}

func containsProduct(products []domain.Product, id string) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}
