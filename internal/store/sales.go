package store

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/tiendafacil/inventario/internal/domain"
	"github.com/tiendafacil/inventario/pkg/common"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func validateSaleInput(in domain.SaleInput) error {
	if in.ProductID == "" {
		return domain.NewValidationError("productId", "cannot be empty")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "must be > 0")
	}
	if math.IsNaN(in.CostPrice) || math.IsInf(in.CostPrice, 0) || in.CostPrice < 0 {
		return domain.NewValidationError("costPrice", "must be a number >= 0")
	}
	if math.IsNaN(in.SalePrice) || math.IsInf(in.SalePrice, 0) || in.SalePrice < 0 {
		return domain.NewValidationError("salePrice", "must be a number >= 0")
	}
	return nil
}

// RegisterSale is the one compound operation: in a single read-write
// transaction it reads the referenced product, decrements its quantity,
// restamps it and persists it together with a freshly built sale record.
// Both writes commit or neither does. The gateway performs no stock
// sufficiency check; callers pre-validate, and the quantity may go negative
// when they do not.
func (g *Gateway) RegisterSale(ctx context.Context, in domain.SaleInput) (*domain.Sale, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &domain.Sale{
		ID:          common.GenerateID(),
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		Date:        now,
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		products := tx.Bucket(domain.BucketProducts)
		raw := products.Get([]byte(in.ProductID))
		if raw == nil {
			return domain.NewProductNotFoundError(in.ProductID)
		}
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrap(err, "decode product")
		}
		// Denormalized snapshots default from the product itself so an
		// input that omits them still records the cost basis and name the
		// product had at sale time.
		if sale.ProductName == "" {
			sale.ProductName = p.Name
		}
		if sale.CostPrice == 0 {
			sale.CostPrice = p.CostPrice
		}
		sale.Profit = (sale.SalePrice - sale.CostPrice) * float64(sale.Quantity)

		if err := deleteProductIndexes(tx, &p); err != nil {
			return err
		}
		p.Quantity -= sale.Quantity
		p.UpdatedAt = now

		buf, err := json.Marshal(&p)
		if err != nil {
			return errors.Wrap(err, "encode product")
		}
		if err := products.Put([]byte(p.ID), buf); err != nil {
			return err
		}
		if err := putProductIndexes(tx, &p); err != nil {
			return err
		}

		sales := tx.Bucket(domain.BucketSales)
		if sales.Get([]byte(sale.ID)) != nil {
			return domain.NewDuplicateSaleError(sale.ID)
		}
		sbuf, err := json.Marshal(sale)
		if err != nil {
			return errors.Wrap(err, "encode sale")
		}
		if err := sales.Put([]byte(sale.ID), sbuf); err != nil {
			return err
		}
		return putSaleIndexes(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("sale registered",
		zap.String("id", sale.ID),
		zap.String("product", sale.ProductName),
		zap.Int("quantity", sale.Quantity))
	g.publish(domain.EventSaleRegistered, sale)
	return sale, nil
}

// GetSales returns every sale.
func (g *Gateway) GetSales(ctx context.Context) ([]domain.Sale, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(domain.BucketSales).ForEach(func(_, v []byte) error {
			var s domain.Sale
			if err := json.Unmarshal(v, &s); err != nil {
				return errors.Wrap(err, "decode sale")
			}
			out = append(out, s)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetSalesByDateRange returns sales within the half-open interval
// [start, end) via a cursor scan on the date index.
func (g *Gateway) GetSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		sales := tx.Bucket(domain.BucketSales)
		return scanIndexRange(tx.Bucket(domain.IdxSaleDate), dateKey(start), dateKey(end), func(id []byte) error {
			return appendSale(sales, id, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetSalesByProduct returns all sales referencing the product id.
func (g *Gateway) GetSalesByProduct(ctx context.Context, productID string) ([]domain.Sale, error) {
	return g.salesByIndex(ctx, domain.IdxSaleProduct, []byte(productID))
}

// GetSalesByProductName returns all sales whose denormalized product name
// matches (case-insensitive), via the productName index.
func (g *Gateway) GetSalesByProductName(ctx context.Context, name string) ([]domain.Sale, error) {
	return g.salesByIndex(ctx, domain.IdxSaleName, nameKey(name))
}

func (g *Gateway) salesByIndex(ctx context.Context, idx, value []byte) ([]domain.Sale, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		sales := tx.Bucket(domain.BucketSales)
		return scanIndexPrefix(tx.Bucket(idx), value, func(id []byte) error {
			return appendSale(sales, id, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func appendSale(b *bbolt.Bucket, id []byte, out *[]domain.Sale) error {
	raw := b.Get(id)
	if raw == nil {
		return nil
	}
	var s domain.Sale
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "decode sale")
	}
	*out = append(*out, s)
	return nil
}

// CalculateSalesTotals is a pure reduction over a sale list: units sold,
// profit and revenue. Missing profit counts as zero.
func CalculateSalesTotals(sales []domain.Sale) domain.Totals {
	var t domain.Totals
	for _, s := range sales {
		t.TotalSold += s.Quantity
		t.TotalProfit += s.Profit
		t.TotalRevenue += float64(s.Quantity) * s.SalePrice
	}
	return t
}
