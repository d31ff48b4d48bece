package store

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tiendafacil/inventario/internal/domain"
	"github.com/tiendafacil/inventario/pkg/common"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// validateProduct rejects malformed input with a typed error instead of
// silently coercing it.
func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.NewValidationError("name", "cannot be empty")
	}
	if p.Quantity < 0 {
		return domain.NewValidationError("quantity", "must be >= 0")
	}
	if math.IsNaN(p.CostPrice) || math.IsInf(p.CostPrice, 0) {
		return domain.NewValidationError("costPrice", "must be a number")
	}
	if p.CostPrice < 0 {
		return domain.NewValidationError("costPrice", "must be >= 0")
	}
	return nil
}

// AddProduct assigns an id when absent, stamps timestamps and inserts the
// product. Inserting an existing id fails with a DuplicateError.
func (g *Gateway) AddProduct(ctx context.Context, p *domain.Product) error {
	db, err := g.ensure(ctx)
	if err != nil {
		return err
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = common.GenerateID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err = db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(domain.BucketProducts)
		if b.Get([]byte(p.ID)) != nil {
			return domain.NewDuplicateProductError(p.ID)
		}
		buf, err := json.Marshal(p)
		if err != nil {
			return errors.Wrap(err, "encode product")
		}
		if err := b.Put([]byte(p.ID), buf); err != nil {
			return err
		}
		return putProductIndexes(tx, p)
	})
	if err != nil {
		return err
	}

	zap.L().Info("product added", zap.String("id", p.ID), zap.String("name", p.Name))
	g.publish(domain.EventProductAdded, p)
	return nil
}

// GetProducts returns every product in store iteration order.
func (g *Gateway) GetProducts(ctx context.Context) ([]domain.Product, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(domain.BucketProducts).ForEach(func(_, v []byte) error {
			var p domain.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return errors.Wrap(err, "decode product")
			}
			out = append(out, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProductByID returns the product or a NotFoundError.
func (g *Gateway) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	err = db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(domain.BucketProducts).Get([]byte(id))
		if raw == nil {
			return domain.NewProductNotFoundError(id)
		}
		return json.Unmarshal(raw, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct overwrites the product with upsert semantics: a missing id is
// created. UpdatedAt is restamped; CreatedAt of an existing record is kept.
func (g *Gateway) UpdateProduct(ctx context.Context, p *domain.Product) error {
	db, err := g.ensure(ctx)
	if err != nil {
		return err
	}
	if p.ID == "" {
		return domain.NewValidationError("id", "cannot be empty")
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(domain.BucketProducts)
		now := time.Now()
		if raw := b.Get([]byte(p.ID)); raw != nil {
			var old domain.Product
			if err := json.Unmarshal(raw, &old); err != nil {
				return errors.Wrap(err, "decode product")
			}
			if err := deleteProductIndexes(tx, &old); err != nil {
				return err
			}
			p.CreatedAt = old.CreatedAt
		} else if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now

		buf, err := json.Marshal(p)
		if err != nil {
			return errors.Wrap(err, "encode product")
		}
		if err := b.Put([]byte(p.ID), buf); err != nil {
			return err
		}
		return putProductIndexes(tx, p)
	})
}

// DeleteProduct removes the product and its index entries. Deleting an
// absent id is a no-op, not an error. Existing sales keep their denormalized
// snapshot of the product.
func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	db, err := g.ensure(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(domain.BucketProducts)
		raw := b.Get([]byte(id))
		if raw == nil {
			return nil
		}
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrap(err, "decode product")
		}
		if err := deleteProductIndexes(tx, &p); err != nil {
			return err
		}
		return b.Delete([]byte(id))
	})
}

// SearchProductsByName matches the query as a case-insensitive substring of
// the product name, walking the name index so results come back name-ordered.
func (g *Gateway) SearchProductsByName(ctx context.Context, query string) ([]domain.Product, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		products := tx.Bucket(domain.BucketProducts)
		c := tx.Bucket(domain.IdxProductName).Cursor()
		for k, id := c.First(); k != nil; k, id = c.Next() {
			if !strings.Contains(string(idxValue(k)), term) {
				continue
			}
			raw := products.Get(id)
			if raw == nil {
				continue
			}
			var p domain.Product
			if err := json.Unmarshal(raw, &p); err != nil {
				return errors.Wrap(err, "decode product")
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLowStockProducts returns products with 0 < quantity < 5 via a range
// scan on the quantity index.
func (g *Gateway) GetLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	return g.productsByQtyRange(ctx, 1, domain.LowStockThreshold)
}

// GetOutOfStockProducts returns products with quantity == 0.
func (g *Gateway) GetOutOfStockProducts(ctx context.Context) ([]domain.Product, error) {
	return g.productsByQtyRange(ctx, 0, 1)
}

func (g *Gateway) productsByQtyRange(ctx context.Context, low, high int) ([]domain.Product, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	err = db.View(func(tx *bbolt.Tx) error {
		products := tx.Bucket(domain.BucketProducts)
		return scanIndexRange(tx.Bucket(domain.IdxProductQty), qtyKey(low), qtyKey(high), func(id []byte) error {
			raw := products.Get(id)
			if raw == nil {
				return nil
			}
			var p domain.Product
			if err := json.Unmarshal(raw, &p); err != nil {
				return errors.Wrap(err, "decode product")
			}
			out = append(out, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
