package store

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"

	"github.com/tiendafacil/inventario/internal/domain"
	"go.etcd.io/bbolt"
)

// Index keys are "<value>\x00<id>" so non-unique values stay sortable and
// every entry remains addressable. The entry value is the record id.
const idxSep = byte(0)

// dateKeyLayout is fixed-width so lexicographic order equals chronological
// order; all date keys are rendered in UTC.
const dateKeyLayout = "2006-01-02T15:04:05.000000000Z07:00"

func idxKey(value []byte, id string) []byte {
	k := make([]byte, 0, len(value)+1+len(id))
	k = append(k, value...)
	k = append(k, idxSep)
	k = append(k, id...)
	return k
}

// idxValue splits an index key back into its value part.
func idxValue(key []byte) []byte {
	if i := bytes.IndexByte(key, idxSep); i >= 0 {
		return key[:i]
	}
	return key
}

func nameKey(name string) []byte {
	return []byte(strings.ToLower(name))
}

// qtyKey is order-preserving for negative quantities too: flipping the sign
// bit of the two's-complement value keeps big-endian byte order equal to
// numeric order.
func qtyKey(quantity int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(int64(quantity))^(1<<63))
	return k
}

func dateKey(t time.Time) []byte {
	return []byte(t.UTC().Format(dateKeyLayout))
}

func putProductIndexes(tx *bbolt.Tx, p *domain.Product) error {
	if err := tx.Bucket(domain.IdxProductName).Put(idxKey(nameKey(p.Name), p.ID), []byte(p.ID)); err != nil {
		return err
	}
	return tx.Bucket(domain.IdxProductQty).Put(idxKey(qtyKey(p.Quantity), p.ID), []byte(p.ID))
}

func deleteProductIndexes(tx *bbolt.Tx, p *domain.Product) error {
	if err := tx.Bucket(domain.IdxProductName).Delete(idxKey(nameKey(p.Name), p.ID)); err != nil {
		return err
	}
	return tx.Bucket(domain.IdxProductQty).Delete(idxKey(qtyKey(p.Quantity), p.ID))
}

func putSaleIndexes(tx *bbolt.Tx, s *domain.Sale) error {
	id := []byte(s.ID)
	if err := tx.Bucket(domain.IdxSaleProduct).Put(idxKey([]byte(s.ProductID), s.ID), id); err != nil {
		return err
	}
	if err := tx.Bucket(domain.IdxSaleDate).Put(idxKey(dateKey(s.Date), s.ID), id); err != nil {
		return err
	}
	return tx.Bucket(domain.IdxSaleName).Put(idxKey(nameKey(s.ProductName), s.ID), id)
}

// scanIndexPrefix walks every index entry whose value part equals prefix and
// hands the record id to fn.
func scanIndexPrefix(b *bbolt.Bucket, prefix []byte, fn func(id []byte) error) error {
	start := idxKey(prefix, "")
	c := b.Cursor()
	for k, v := c.Seek(start); k != nil && bytes.HasPrefix(k, start); k, v = c.Next() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// scanIndexRange walks index entries with low <= value < high in key order.
func scanIndexRange(b *bbolt.Bucket, low, high []byte, fn func(id []byte) error) error {
	c := b.Cursor()
	for k, v := c.Seek(low); k != nil && bytes.Compare(k, high) < 0; k, v = c.Next() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}
