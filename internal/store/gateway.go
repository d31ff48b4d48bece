// Package store implements the persistence gateway for the inventory
// system: a bbolt-backed store holding the products and sales collections,
// their secondary indices, and the compound sale-registration operation.
package store

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/tiendafacil/inventario/internal/domain"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var schemaVersionKey = []byte("schema_version")

// Gateway is the sole owner of the store file. It is constructed once by the
// application composition root and shared by reference; Open is memoized so
// redundant initialization from any call site converges on a single result.
type Gateway struct {
	path string
	bus  EventBus.Bus

	openOnce sync.Once
	openErr  error
	db       *bbolt.DB
}

// NewGateway creates a gateway for the store file at path. The event bus is
// optional; when present, post-commit signals are published on it.
func NewGateway(path string, bus EventBus.Bus) *Gateway {
	return &Gateway{path: path, bus: bus}
}

// Open initializes the store exactly once per process lifetime. Concurrent
// and repeated calls all observe the same completed (or failed) result.
func (g *Gateway) Open(ctx context.Context) error {
	g.openOnce.Do(func() {
		g.openErr = g.open()
	})
	return g.openErr
}

func (g *Gateway) open() error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return errors.Wrap(err, "create store directory")
	}

	db, err := bbolt.Open(g.path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return errors.Wrapf(err, "open store %s", g.path)
	}

	if err := db.Update(migrate); err != nil {
		_ = db.Close()
		return errors.Wrap(err, "migrate store")
	}

	g.db = db
	zap.L().Info("store opened",
		zap.String("path", g.path),
		zap.Int("schema", domain.SchemaVersion))
	return nil
}

// migrate is additive: it creates missing buckets and stamps the schema
// version, preserving any existing records.
func migrate(tx *bbolt.Tx) error {
	for _, name := range domain.Buckets {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return errors.Wrapf(err, "create bucket %s", name)
		}
	}
	meta := tx.Bucket(domain.BucketMeta)
	if meta.Get(schemaVersionKey) == nil {
		v := strconv.Itoa(domain.SchemaVersion)
		if err := meta.Put(schemaVersionKey, []byte(v)); err != nil {
			return errors.Wrap(err, "stamp schema version")
		}
	}
	return nil
}

// ensure resolves the open database handle, initializing the store if no
// caller has done so yet.
func (g *Gateway) ensure(ctx context.Context) (*bbolt.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.Open(ctx); err != nil {
		return nil, err
	}
	return g.db, nil
}

// SchemaVersion reads the stored schema version.
func (g *Gateway) SchemaVersion(ctx context.Context) (int, error) {
	db, err := g.ensure(ctx)
	if err != nil {
		return 0, err
	}
	var version int
	err = db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(domain.BucketMeta).Get(schemaVersionKey)
		if raw == nil {
			return errors.New("schema version missing")
		}
		version, err = strconv.Atoi(string(raw))
		return err
	})
	return version, err
}

// Backup writes a consistent snapshot of the store to path.
func (g *Gateway) Backup(ctx context.Context, path string) error {
	db, err := g.ensure(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create backup directory")
	}
	return db.View(func(tx *bbolt.Tx) error {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create backup file")
		}
		defer f.Close()
		if _, err := tx.WriteTo(f); err != nil {
			return errors.Wrap(err, "write backup")
		}
		return nil
	})
}

// Close releases the store file. The gateway cannot be reopened afterwards.
func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

func (g *Gateway) publish(topic string, record interface{}) {
	if g.bus != nil {
		g.bus.Publish(topic, record)
	}
}
