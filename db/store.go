package db

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/2HgO/subscriber-requests-go/config"
)

// RecordStore persists serialized subscriber requests under their natural
// key. A Put to an existing key replaces the stored document.
type RecordStore interface {
	// EnsureNamespace creates the location documents are written to. It is
	// idempotent.
	EnsureNamespace(ctx context.Context) error
	// Put writes document under key in a single operation and returns the
	// resolved storage location.
	Put(ctx context.Context, key string, document []byte) (string, error)
}

const connectTimeout = 10 * time.Second

// NewRecordStore opens the store selected by the storage driver. The MySQL
// connection is closed when the application stops.
func NewRecordStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (RecordStore, error) {
	switch cfg.StorageDriver {
	case config.MySQLDriver:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		conn, err := GetDataDBConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return conn.Close()
			},
		})
		log.Info("using mysql record store", zap.String("addr", cfg.MySQL.Addr), zap.String("database", cfg.MySQL.Database))
		return NewMySQLStore(conn, cfg.MySQL), nil
	default:
		log.Info("using file record store", zap.String("dir", cfg.StorageDir))
		return NewFileStore(cfg.StorageDir), nil
	}
}
