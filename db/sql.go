package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	"github.com/2HgO/subscriber-requests-go/config"
)

const requestsTable = "subscriber_requests"

func GetDataDBConnection(ctx context.Context, c *config.Config) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = c.MySQL.User
	cfg.Passwd = c.MySQL.Password
	cfg.Net = "tcp"
	cfg.Addr = c.MySQL.Addr
	cfg.DBName = c.MySQL.Database
	cfg.ParseTime = true

	// Get a database handle.
	dataDb, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("mysql: open %s: %w", c.MySQL.Addr, err)
	}
	if err = dataDb.PingContext(ctx); err != nil {
		dataDb.Close()
		return nil, fmt.Errorf("mysql: ping %s: %w", c.MySQL.Addr, err)
	}

	return dataDb, nil
}

const createRequestsTable = `CREATE TABLE IF NOT EXISTS ` + requestsTable + ` (
	storage_key VARCHAR(255) NOT NULL PRIMARY KEY,
	document JSON NOT NULL,
	updated_at DATETIME NOT NULL
) DEFAULT CHARSET = utf8mb4`

type MySQLStore struct {
	db       *sql.DB
	location string
}

func NewMySQLStore(db *sql.DB, cfg config.MySQLConfig) *MySQLStore {
	return &MySQLStore{
		db:       db,
		location: "mysql://" + cfg.Addr + "/" + cfg.Database + "/" + requestsTable + "/",
	}
}

func (m *MySQLStore) EnsureNamespace(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, createRequestsTable)
	return err
}

func upsertRequest(key string, document []byte, now time.Time) sq.InsertBuilder {
	return sq.
		Insert(requestsTable).
		Columns("storage_key", "document", "updated_at").
		Values(key, string(document), now).
		Suffix("ON DUPLICATE KEY UPDATE document = VALUES(document), updated_at = VALUES(updated_at)")
}

func (m *MySQLStore) Put(ctx context.Context, key string, document []byte) (string, error) {
	_, err := upsertRequest(key, document, time.Now().UTC()).
		RunWith(m.db).
		ExecContext(ctx)
	if err != nil {
		return "", err
	}
	return m.location + key, nil
}
