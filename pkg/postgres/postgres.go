package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Config struct {
	DSN         string        `split_words:"true" required:"true"`
	DialTimeout time.Duration `split_words:"true" default:"10s"`
	ReadTimeout time.Duration `split_words:"true" default:"10s"`
	PingTimeout time.Duration `split_words:"true" default:"5s"`
}

// New opens a bun database handle and verifies connectivity with a bounded
// ping. A store that cannot be reached at startup is a fatal condition for
// the caller, so the error is returned rather than deferred to first use.
func New(ctx context.Context, cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
		pgdriver.WithReadTimeout(cfg.ReadTimeout),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
