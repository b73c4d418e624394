package postgres

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	DefaultQueryTimeout    = 30 * time.Second
	DefaultConnectTimeout  = 10 * time.Second
	DefaultPingTimeout     = 5 * time.Second
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
)

type PoolConfig struct {
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open returns a lazily connecting handle. The DSN gets a connect_timeout
// so a server that accepts but never answers cannot stall the handshake.
func Open(dsn string, pool PoolConfig) (*sqlx.DB, error) {
	if pool.ConnectTimeout <= 0 {
		pool.ConnectTimeout = DefaultConnectTimeout
	}
	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = DefaultMaxOpenConns
	}
	if pool.MaxIdleConns <= 0 {
		pool.MaxIdleConns = DefaultMaxIdleConns
	}
	if pool.ConnMaxLifetime <= 0 {
		pool.ConnMaxLifetime = DefaultConnMaxLifetime
	}

	db, err := sqlx.Open("postgres", withConnectTimeout(dsn, pool.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return db, nil
}

// withConnectTimeout adds connect_timeout (whole seconds, at least 1) to a
// URL or key=value DSN unless it already carries one.
func withConnectTimeout(dsn string, timeout time.Duration) string {
	if dsn == "" || timeout <= 0 || strings.Contains(dsn, "connect_timeout") {
		return dsn
	}
	secs := int(math.Max(1, math.Ceil(timeout.Seconds())))

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("connect_timeout", fmt.Sprint(secs))
		u.RawQuery = q.Encode()
		return u.String()
	}
	return fmt.Sprintf("%s connect_timeout=%d", dsn, secs)
}
