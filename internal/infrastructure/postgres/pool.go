package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/consulta-cnpj/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC -> shopspring/decimal (capital social).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS cnpj_lookups (
	id                UUID PRIMARY KEY,
	cnpj              VARCHAR(20)  NOT NULL,
	headquarters_cnpj VARCHAR(14)  NOT NULL DEFAULT '',
	legal_name        TEXT         NOT NULL DEFAULT '',
	regime            VARCHAR(100) NOT NULL DEFAULT '',
	status            VARCHAR(100) NOT NULL DEFAULT '',
	share_capital     NUMERIC(18,2),
	outcome           VARCHAR(20)  NOT NULL,
	created_at        TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cnpj_lookups_created_at ON cnpj_lookups (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_cnpj_lookups_cnpj ON cnpj_lookups (cnpj varchar_pattern_ops);
`

// EnsureSchema crea la tabla del histórico si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
