package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

// NewConnectPostgres opens the cloud document store through the pgx stdlib
// driver. The ping is allowed to fail: a field device is often offline at
// start, and the remote store is only needed once a cycle runs.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)

	if err = conn.PingContext(ctx); err != nil {
		log.Warn().Err(err).Str("func", "NewConnectPostgres").Msg("remote store is not reachable yet")
	} else {
		log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")
	}

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}
