package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

// ClientStorages groups the stores of the field agent.
type ClientStorages struct {
	// Local is the sqlite replica on the device.
	Local LocalStore
	// Remote is the cloud document store. Nil when no remote DSN is
	// configured.
	Remote RemoteDocumentStore
}

// NewClientStorages opens and migrates the local replica and, when
// configured, the cloud document store. A remote store that cannot be
// migrated yet (device offline) is still returned; migrations are retried on
// the next start.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.LocalDSN, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateLocal(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := &ClientStorages{Local: NewLocalStore(db)}

	if cfg.RemoteDSN == "" {
		log.Warn().Msg("remote document store is not configured, cloud sync disabled")
		return storages, nil
	}

	remoteDB, err := NewConnectPostgres(ctx, cfg.RemoteDSN, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}
	if err = remoteDB.MigrateRemote(); err != nil {
		log.Warn().Err(err).Msg("remote migrations skipped")
	}
	storages.Remote = NewRemoteDocumentStore(remoteDB)

	return storages, nil
}

// Close releases every open store.
func (s *ClientStorages) Close() error {
	var err error
	if s.Remote != nil {
		err = s.Remote.Close()
	}
	if closeErr := s.Local.Close(); closeErr != nil {
		err = closeErr
	}
	return err
}

// NewHubStorage opens and migrates the hub store at dsn.
func NewHubStorage(ctx context.Context, dsn string, log *logger.Logger) (HubRepository, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateHub(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewHubRepository(db), nil
}
