// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/models"
)

type remoteDocumentStore struct {
	db    *DB
	retry RetryConfig
}

// RemoteOption customises [NewRemoteDocumentStore].
type RemoteOption func(*remoteDocumentStore)

// WithRetryConfig overrides the backoff of retryable failures.
func WithRetryConfig(cfg RetryConfig) RemoteOption {
	return func(r *remoteDocumentStore) { r.retry = cfg }
}

// NewRemoteDocumentStore exposes the Postgres documents table as a document
// store. Every document is one row keyed by (collection, id) with its fields
// in a jsonb column.
func NewRemoteDocumentStore(db *DB, opts ...RemoteOption) RemoteDocumentStore {
	r := &remoteDocumentStore{db: db, retry: DefaultRetryConfig()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *remoteDocumentStore) Get(ctx context.Context, ref models.DocumentRef) (models.Document, bool, error) {
	query, args, err := buildGetDocumentQuery(ref)
	if err != nil {
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(ref.Collection, r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Document{}, false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "remoteDocumentStore.Get").
			Str("collection", ref.Collection).
			Str("id", ref.ID).
			Msg("failed to read document")
		return models.Document{}, false, err
	}

	return doc, true, nil
}

func (r *remoteDocumentStore) GetMany(ctx context.Context, collection string, ids []string) (map[string]models.Document, error) {
	docs := make(map[string]models.Document, len(ids))

	for start := 0; start < len(ids); start += getManyChunkSize {
		end := min(start+getManyChunkSize, len(ids))

		query, args, err := buildGetDocumentsQuery(collection, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = r.queryDocuments(ctx, collection, query, args, docs); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

func (r *remoteDocumentStore) queryDocuments(ctx context.Context, collection, query string, args []any, into map[string]models.Document) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "remoteDocumentStore.GetMany").
			Str("collection", collection).
			Msg("failed to query documents")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(collection, rows)
		if err != nil {
			return err
		}
		into[doc.Ref.ID] = doc
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return nil
}

func (r *remoteDocumentStore) Set(ctx context.Context, ref models.DocumentRef, fields map[string]any, opts models.SetOptions) error {
	query, args, err := buildSetDocumentQuery(ref, fields, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return withRetry(ctx, r.retry, r.db.errorClassificator, "set", func(ctx context.Context) error {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (r *remoteDocumentStore) Delete(ctx context.Context, ref models.DocumentRef) error {
	query, args, err := buildDeleteDocumentQuery(ref)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return withRetry(ctx, r.retry, r.db.errorClassificator, "delete", func(ctx context.Context) error {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (r *remoteDocumentStore) Batch() WriteBatch {
	return &writeBatch{store: r}
}

func (r *remoteDocumentStore) Close() error {
	return r.db.Close()
}

type batchOp struct {
	query string
	args  []any
	err   error
}

type writeBatch struct {
	store *remoteDocumentStore
	ops   []batchOp
}

func (b *writeBatch) Set(ref models.DocumentRef, fields map[string]any, opts models.SetOptions) WriteBatch {
	query, args, err := buildSetDocumentQuery(ref, fields, opts)
	b.ops = append(b.ops, batchOp{query: query, args: args, err: err})
	return b
}

func (b *writeBatch) Delete(ref models.DocumentRef) WriteBatch {
	query, args, err := buildDeleteDocumentQuery(ref)
	b.ops = append(b.ops, batchOp{query: query, args: args, err: err})
	return b
}

func (b *writeBatch) Len() int {
	return len(b.ops)
}

// Commit applies every write in one transaction: either all of them land or
// none does. Retryable failures restart the whole transaction.
func (b *writeBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return ErrEmptyBatch
	}
	for _, op := range b.ops {
		if op.err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, op.err)
		}
	}

	db := b.store.db
	return withRetry(ctx, b.store.retry, db.errorClassificator, "batch commit", func(ctx context.Context) error {
		return b.commitOnce(ctx)
	})
}

func (b *writeBatch) commitOnce(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "writeBatch.Commit").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for idx, op := range b.ops {
		if _, err = tx.ExecContext(ctx, op.query, op.args...); err != nil {
			log.Err(err).
				Str("func", "writeBatch.Commit").
				Int("op", idx).
				Int("total", len(b.ops)).
				Msg("failed to execute batch write")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "writeBatch.Commit").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(collection string, row rowScanner) (models.Document, error) {
	var (
		id                   string
		raw                  []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, err
		}
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return models.Document{
		Ref:        models.DocumentRef{Collection: collection, ID: id},
		Fields:     fields,
		CreateTime: createdAt,
		UpdateTime: updatedAt,
	}, nil
}
