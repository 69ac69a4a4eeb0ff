package store

import "errors"

// Sentinel errors returned by store methods. Callers match them with
// [errors.Is].
var (
	// ErrRecordNotFound is returned when a local record lookup by kind and id
	// matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordAlreadyExists is returned by Create when the id is taken.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrUnknownKind is returned when a kind does not map to a local table.
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrEmptyBatch is returned when committing a batch without writes.
	ErrEmptyBatch = errors.New("write batch is empty")
)

// Low-level database operation errors, wrapped together with the driver
// error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrEncodingDocument     = errors.New("failed to encode document fields")
	ErrDecodingDocument     = errors.New("failed to decode document fields")
)
