package store

import "errors"

// Sentinel errors returned by key/value backends and repositories. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KeyValueStore.Get] when the key has never
	// been written or was deleted.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptedData is returned when a stored value exists but cannot be
	// decoded into the expected shape (malformed JSON, wrong type).
	ErrCorruptedData = errors.New("stored data is corrupted")

	// ErrStoreClosed is returned by every operation of a backend after
	// Close has been called.
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnknownDriver is returned by [Open] when the configured driver does
	// not name a supported backend.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors of the SQL backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
