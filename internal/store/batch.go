package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// batchSize caps rows per transaction. Large stages (map sector quests,
// tens of thousands of snapshots) are chunked to bound transaction
// duration and peak memory.
const batchSize = 500

// PersistenceError reports a batch that failed even after its retry. The
// stage it belongs to aborts; previously committed batches stay intact.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err is (or wraps) a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// withTx runs fn in one transaction on the write handle, retrying once on
// failure (transient lock contention is the usual cause). The rollback of a
// failed attempt never touches previously committed batches.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	attempt := func() error {
		tx, err := s.write.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	}

	err := attempt()
	if err == nil {
		return nil
	}
	if err = attempt(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// chunks splits items into batchSize-bounded slices, preserving order.
func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = batchSize
	}
	var out [][]T
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
