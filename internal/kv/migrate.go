// ABOUTME: Data migration between key-value backends.
// ABOUTME: Copies the named documents from a source store to a destination store.
package kv

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// MigrateSummary holds counts of migrated keys.
type MigrateSummary struct {
	Copied  int
	Skipped int
}

// Migrate copies each key from src to dst. Keys missing from src are skipped.
// A failing key does not stop the rest; all failures are combined in the error.
func Migrate(ctx context.Context, src, dst Store, keys []string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}
	var errs error

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return summary, multierr.Append(errs, err)
		}

		value, err := src.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			summary.Skipped++
			continue
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", key, err))
			continue
		}

		if err := dst.Set(ctx, key, value); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("write %s: %w", key, err))
			continue
		}
		summary.Copied++
	}

	return summary, errs
}

// HasAny reports whether dst already holds any of keys.
func HasAny(ctx context.Context, dst Store, keys []string) (bool, error) {
	for _, key := range keys {
		_, err := dst.Get(ctx, key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("check %s: %w", key, err)
		}
	}
	return false, nil
}
