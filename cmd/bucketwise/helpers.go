package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joshsymonds/bucketwise/internal/config"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
	"github.com/joshsymonds/bucketwise/internal/store"
	"github.com/spf13/viper"
)

// openStore initializes the persistence layer and the domain store over it.
// Callers own the returned store and must Close it.
func openStore(ctx context.Context) (*store.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, err
	}
	if err := kv.Migrate(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	st, err := store.Open(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return st, nil
}

// parseMonthFlag parses a --month value in YYYY-MM form, defaulting to the
// current month when empty.
func parseMonthFlag(value string) (int, time.Month, error) {
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}

	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", value)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", value)
	}
	return year, time.Month(m), nil
}

// parseAmount parses a decimal amount ("12.34") into cents.
func parseAmount(value string) (int64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" || strings.HasPrefix(value, "-") {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	parts := strings.SplitN(value, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	var frac int64
	if len(parts) == 2 {
		f := parts[1]
		if len(f) > 2 {
			f = f[:2]
		}
		for len(f) < 2 {
			f += "0"
		}
		frac, err = strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", value)
		}
	}
	return whole*100 + frac, nil
}

// parseBucketFlag validates a --bucket value, allowing empty for "none".
func parseBucketFlag(value string) (*model.Bucket, error) {
	if value == "" {
		return nil, nil
	}
	b, ok := model.ParseBucket(strings.ToLower(value))
	if !ok {
		return nil, fmt.Errorf("invalid bucket %q: expected necessities, leisure, or savings", value)
	}
	return &b, nil
}

// optString returns nil when the flag was left empty.
func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
