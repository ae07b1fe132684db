package main

import (
	"context"
	"fmt"
	"strings"

	"orbit/internal/store"
	"orbit/internal/store/postgres"
	"orbit/internal/store/sqlite"
)

func isStoreDSN(source string) bool {
	return strings.HasPrefix(source, sqlite.Scheme) ||
		strings.HasPrefix(source, "postgres://") ||
		strings.HasPrefix(source, "postgresql://")
}

func openStore(ctx context.Context, dsn string) (store.Store, error) {
	switch {
	case strings.HasPrefix(dsn, sqlite.Scheme):
		client, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return client, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		client, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported store DSN %q: expected sqlite:// or postgres://", dsn)
	}
}
