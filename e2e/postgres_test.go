package e2e_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// sharedPostgres is one container reused by every Postgres test in the package.
var (
	sharedOnce sync.Once
	sharedDSN  string
	sharedPool *pgxpool.Pool
)

// getSharedPostgres returns the DSN the server binary should use and a pool
// the test can inspect rows with.
func getSharedPostgres(t *testing.T) (string, *pgxpool.Pool) {
	t.Helper()

	sharedOnce.Do(func() {
		ctx := context.Background()

		container, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("galleria"),
			pgcontainer.WithUsername("galleria"),
			pgcontainer.WithPassword("galleria"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("start postgres container: %v", err)
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = testcontainers.TerminateContainer(container)
			t.Fatalf("postgres connection string: %v", err)
		}

		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			_ = testcontainers.TerminateContainer(container)
			t.Fatalf("connect postgres: %v", err)
		}

		sharedDSN = dsn
		sharedPool = pool
	})

	if sharedPool == nil {
		t.Fatal("shared postgres unavailable")
	}
	return sharedDSN, sharedPool
}
