package repository_test

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/repository"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("nutshop"),
		postgres.WithUsername("nutshop"),
		postgres.WithPassword("nutshop"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

// startMigratedPostgres starts a container and applies the embedded migrations.
func startMigratedPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, connStr, err := startPostgres(ctx)
	if err != nil {
		return container, nil, fmt.Errorf("startPostgres: %w", err)
	}

	pool, err := repository.NewPool(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("repository.NewPool: %w", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		return container, pool, fmt.Errorf("repository.Migrate: %w", err)
	}

	return container, pool, nil
}
