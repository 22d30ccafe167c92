package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"
	root "tracker"
	"tracker/pkg/domain"
	"tracker/pkg/storage/postgres"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "postgres"
	pgPassword = "postgres"
	pgDatabase = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed storage tests in short mode")
	}

	ctx := context.Background()

	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           pgUser,
		Password:           pgPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           pgDatabase,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	err = runMigrations(pgSQL.DB.(*sql.DB))
	require.NoError(t, err)

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = pgContainer.Container.Terminate(ctx)
	}
}

func storedUser(t *testing.T, pg *postgres.PgSQL, email string) domain.User {
	t.Helper()

	u, err := domain.NewUser(email, "Test User")
	require.NoError(t, err)
	require.NoError(t, pg.StoreUsers(context.Background(), *u))

	return *u
}
