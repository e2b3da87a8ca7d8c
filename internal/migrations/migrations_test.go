package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestEmbeddedFiles(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sql/001_create_users.sql",
		"sql/002_create_housing.sql",
		"sql/003_create_reviews.sql",
		"sql/004_create_credentials.sql",
	}, names)
}

func TestMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")
	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	require.NoError(t, Migrate(ctx, dsn))
	// Second run is a no-op.
	require.NoError(t, Migrate(ctx, dsn))

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	err = db.Select(&tables, `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"credentials", "housing", "reviews", "schema_version", "users"}, tables)
}
