//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRigkpiWithMySQL tests the rigkpi CLI with a MySQL results store.
func TestRigkpiWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "rigkpi",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/rigkpi?parseTime=true", host, port.Port())
	runStoreLifecycle(t, "mysql", connStr)
}

// TestRigkpiWithPostgres tests the rigkpi CLI with a PostgreSQL results store.
func TestRigkpiWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle drives the CLI through a full run-tracking cycle against
// the given backend: clear, an aggregation that records a run, then status.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	_ = os.Setenv("RIGKPI_STORE_BACKEND", backend)
	_ = os.Setenv("RIGKPI_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("RIGKPI_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("RIGKPI_STORE_DB_CONNECT") }()

	// Run rigkpi store clear
	_, err := runRigkpiCommand(t, "store", "clear")
	require.NoError(t, err)

	// Run a daily aggregation so a run is recorded
	inputPath := writeFixture(t, fixtureEvents)
	_, err = runRigkpiCommand(t, "daily", inputPath)
	require.NoError(t, err)

	// Run rigkpi store status
	output, err := runRigkpiCommand(t, "store", "status")
	require.NoError(t, err)
	require.Contains(t, output, backend)
}
