package handlers_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/database"
)

// testDB is shared by all integration tests in this package. It stays nil
// when Docker is unavailable; requireDB skips in that case.
var testDB *gorm.DB

// runContainer invokes fn with a panic guard. testcontainers panics rather
// than erroring when no Docker host can be resolved; converting the panic
// into an error lets the suite degrade to skips.
func runContainer(fn func() (*tcpostgres.PostgresContainer, error)) (pgc *tcpostgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			pgc = nil
			err = fmt.Errorf("container startup panicked: %v", r)
		}
	}()
	return fn()
}

// startPostgres brings up the test database container.
func startPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return runContainer(func() (*tcpostgres.PostgresContainer, error) {
		return tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("stackover_test"),
			tcpostgres.WithUsername("test"),
			tcpostgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
	})
}

// The guard must turn a startup panic into an error; a panic here fails
// the whole package before any test can skip.
func TestRunContainerRecoversPanic(t *testing.T) {
	pgc, err := runContainer(func() (*tcpostgres.PostgresContainer, error) {
		panic("rootless Docker not found")
	})
	if pgc != nil {
		t.Errorf("expected nil container, got %v", pgc)
	}
	if err == nil {
		t.Fatal("expected an error from a panicking startup")
	}
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	pgc, err := startPostgres(ctx)
	if err != nil {
		log.Printf("postgres container unavailable, skipping integration tests: %v", err)
	} else {
		dsn, err := pgc.ConnectionString(ctx, "sslmode=disable")
		if err == nil {
			db, err := database.Open(dsn)
			if err == nil && database.Migrate(db) == nil {
				testDB = db
			}
		}
	}

	code := m.Run()

	if pgc != nil {
		if err := testcontainers.TerminateContainer(pgc); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("no database available (is Docker running?)")
	}
	return testDB
}
