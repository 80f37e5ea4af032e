package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/product-values/internal/config"
	"github.com/rogerio-castellano/product-values/internal/db"
	api "github.com/rogerio-castellano/product-values/internal/http"
	"github.com/rogerio-castellano/product-values/internal/models"
	"github.com/rogerio-castellano/product-values/internal/repo"
)

func testConfig(t *testing.T, dsn string) config.Config {
	t.Helper()
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = dsn
	return cfg
}

func listProducts(t *testing.T, sessions *db.SessionManager, products repo.ProductRepository) []models.Product {
	t.Helper()
	router := api.NewRouter(api.Options{Products: products, Sessions: sessions})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/value", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestPrepareStorageSeedsOnceAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, filepath.Join(t.TempDir(), "products.db"))
	products := repo.NewSQLProductRepository(cfg.Database.QueryTimeout)

	for i := 0; i < 2; i++ {
		database, sessions, err := openStorage(ctx, cfg)
		require.NoError(t, err)
		require.NoError(t, prepareStorage(ctx, sessions, products, true))
		assert.Equal(t, int64(0), sessions.Open())
		require.NoError(t, database.Close())
	}

	database, sessions, err := openStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	got := listProducts(t, sessions, products)
	require.Len(t, got, 1)
	want := repo.DefaultSeed[0]
	want.ID = got[0].ID
	assert.NotZero(t, got[0].ID)
	assert.Equal(t, want, got[0])
}

func TestPrepareStorageWithoutSeed(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, filepath.Join(t.TempDir(), "products.db"))
	products := repo.NewSQLProductRepository(cfg.Database.QueryTimeout)

	database, sessions, err := openStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, prepareStorage(ctx, sessions, products, false))
	assert.Empty(t, listProducts(t, sessions, products))
}

func TestMigrateCommandCreatesSchemaAndSeed(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	path := filepath.Join(t.TempDir(), "products.db")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate", "--db-dsn", path, "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	ctx := context.Background()
	cfg := testConfig(t, path)
	database, sessions, err := openStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	got := listProducts(t, sessions, repo.NewSQLProductRepository(cfg.Database.QueryTimeout))
	require.Len(t, got, 1)
	assert.Equal(t, "skipper", got[0].Name)
}

func TestRootCommandDoesNotPrintErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to read config file")
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "productsvc dev (commit: none, built: unknown)\n", stdout.String())
}
