package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver string
		want   Dialect
	}{
		{"sqlite", SQLite},
		{"pgx", Postgres},
		{"postgres", Postgres},
		{"mysql", MySQL},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := DialectFor(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DialectFor("mssql")
	assert.EqualError(t, err, `unsupported database driver "mssql"`)
}

func TestRebind(t *testing.T) {
	query := `UPDATE products SET name = ?, decs = '?' WHERE id = ?`

	assert.Equal(t, query, SQLite.Rebind(query))
	assert.Equal(t, query, MySQL.Rebind(query))
	assert.Equal(t, `UPDATE products SET name = $1, decs = '?' WHERE id = $2`, Postgres.Rebind(query))
}

func TestSupportsReturning(t *testing.T) {
	assert.True(t, SQLite.SupportsReturning())
	assert.True(t, Postgres.SupportsReturning())
	assert.False(t, MySQL.SupportsReturning())
}

func TestCreateProductsTableUses64BitColumns(t *testing.T) {
	assert.Contains(t, Postgres.createProductsTable(), "id BIGSERIAL PRIMARY KEY")
	assert.Contains(t, Postgres.createProductsTable(), "quantity BIGINT NOT NULL")
	assert.Contains(t, MySQL.createProductsTable(), "id BIGINT AUTO_INCREMENT PRIMARY KEY")
	assert.Contains(t, MySQL.createProductsTable(), "quantity BIGINT NOT NULL")
	assert.Contains(t, SQLite.createProductsTable(), "id INTEGER PRIMARY KEY AUTOINCREMENT")
}
