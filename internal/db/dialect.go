package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/product-values/internal/config"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
	MySQL
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	default:
		return "unknown"
	}
}

// DialectFor maps a configured driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return SQLite, nil
	case config.DriverPgx, config.DriverPostgres:
		return Postgres, nil
	case config.DriverMySQL:
		return MySQL, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			sb.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// SupportsReturning reports whether INSERT ... RETURNING is available.
func (d Dialect) SupportsReturning() bool {
	return d == SQLite || d == Postgres
}

// createProductsTable uses 64-bit columns for id and quantity on every engine.
func (d Dialect) createProductsTable() string {
	switch d {
	case Postgres:
		return `CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	quantity BIGINT NOT NULL,
	quality TEXT NOT NULL,
	decs TEXT NOT NULL
)`
	case MySQL:
		return `CREATE TABLE IF NOT EXISTS products (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	quantity BIGINT NOT NULL,
	quality VARCHAR(255) NOT NULL,
	decs TEXT NOT NULL
)`
	default:
		return `CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	quality TEXT NOT NULL,
	decs TEXT NOT NULL
)`
	}
}
