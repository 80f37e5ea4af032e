package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/product-values/internal/db"
	"github.com/rogerio-castellano/product-values/internal/models"
)

// ErrProductNotFound is returned when no row matches the requested id.
// It is an expected outcome, not a storage failure.
var ErrProductNotFound = errors.New("product not found")

// Querier is the part of a storage session the repositories rely on.
// *db.Session implements it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Dialect() db.Dialect
}

// ProductRepository defines the product operations. Each call runs on the
// session passed in and never outlives it.
type ProductRepository interface {
	GetAll(ctx context.Context, q Querier) ([]models.Product, error)
	GetByID(ctx context.Context, q Querier, id int) (models.Product, error)
	Create(ctx context.Context, q Querier, product models.Product) (models.Product, error)
	Update(ctx context.Context, q Querier, product models.Product) (models.Product, error)
	Delete(ctx context.Context, q Querier, id int) error
}
