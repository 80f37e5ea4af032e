package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/product-values/internal/models"
)

// DefaultQueryTimeout bounds a single statement when none is configured.
const DefaultQueryTimeout = 3 * time.Second

// SQLProductRepository implements ProductRepository on top of database/sql.
// It holds no connection of its own; the caller's session is used for every
// statement.
type SQLProductRepository struct {
	timeout time.Duration
}

func NewSQLProductRepository(timeout time.Duration) *SQLProductRepository {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &SQLProductRepository{timeout: timeout}
}

func (r *SQLProductRepository) GetAll(ctx context.Context, q Querier) ([]models.Product, error) {
	query := `SELECT id, name, quantity, quality, decs FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Quality, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *SQLProductRepository) GetByID(ctx context.Context, q Querier, id int) (models.Product, error) {
	query := `SELECT id, name, quantity, quality, decs FROM products WHERE id = ?`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := q.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.Quality, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

// Create inserts p and returns it with the id assigned by storage. Any id
// already set on p is ignored.
func (r *SQLProductRepository) Create(ctx context.Context, q Querier, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if q.Dialect().SupportsReturning() {
		query := `INSERT INTO products (name, quantity, quality, decs) VALUES (?, ?, ?, ?) RETURNING id`
		if err := q.QueryRowContext(ctx, query, p.Name, p.Quantity, p.Quality, p.Description).Scan(&p.ID); err != nil {
			return models.Product{}, fmt.Errorf("failed to create product: %w", err)
		}
		return p, nil
	}

	query := `INSERT INTO products (name, quantity, quality, decs) VALUES (?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, query, p.Name, p.Quantity, p.Quality, p.Description)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to read product id: %w", err)
	}
	p.ID = int(id)
	return p, nil
}

// Update overwrites every column but id. It never inserts: a missing row
// yields ErrProductNotFound.
func (r *SQLProductRepository) Update(ctx context.Context, q Querier, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = ?, quantity = ?, quality = ?, decs = ? WHERE id = ?`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := q.ExecContext(ctx, query, p.Name, p.Quantity, p.Quality, p.Description, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLProductRepository) Delete(ctx context.Context, q Querier, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
