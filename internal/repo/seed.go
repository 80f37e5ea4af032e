package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/product-values/internal/models"
)

// DefaultSeed is the product inserted at startup.
var DefaultSeed = []models.Product{
	{
		Name:        "skipper",
		Quantity:    56,
		Quality:     "medium",
		Description: "the skipper is a medium quality product with a quantity of 56",
	},
}

// Seed creates each product in seed unless an identical row is already
// stored, and returns how many rows it inserted. The check and the insert are
// separate statements, so it is best-effort: two processes seeding the same
// empty database at once can both insert.
func Seed(ctx context.Context, q Querier, products ProductRepository, seed []models.Product) (int, error) {
	inserted := 0
	for _, p := range seed {
		exists, err := seedExists(ctx, q, p)
		if err != nil {
			return inserted, err
		}
		if exists {
			log.Debug().Str("name", p.Name).Msg("Seed product already present")
			continue
		}

		created, err := products.Create(ctx, q, p)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
		inserted++
		log.Info().Int("id", created.ID).Str("name", created.Name).Msg("Seeded product")
	}
	return inserted, nil
}

func seedExists(ctx context.Context, q Querier, p models.Product) (bool, error) {
	query := `SELECT COUNT(*) FROM products WHERE name = ? AND quantity = ? AND quality = ? AND decs = ?`

	var count int
	if err := q.QueryRowContext(ctx, query, p.Name, p.Quantity, p.Quality, p.Description).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check seed product %q: %w", p.Name, err)
	}
	return count > 0, nil
}
