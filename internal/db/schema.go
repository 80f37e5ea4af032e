package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EnsureSchema creates the products table when it does not exist yet.
func EnsureSchema(ctx context.Context, s *Session) error {
	if _, err := s.ExecContext(ctx, s.Dialect().createProductsTable()); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	log.Debug().Str("dialect", s.Dialect().String()).Msg("Products table ready")
	return nil
}
