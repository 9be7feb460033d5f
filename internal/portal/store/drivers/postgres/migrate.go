package postgres

import (
	"context"

	"github.com/pressly/goose/v3"

	"github.com/parkmoor/clubhouse/internal/portal/store/drivers/postgres/migrations"
)

// ApplyMigrations runs any pending goose migrations from the embedded
// filesystem.
func (s *Store) ApplyMigrations() error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(context.Background(), s.db, ".")
}
