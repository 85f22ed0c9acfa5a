package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Migrate creates or extends the tables backing the given models. It is
// idempotent and runs on every start.
func Migrate(ctx context.Context, gdb *gorm.DB, logger zerolog.Logger, models ...interface{}) error {
	for _, m := range models {
		if err := gdb.WithContext(ctx).AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	logger.Info().Int("tables", len(models)).Msg("schema up to date")
	return nil
}

// TableStatus reports whether each model's table exists.
type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
}

// Status lists the tables backing the given models and whether they exist.
func Status(ctx context.Context, gdb *gorm.DB, models ...interface{}) ([]TableStatus, error) {
	out := make([]TableStatus, 0, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", m, err)
		}
		out = append(out, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: gdb.WithContext(ctx).Migrator().HasTable(m),
		})
	}
	return out, nil
}
