package migrations

import (
	"context"
	"fmt"

	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Create all engine tables
		models := []any{
			(*types.Actor)(nil),
			(*types.RateWindow)(nil),
			(*types.Rule)(nil),
			(*types.Keyword)(nil),
			(*types.Report)(nil),
			(*types.Escalation)(nil),
			(*types.ModerationAction)(nil),
			(*types.AbuseSignal)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Down migration - drop all tables in reverse dependency order
		models := []any{
			(*types.AbuseSignal)(nil),
			(*types.ModerationAction)(nil),
			(*types.Escalation)(nil),
			(*types.Report)(nil),
			(*types.Keyword)(nil),
			(*types.Rule)(nil),
			(*types.RateWindow)(nil),
			(*types.Actor)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
