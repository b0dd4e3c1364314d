package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- One active report per (comment, reporter); duplicates are rejected at insert
			CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_comment_reporter
			ON reports (comment_id, reporter_id);

			-- Pending queue ordering
			CREATE INDEX IF NOT EXISTS idx_reports_pending_queue
			ON reports (priority DESC, filed_at ASC, id ASC)
			WHERE status = 0;

			-- Auto-escalation threshold counting
			CREATE INDEX IF NOT EXISTS idx_reports_comment_status
			ON reports (comment_id, status);

			-- Current assignment lookup
			CREATE INDEX IF NOT EXISTS idx_escalations_report_time
			ON escalations (report_id, created_at DESC);

			-- Audit log pagination and filters
			CREATE INDEX IF NOT EXISTS idx_moderation_actions_time
			ON moderation_actions (created_at DESC, id DESC);

			CREATE INDEX IF NOT EXISTS idx_moderation_actions_target_user
			ON moderation_actions (target_user_id, created_at DESC)
			WHERE target_user_id > 0;

			CREATE INDEX IF NOT EXISTS idx_moderation_actions_target_comment
			ON moderation_actions (target_comment_id, created_at DESC)
			WHERE target_comment_id > 0;

			CREATE INDEX IF NOT EXISTS idx_moderation_actions_moderator
			ON moderation_actions (moderator_id, created_at DESC)
			WHERE moderator_id > 0;

			-- Sweep worker scans
			CREATE INDEX IF NOT EXISTS idx_rate_windows_start
			ON rate_windows (window_start ASC);

			CREATE INDEX IF NOT EXISTS idx_abuse_signals_detected
			ON abuse_signals (detected_at ASC);

			CREATE INDEX IF NOT EXISTS idx_abuse_signals_actor_time
			ON abuse_signals (actor_id, detected_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_reports_comment_reporter;
			DROP INDEX IF EXISTS idx_reports_pending_queue;
			DROP INDEX IF EXISTS idx_reports_comment_status;
			DROP INDEX IF EXISTS idx_escalations_report_time;
			DROP INDEX IF EXISTS idx_moderation_actions_time;
			DROP INDEX IF EXISTS idx_moderation_actions_target_user;
			DROP INDEX IF EXISTS idx_moderation_actions_target_comment;
			DROP INDEX IF EXISTS idx_moderation_actions_moderator;
			DROP INDEX IF EXISTS idx_rate_windows_start;
			DROP INDEX IF EXISTS idx_abuse_signals_detected;
			DROP INDEX IF EXISTS idx_abuse_signals_actor_time;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
