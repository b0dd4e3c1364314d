package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/threadguard/threadguard/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Exporter handles exporting the audit log to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes audit records to audit.db, replacing any existing file.
func (e *Exporter) Export(records []*types.AuditRecord) error {
	path := filepath.Join(e.outDir, "audit.db")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file: %w", err)
	}

	// Open database
	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	// Create table
	err = sqlitex.Execute(conn, `
		CREATE TABLE moderation_actions (
			id TEXT PRIMARY KEY,
			action_type TEXT NOT NULL,
			moderator_id INTEGER NOT NULL,
			target_user_id INTEGER NOT NULL,
			target_comment_id INTEGER NOT NULL,
			reason TEXT NOT NULL,
			details TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	// Insert records in batches
	const batchSize = 1000
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		// Begin transaction
		err = sqlitex.Execute(conn, "BEGIN TRANSACTION", nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		// Insert batch
		for _, record := range records[i:end] {
			err = sqlitex.Execute(conn, `
				INSERT INTO moderation_actions (
					id, action_type, moderator_id, target_user_id,
					target_comment_id, reason, details, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, &sqlitex.ExecOptions{
				Args: []any{
					record.ID, record.ActionType, record.ModeratorID, record.TargetUserID,
					record.TargetCommentID, record.Reason, record.Details, record.CreatedAt,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		// Commit transaction
		err = sqlitex.Execute(conn, "COMMIT", nil)
		if err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return nil
}
