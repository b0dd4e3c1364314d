package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/threadguard/threadguard/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// verifySQLiteFile reads a SQLite database file and verifies its contents match the expected records.
func verifySQLiteFile(t *testing.T, filepath string, expectedRecords []*types.AuditRecord) {
	// Open database
	conn, err := sqlite.OpenConn(filepath, sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	// Query all records
	var records []*types.AuditRecord
	err = sqlitex.ExecuteTransient(conn, `
		SELECT id, action_type, moderator_id, target_user_id,
		       target_comment_id, reason, details, created_at
		FROM moderation_actions ORDER BY id
	`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			records = append(records, &types.AuditRecord{
				ID:              stmt.ColumnText(0),
				ActionType:      stmt.ColumnText(1),
				ModeratorID:     uint64(stmt.ColumnInt64(2)),
				TargetUserID:    uint64(stmt.ColumnInt64(3)),
				TargetCommentID: uint64(stmt.ColumnInt64(4)),
				Reason:          stmt.ColumnText(5),
				Details:         stmt.ColumnText(6),
				CreatedAt:       stmt.ColumnText(7),
			})
			return nil
		},
	})
	require.NoError(t, err)

	// Verify record count
	assert.Equal(t, len(expectedRecords), len(records), "record count mismatch")

	// Verify each record
	for i, expected := range expectedRecords {
		assert.Equal(t, expected, records[i])
	}
}

func TestExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		records []*types.AuditRecord
		wantErr bool
	}{
		{
			name: "basic export",
			records: []*types.AuditRecord{
				{
					ID:              "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0001",
					ActionType:      "hide_comment",
					ModeratorID:     1001,
					TargetUserID:    2001,
					TargetCommentID: 3001,
					Reason:          "keyword match",
					Details:         `{"ruleId":"abuse"}`,
					CreatedAt:       "2025-06-01T10:00:00Z",
				},
				{
					ID:              "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0002",
					ActionType:      "warn_user",
					ModeratorID:     1002,
					TargetUserID:    2002,
					Reason:          "report escalation",
					Details:         "{}",
					CreatedAt:       "2025-06-01T11:30:00Z",
				},
			},
			wantErr: false,
		},
		{
			name:    "empty records",
			records: []*types.AuditRecord{},
			wantErr: false,
		},
		{
			name: "records with special characters",
			records: []*types.AuditRecord{
				{
					ID:         "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0003",
					ActionType: "delete_comment",
					Reason:     "reason with ' single quote",
					Details:    "{}",
					CreatedAt:  "2025-06-02T08:15:00Z",
				},
				{
					ID:         "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0004",
					ActionType: "flag_comment",
					Reason:     "reason with \" double quote",
					Details:    "{}",
					CreatedAt:  "2025-06-02T09:45:00Z",
				},
			},
			wantErr: false,
		},
		{
			name: "duplicate id",
			records: []*types.AuditRecord{
				{
					ID:         "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0005",
					ActionType: "flag_comment",
					Reason:     "test reason",
					Details:    "{}",
					CreatedAt:  "2025-06-03T10:00:00Z",
				},
				{
					ID:         "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0005",
					ActionType: "warn_user",
					Reason:     "duplicate id",
					Details:    "{}",
					CreatedAt:  "2025-06-03T10:05:00Z",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			// Create new exporter
			e := New(tempDir)

			// Perform export
			err := e.Export(tt.records)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			verifySQLiteFile(t, filepath.Join(tempDir, "audit.db"), tt.records)
		})
	}
}

func TestExporter_ExistingFiles(t *testing.T) {
	tempDir := t.TempDir()

	// Create existing file
	err := os.WriteFile(filepath.Join(tempDir, "audit.db"), []byte("invalid sqlite db"), 0o644)
	require.NoError(t, err)

	e := New(tempDir)

	records := []*types.AuditRecord{
		{
			ID:              "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0006",
			ActionType:      "mute_user",
			ModeratorID:     1001,
			TargetUserID:    2006,
			TargetCommentID: 0,
			Reason:          "vote manipulation",
			Details:         `{"duration":"1h0m0s"}`,
			CreatedAt:       "2025-06-03T12:00:00Z",
		},
	}

	// Export should overwrite the existing file
	err = e.Export(records)
	require.NoError(t, err)

	verifySQLiteFile(t, filepath.Join(tempDir, "audit.db"), records)
}

func TestExporter_DatabaseSchema(t *testing.T) {
	tempDir := t.TempDir()
	e := New(tempDir)

	// Create a test record
	records := []*types.AuditRecord{
		{
			ID:         "6b4f8f21-43a5-4c06-9f4e-2f1a6d6c0007",
			ActionType: "escalate_report",
			Reason:     "test reason",
			Details:    "{}",
			CreatedAt:  "2025-06-04T09:00:00Z",
		},
	}

	// Export the record
	err := e.Export(records)
	require.NoError(t, err)

	// Open the database
	conn, err := sqlite.OpenConn(filepath.Join(tempDir, "audit.db"), sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	// Query table schema
	var columns []string
	err = sqlitex.ExecuteTransient(conn, "PRAGMA table_info(moderation_actions)", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			columns = append(columns, stmt.ColumnText(1)) // Column name is at index 1
			return nil
		},
	})
	require.NoError(t, err)

	// Verify schema
	expectedColumns := []string{
		"id", "action_type", "moderator_id", "target_user_id",
		"target_comment_id", "reason", "details", "created_at",
	}
	assert.Equal(t, expectedColumns, columns)

	// Verify primary key
	var pkColumn string
	err = sqlitex.ExecuteTransient(conn, "SELECT name FROM pragma_table_info('moderation_actions') WHERE pk = 1", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			pkColumn = stmt.ColumnText(0)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "id", pkColumn)
}
