package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/threadguard/threadguard/internal/export/types"
)

// Exporter handles exporting the audit log to a csv file.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes audit records to audit.csv, replacing any existing file.
func (e *Exporter) Export(records []*types.AuditRecord) error {
	path := filepath.Join(e.outDir, "audit.csv")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"id", "action_type", "moderator_id", "target_user_id",
		"target_comment_id", "reason", "details", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write each record
	for _, record := range records {
		if err := writer.Write([]string{
			record.ID,
			record.ActionType,
			strconv.FormatUint(record.ModeratorID, 10),
			strconv.FormatUint(record.TargetUserID, 10),
			strconv.FormatUint(record.TargetCommentID, 10),
			record.Reason,
			record.Details,
			record.CreatedAt,
		}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
