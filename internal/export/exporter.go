package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/pool"
	dbTypes "github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/export/csv"
	"github.com/threadguard/threadguard/internal/export/sqlite"
	"github.com/threadguard/threadguard/internal/export/types"
	"github.com/threadguard/threadguard/internal/setup"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
)

const (
	// EngineVersion represents the version of the export engine.
	// This should be updated when making breaking changes to the export format.
	EngineVersion = "1.0.0"
)

// Config holds the configuration for exports.
type Config struct {
	ExportVersion string `json:"exportVersion"`
	Description   string `json:"description"`
}

// Exporter handles exporting the moderation audit log.
type Exporter struct {
	app     *setup.App
	outDir  string
	config  *Config
	formats []Format
}

// New creates a new exporter instance.
func New(app *setup.App, outDir string, config *Config) *Exporter {
	return &Exporter{
		app:    app,
		outDir: outDir,
		config: config,
		formats: []Format{
			FormatSQLite,
			FormatCSV,
		},
	}
}

// ExportAll exports the full audit log in all supported formats.
func (e *Exporter) ExportAll(ctx context.Context) error {
	// Print export configuration
	fmt.Printf("Starting export with configuration:\n")
	fmt.Printf("  Output Directory: %s\n", e.outDir)
	fmt.Printf("  Export Version: %s\n", e.config.ExportVersion)
	fmt.Printf("  Engine Version: %s\n", EngineVersion)
	fmt.Printf("  Description: %s\n\n", e.config.Description)

	// Get the full audit log oldest first
	fmt.Printf("Fetching audit log from database...\n")

	actions, err := e.app.DB.Model().Action().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get moderation actions: %w", err)
	}

	fmt.Printf("Found %d audit records to export\n\n", len(actions))

	// Convert to export records
	records, err := e.flattenActions(actions)
	if err != nil {
		return err
	}

	// Save config file
	fmt.Printf("Saving export configuration...\n")

	configPath := filepath.Join(e.outDir, "export_config.json")

	// Create config with engine version for JSON
	jsonConfig := struct {
		*Config

		EngineVersion string `json:"engineVersion"`
		RecordCount   int    `json:"recordCount"`
	}{
		Config:        e.config,
		EngineVersion: EngineVersion,
		RecordCount:   len(records),
	}

	configData, err := sonic.MarshalIndent(jsonConfig, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export config: %w", err)
	}

	if err := os.WriteFile(configPath, configData, 0o600); err != nil {
		return fmt.Errorf("failed to write export config: %w", err)
	}

	// Export each format concurrently
	fmt.Printf("Exporting data in %d formats...\n", len(e.formats))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for _, format := range e.formats {
		p.Go(func(_ context.Context) error {
			fmt.Printf("  Writing %s format...\n", format)

			if err := e.export(format, records); err != nil {
				return fmt.Errorf("failed to export %s format: %w", format, err)
			}

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nExport completed successfully\n")
	fmt.Printf("Files written to: %s\n", e.outDir)

	return nil
}

// flattenActions converts audit log rows to flat export records.
func (e *Exporter) flattenActions(actions []*dbTypes.ModerationAction) ([]*types.AuditRecord, error) {
	records := make([]*types.AuditRecord, len(actions))

	for i, action := range actions {
		details := "{}"
		if len(action.Details) > 0 {
			data, err := sonic.Marshal(action.Details)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal action details: %w", err)
			}
			details = string(data)
		}

		records[i] = &types.AuditRecord{
			ID:              action.ID.String(),
			ActionType:      action.ActionType.String(),
			ModeratorID:     action.ModeratorID,
			TargetUserID:    action.TargetUserID,
			TargetCommentID: action.TargetCommentID,
			Reason:          action.Reason,
			Details:         details,
			CreatedAt:       action.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return records, nil
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, records []*types.AuditRecord) error {
	var exporter interface {
		Export(records []*types.AuditRecord) error
	}

	switch format {
	case FormatSQLite:
		exporter = sqlite.New(e.outDir)
	case FormatCSV:
		exporter = csv.New(e.outDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return exporter.Export(records)
}
