package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/threadguard/threadguard/internal/export"
	"github.com/threadguard/threadguard/internal/setup"
	"github.com/urfave/cli/v3"
)

const (
	// ExportLogDir specifies where export log files are stored.
	ExportLogDir = "logs/export_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export the moderation audit log to various file formats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
			&cli.StringFlag{
				Name:    "export-version",
				Aliases: []string{"v"},
				Usage:   "Export version",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Export description",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize application with required dependencies
			app, err := setup.InitializeApp(ctx, ExportLogDir)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup(ctx)

			// Create timestamped output directory
			baseDir := c.String("output")
			timestamp := time.Now().UTC().Format("2006-01-02_150405")
			outDir := filepath.Join(baseDir, timestamp)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			// Get export configuration
			config, err := getExportConfig(c)
			if err != nil {
				return fmt.Errorf("failed to get export configuration: %w", err)
			}

			// Create exporter
			exporter := export.New(app, outDir, config)

			// Export all formats
			if err := exporter.ExportAll(ctx); err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}

// getExportConfig retrieves export configuration from CLI flags or interactive prompts.
func getExportConfig(c *cli.Command) (*export.Config, error) {
	config := &export.Config{
		ExportVersion: c.String("export-version"),
		Description:   c.String("description"),
	}

	reader := bufio.NewReader(os.Stdin)

	type field struct {
		name     string
		value    *string
		prompt   string
		defValue string
	}

	fields := []field{
		{
			name:     "export version",
			value:    &config.ExportVersion,
			prompt:   "Enter export version",
			defValue: "1.0.0",
		},
		{
			name:     "description",
			value:    &config.Description,
			prompt:   "Enter export description",
			defValue: "ThreadGuard Audit Export",
		},
	}

	// Handle string fields
	for _, f := range fields {
		if *f.value == "" {
			prompt := f.prompt
			if f.defValue != "" {
				prompt = fmt.Sprintf("%s [%s]", prompt, f.defValue)
			}

			val, err := promptString(reader, prompt)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
			}

			if val == "" && f.defValue != "" {
				val = f.defValue
			}

			*f.value = val
		}
	}

	return config, nil
}

// promptString prompts for a string value.
func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt + ": ")

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}
