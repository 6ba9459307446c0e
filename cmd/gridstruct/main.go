// Package main provides the CLI entry point for gridstruct.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/config"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/models"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/output"
)

var (
	outputPath    string
	pretty        bool
	format        string
	mode          string
	sheets        []string
	sheetsDir     string
	printAreasDir string
	configPath    string
	maxDepth      int
	connectivity  string
	logLevel      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridstruct [input.xlsx|input.csv]",
		Short: "Detect tables, lists and trees in spreadsheets",
		Long: `gridstruct finds clusters of filled cells in each sheet, classifies them
as tables, matrices, key-value blocks, lists or trees, parses tree domains
recursively and outputs the result as JSON, YAML or text.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVarP(&format, "format", "f", config.DefaultFormat, "Output format: json, yaml, text")
	flags.StringVar(&mode, "mode", config.DefaultMode, "Extraction mode: light, standard, verbose")
	flags.StringSliceVar(&sheets, "sheet", nil, "Only extract the named sheet (repeatable)")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	flags.StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	flags.StringVar(&configPath, "config", "", "Config file (default: .gridstruct.yaml in CWD or $HOME)")
	flags.IntVar(&maxDepth, "max-depth", config.DefaultMaxDepth, "Maximum nesting depth for tree domains")
	flags.StringVar(&connectivity, "connectivity", config.DefaultConnectivity, "Cell adjacency: four or eight")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts := cfg.Options(logger)
	opts.Sheets = sheets

	wb, err := gridstruct.ExtractContext(cmd.Context(), inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	outFormat, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	data, err := encodeWorkbook(wb, outFormat, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" && printAreasDir == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	// Per-file outputs are JSON or YAML; text falls back to JSON.
	fileFormat := outFormat
	if fileFormat == output.FormatText {
		fileFormat = output.FormatJSON
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir, fileFormat, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if printAreasDir != "" {
		if err := writePrintAreaFiles(wb, printAreasDir, fileFormat, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}

	return nil
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("mode") {
		cfg.Extract.Mode = mode
	}
	if flags.Changed("max-depth") {
		cfg.Detection.MaxDepth = maxDepth
	}
	if flags.Changed("connectivity") {
		cfg.Detection.Connectivity = connectivity
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
}

func encodeWorkbook(wb *models.WorkbookData, format output.Format, pretty bool) ([]byte, error) {
	if format == output.FormatText {
		var buf bytes.Buffer
		if err := output.RenderText(&buf, wb); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := output.Marshal(wb, format, pretty)
	if err != nil {
		return nil, err
	}
	if format == output.FormatJSON {
		data = append(data, '\n')
	}
	return data, nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string, format output.Format, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		data, err := output.Marshal(&sheet, format, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+format.Ext())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func writePrintAreaFiles(wb *models.WorkbookData, dir string, format output.Format, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		for i, view := range sheet.PrintAreaViews {
			data, err := output.Marshal(&view, format, pretty)
			if err != nil {
				return err
			}

			filename := filepath.Join(dir, fmt.Sprintf("%s_area%d%s", sheetName, i+1, format.Ext()))
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return err
			}
		}
	}

	return nil
}
