package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fisionote/internal/config"
	"fisionote/internal/export"
	"fisionote/internal/logger"
	"fisionote/internal/service"
)

// batchExtensions are the file types picked up from a batch directory.
var batchExtensions = map[string]bool{".json": true, ".txt": true}

func batchCmd() *cobra.Command {
	var (
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Normalize every response in a directory into a review sheet",
		Long: "Normalizes each .json and .txt file in dir and writes one row per file " +
			"to a CSV or XLSX report. Files that cannot be read are reported in the Error column.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			format = strings.ToLower(strings.TrimPrefix(format, "."))
			if out != "" && format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			if format == "" {
				format = "csv"
			}
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported report format %q (want csv or xlsx)", format)
			}
			if out == "" {
				out = export.BuildFilename(filepath.Base(filepath.Clean(dir)), format, time.Now())
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())

			a, err := newApp(cmd.Context(), cfg, log, appOptions{withArchive: true})
			if err != nil {
				return err
			}

			rows, err := normalizeDir(cmd, a.service, dir, log)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "xlsx":
				err = export.WriteXLSX(&buf, rows)
			default:
				err = export.WriteCSV(&buf, rows)
			}
			if err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			if err := writeReport(cmd.OutOrStdout(), out, buf.Bytes()); err != nil {
				return err
			}

			logBatchSummary(log, rows, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "report path, or \"-\" for stdout (default <dir>_<date>.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "report format: csv or xlsx (default from --out extension, else csv)")
	return cmd
}

// normalizeDir runs every batch file in dir through the service, in name order.
func normalizeDir(cmd *cobra.Command, svc service.NoteService, dir string, log zerolog.Logger) ([]export.Row, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !batchExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	rows := make([]export.Row, 0, len(names))
	for _, name := range names {
		if err := cmd.Context().Err(); err != nil {
			return nil, err
		}
		row := export.Row{Source: name}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			row.Err = err
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable file")
			rows = append(rows, row)
			continue
		}
		row.Result, row.Err = svc.Normalize(cmd.Context(), string(raw))
		if row.Err != nil {
			log.Warn().Err(row.Err).Str("file", name).Msg("failed to normalize file")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// logBatchSummary logs per-status counts with the statuses in sorted order.
func logBatchSummary(log zerolog.Logger, rows []export.Row, out string) {
	summary := export.Summary(rows)
	statuses := make([]string, 0, len(summary))
	for status := range summary {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	ev := log.Info().Int("files", len(rows)).Str("report", out)
	for _, status := range statuses {
		ev = ev.Int(status, summary[status])
	}
	ev.Msg("batch complete")
}

func writeReport(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
