package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fisionote/internal/config"
	"fisionote/internal/domain"
	"fisionote/internal/logger"
	"fisionote/internal/service"
)

func normalizeCmd() *cobra.Command {
	var (
		report  bool
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize a raw model response into a canonical SOAP note",
		Long: "Reads a raw model response from file (or stdin when no file or \"-\" is given) " +
			"and prints the canonical note as JSON. The input is treated as text, so prose " +
			"around the JSON and double-encoded payloads are recovered.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
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

			result, err := a.service.Normalize(cmd.Context(), raw)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, report, compact)
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "print the full result including quality findings")
	cmd.Flags().BoolVar(&compact, "compact", false, "print single-line JSON")
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		specialty string
		locale    string
		report    bool
		compact   bool
	)
	cmd := &cobra.Command{
		Use:   "generate [transcript-file]",
		Short: "Draft a SOAP note from a consultation transcript",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())

			a, err := newApp(cmd.Context(), cfg, log, appOptions{withGenerator: true, withArchive: true})
			if err != nil {
				return err
			}

			result, err := a.service.Generate(cmd.Context(), service.GenerateNoteInput{
				Transcript: transcript,
				Specialty:  domain.Specialty(strings.ToLower(specialty)),
				Locale:     locale,
			})
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, report, compact)
		},
	}
	cmd.Flags().StringVar(&specialty, "specialty", string(domain.SpecialtyGeneral), "clinical specialty for the prompt")
	cmd.Flags().StringVar(&locale, "locale", "es", "language of the generated note")
	cmd.Flags().BoolVar(&report, "report", false, "print the full result including quality findings")
	cmd.Flags().BoolVar(&compact, "compact", false, "print single-line JSON")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeResult(w io.Writer, result *service.NoteResult, report, compact bool) error {
	var v any = result.Note
	if report {
		v = result
	}
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
