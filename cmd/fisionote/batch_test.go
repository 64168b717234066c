package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fisionote/internal/domain"
	"fisionote/internal/export"
	"fisionote/internal/quality"
	"fisionote/internal/service"
)

func writeBatchDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"b-visit.json": `{"subjective":"Dolor","objective":"Rigidez","assessment":"Cervicalgia","plan":"Movilidad"}`,
		"a-visit.txt":  "Aquí está la nota:\n{\"plan\": \"Ejercicio\"}",
		"notes.md":     "ignored",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o700))
	return dir
}

func runBatch(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FISIONOTE_ARCHIVE_ENABLED", "false")
	t.Setenv("FISIONOTE_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := batchCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestBatchCmd_CSVToStdout(t *testing.T) {
	dir := writeBatchDir(t)

	out, err := runBatch(t, dir, "--out", "-")
	require.NoError(t, err)

	data := []byte(out)
	require.True(t, bytes.HasPrefix(data, export.BOM))
	records, err := csv.NewReader(bytes.NewReader(data[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a-visit.txt", records[1][0])
	assert.Equal(t, "Ejercicio", records[1][7])
	assert.Equal(t, "b-visit.json", records[2][0])
	assert.Equal(t, "good", records[2][1])
}

func TestBatchCmd_XLSXFromExtension(t *testing.T) {
	dir := writeBatchDir(t)
	path := filepath.Join(t.TempDir(), "review.xlsx")

	_, err := runBatch(t, dir, "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Notes")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestBatchCmd_RejectsUnknownFormat(t *testing.T) {
	_, err := runBatch(t, t.TempDir(), "--format", "pdf", "--out", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestBatchCmd_MissingDir(t *testing.T) {
	_, err := runBatch(t, filepath.Join(t.TempDir(), "missing"), "--out", "-")
	require.Error(t, err)
}

func TestLogBatchSummary_StableFieldOrder(t *testing.T) {
	result := func(status domain.QualityStatus) *service.NoteResult {
		return &service.NoteResult{Note: &domain.ClinicalNote{}, Quality: quality.Report{Status: status}}
	}
	rows := []export.Row{
		{Source: "c.json", Result: result(domain.QualitySparse)},
		{Source: "a.json", Result: result(domain.QualityGood)},
		{Source: "b.json", Err: errors.New("boom")},
		{Source: "d.json", Result: result(domain.QualityDegraded)},
	}

	var first string
	for i := 0; i < 20; i++ {
		var buf bytes.Buffer
		logBatchSummary(zerolog.New(&buf), rows, "report.csv")
		line := strings.TrimSpace(buf.String())
		if i == 0 {
			first = line
			continue
		}
		require.Equal(t, first, line)
	}

	assert.Equal(t,
		`{"level":"info","files":4,"report":"report.csv","degraded":1,"error":1,"good":1,"sparse":1,"message":"batch complete"}`,
		first)
}
