// Package export writes batches of normalized notes as CSV or XLSX review
// sheets, one row per source payload.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fisionote/internal/service"
)

// Row is one normalized payload in a batch.
type Row struct {
	Source string
	Result *service.NoteResult
	Err    error
}

// columns defines the header row.
var columns = []string{
	"Source",
	"Quality",
	"Payload Kind",
	"Extraction",
	"Subjective",
	"Objective",
	"Assessment",
	"Plan",
	"Patient Age",
	"Patient Sex",
	"Physical Tests",
	"Red Flags",
	"Medications",
	"Suggested Evaluations",
	"Findings",
	"Archive Key",
	"Error",
}

// Columns returns a copy of the header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// rowValues flattens a Row into len(columns) cells. Rows that failed keep
// only the source and error columns.
func rowValues(r *Row) []string {
	row := make([]string, len(columns))
	row[0] = r.Source
	if r.Err != nil {
		row[16] = r.Err.Error()
	}
	if r.Result == nil || r.Result.Note == nil {
		return row
	}

	res, n := r.Result, r.Result.Note
	row[1] = string(res.Quality.Status)
	row[2] = res.Extraction.Kind
	row[3] = res.Extraction.Strategy
	row[4] = n.Subjective
	row[5] = n.Objective
	row[6] = n.Assessment
	row[7] = n.Plan
	row[8] = n.Patient.Age.String()
	row[9] = n.Patient.Sex

	tests := make([]string, 0, len(n.PhysicalTests))
	for _, t := range n.PhysicalTests {
		tests = append(tests, t.Display)
	}
	row[10] = strings.Join(tests, "\n")

	flags := make([]string, 0, len(n.RedFlags))
	for _, f := range n.RedFlags {
		flags = append(flags, f.Display)
	}
	row[11] = strings.Join(flags, "\n")

	row[12] = strings.Join(n.Medications, "; ")
	row[13] = strings.Join(n.SuggestedEvaluations, "\n")

	findings := make([]string, 0, len(res.Quality.Findings))
	for _, f := range res.Quality.Findings {
		findings = append(findings, fmt.Sprintf("[%s] %s", f.Severity, f.RuleKey))
	}
	row[14] = strings.Join(findings, "\n")
	row[15] = res.ArchiveKey

	return row
}

// Summary counts rows per quality status; failed rows are counted under "error".
func Summary(rows []Row) map[string]int {
	out := make(map[string]int)
	for i := range rows {
		switch {
		case rows[i].Err != nil || rows[i].Result == nil:
			out["error"]++
		default:
			out[string(rows[i].Result.Quality.Status)]++
		}
	}
	return out
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a batch name for use as a file name.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "notes"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
