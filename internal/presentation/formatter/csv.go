package formatter

import (
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-life-tracker/internal/data/report"
)

// ExportHeader is the first line of an export file.
var ExportHeader = []string{"interval_id", "category", "project", "start_iso", "end_iso", "duration_ms", "note"}

// HistoryHeader is the first line of history CSV output.
var HistoryHeader = []string{"day", "category", "project", "duration_ms", "notes"}

// ISOLayout renders UTC timestamps with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// FormatExport writes the header and one fully quoted line per interval. Lines are
// joined with "\n" and there is no trailing newline.
func (f *CSVFormatter) FormatExport(rows []report.ExportRow) error {
	_, err := io.WriteString(f.w, RenderExport(rows))
	return err
}

// FormatHistory writes history rows in the export's quoting style.
func (f *CSVFormatter) FormatHistory(rows []report.Row) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(HistoryHeader, ","))
	for _, r := range rows {
		lines = append(lines, joinQuoted(r.Day, r.Category, r.Project, strconv.FormatInt(r.Millis, 10), r.Notes))
	}
	_, err := io.WriteString(f.w, strings.Join(lines, "\n")+"\n")
	return err
}

// RenderExport builds the export document.
func RenderExport(rows []report.ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(ExportHeader, ","))
	for _, r := range rows {
		lines = append(lines, joinQuoted(
			r.IntervalID,
			r.Category,
			r.Project,
			r.Start.UTC().Format(ISOLayout),
			r.End.UTC().Format(ISOLayout),
			strconv.FormatInt(r.DurationMs, 10),
			r.Note,
		))
	}
	return strings.Join(lines, "\n")
}

// QuoteField wraps a value in double quotes, doubling any quotes inside.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func joinQuoted(cells ...string) string {
	for i, c := range cells {
		cells[i] = QuoteField(c)
	}
	return strings.Join(cells, ",")
}
