// Package export selects a scope of a user's records and renders them to
// the canonical line-oriented report consumed by both the plain-text and
// the PDF writer.
package export

import (
	"fmt"
	"strings"

	"github.com/avdeyev/healthdiary/internal/diary"
)

// Scope is the export filter granularity.
type Scope string

const (
	ScopeAll   Scope = "all"
	ScopeYear  Scope = "year"
	ScopeMonth Scope = "month"
)

// Format selects the output document type.
type Format string

const (
	FormatTXT Format = "txt"
	FormatPDF Format = "pdf"
)

// NoRecords is the single line rendered for an empty filtered set.
// Callers treat it as "nothing to export" and must not write a file.
const NoRecords = "No records for the selected period."

// Filter selects records by scope. Year scope requires year; month scope
// requires both. A scope whose required parameters are zero selects
// nothing; a stale token is an empty report, not a failure.
func Filter(records []diary.Record, scope Scope, year, month int) []diary.Record {
	switch scope {
	case ScopeAll:
		return records
	case ScopeYear:
		if year == 0 {
			return nil
		}
		return filter(records, func(r diary.Record) bool {
			return r.Timestamp.Year() == year
		})
	case ScopeMonth:
		if year == 0 || month == 0 {
			return nil
		}
		return filter(records, func(r diary.Record) bool {
			return r.Timestamp.Year() == year && int(r.Timestamp.Month()) == month
		})
	default:
		return nil
	}
}

func filter(records []diary.Record, keep func(diary.Record) bool) []diary.Record {
	var out []diary.Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Report renders records to the canonical report: a title block, then per
// record an id line, a date line with the weekday abbreviation, a severity
// line, a comment line and a blank separator. Input order is preserved.
// An empty set renders the NoRecords marker alone.
func Report(records []diary.Record, scope Scope, year, month int) []string {
	lines := []string{"Health diary — " + scopeTitle(scope, year, month), ""}
	if len(records) == 0 {
		return append(lines, NoRecords)
	}
	for _, r := range records {
		lines = append(lines,
			fmt.Sprintf("Record #%d", r.ID),
			fmt.Sprintf("Date: %s (%s)", r.Timestamp.Format(diary.TimeLayout), r.Timestamp.Weekday().String()[:3]),
			fmt.Sprintf("Severity: %d/%d", r.Severity, diary.MaxSeverity),
			"Comment: "+r.Text,
			"",
		)
	}
	return lines
}

func scopeTitle(scope Scope, year, month int) string {
	switch scope {
	case ScopeYear:
		return fmt.Sprintf("%d", year)
	case ScopeMonth:
		return fmt.Sprintf("%d-%02d", year, month)
	default:
		return "all records"
	}
}

// Filename builds the report filename: notes[_<year>][_<month>].<ext>,
// with the qualifiers omitted entirely for the all scope.
func Filename(scope Scope, year, month int, format Format) string {
	name := "notes"
	switch scope {
	case ScopeYear:
		name = fmt.Sprintf("notes_%d", year)
	case ScopeMonth:
		name = fmt.Sprintf("notes_%d_%d", year, month)
	}
	return name + "." + string(format)
}

// TextDocument renders report lines to the plain-text document body.
func TextDocument(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
