package bot

import (
	"github.com/avdeyev/healthdiary/internal/export"
	"github.com/avdeyev/healthdiary/internal/nav"
)

// handleExport drives the export filter conversation: scope → year →
// month → format. The chosen scope lives in the session context between
// presses; year and month travel inside the tokens themselves, so the
// final export token is self-contained.
func (e *Engine) handleExport(ctx *sessionContext, userID int64, tok nav.Token) []Reply {
	switch tok.Action {
	case nav.ActionExportOpen, nav.ActionExportBackRoot:
		ctx.ExportScope = ""
		return []Reply{{Text: "Export which records?", Markup: exportRootKeyboard(), Edit: true}}

	case nav.ActionExportScope:
		scope := tok.Arg(0)
		ctx.ExportScope = scope
		if scope == nav.ScopeAll {
			return []Reply{{Text: "Pick a format.", Markup: exportFormatKeyboard(export.ScopeAll, 0, 0), Edit: true}}
		}
		return e.exportYearsView(userID)

	case nav.ActionExportBackYears:
		return e.exportYearsView(userID)

	case nav.ActionExportYear:
		year := tok.Int(0)
		if ctx.ExportScope == nav.ScopeMonth {
			return e.exportMonthsView(userID, year)
		}
		return []Reply{{Text: "Pick a format.", Markup: exportFormatKeyboard(export.ScopeYear, year, 0), Edit: true}}

	case nav.ActionExportMonth:
		return []Reply{{
			Text:   "Pick a format.",
			Markup: exportFormatKeyboard(export.ScopeMonth, tok.Int(0), tok.Int(1)),
			Edit:   true,
		}}

	case nav.ActionExportFile:
		return e.runExport(userID, export.Format(tok.Arg(0)), export.Scope(tok.Arg(1)), tok.Int(2), tok.Int(3))
	}
	return nil
}

func (e *Engine) exportYearsView(userID int64) []Reply {
	tree, failure := e.buildTree(userID)
	if failure != nil {
		return failure
	}
	if tree.Empty() {
		return []Reply{{Text: msgNoRecords, Markup: mainMenu(), Edit: true}}
	}
	return []Reply{{Text: "Pick a year.", Markup: exportYearsKeyboard(tree.Years()), Edit: true}}
}

func (e *Engine) exportMonthsView(userID int64, year int) []Reply {
	tree, failure := e.buildTree(userID)
	if failure != nil {
		return failure
	}
	months := tree.Months(year)
	if len(months) == 0 {
		return e.exportYearsView(userID)
	}
	return []Reply{{Text: "Pick a month.", Markup: exportMonthsKeyboard(year, months), Edit: true}}
}

// runExport filters, renders and packages one export. An empty filtered
// set answers with the no-records marker and writes nothing; a missing
// PDF renderer refuses cleanly with no partial file.
func (e *Engine) runExport(userID int64, format export.Format, scope export.Scope, year, month int) []Reply {
	records, err := e.store.ListRecords(userID)
	if err != nil {
		e.log.Error("record listing failed", "user", userID, "err", err)
		return []Reply{{Text: msgStoreFailure, Markup: mainMenu()}}
	}

	filtered := export.Filter(records, scope, year, month)
	if len(filtered) == 0 {
		return []Reply{{Text: export.NoRecords, Markup: mainMenu()}}
	}

	lines := export.Report(filtered, scope, year, month)

	var data []byte
	switch format {
	case export.FormatTXT:
		data = export.TextDocument(lines)
	case export.FormatPDF:
		if e.pdf == nil {
			return []Reply{{Text: msgPDFUnavailable, Markup: mainMenu()}}
		}
		data, err = e.pdf.Render(lines)
		if err != nil {
			e.log.Error("pdf render failed", "user", userID, "err", err)
			return []Reply{{Text: msgStoreFailure, Markup: mainMenu()}}
		}
	default:
		return nil
	}

	return []Reply{{
		Text:     "Here is your export.",
		Markup:   mainMenu(),
		Document: &Document{Name: export.Filename(scope, year, month, format), Data: data},
	}}
}
