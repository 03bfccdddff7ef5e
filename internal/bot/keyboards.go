package bot

import (
	"fmt"
	"strconv"

	"github.com/avdeyev/healthdiary/internal/export"
	"github.com/avdeyev/healthdiary/internal/nav"
)

// Button is one pressable option: a label and the navigation token it
// carries.
type Button struct {
	Label string
	Token nav.Token
}

// Markup is a keyboard: rows of buttons.
type Markup [][]Button

// InMode returns a copy of the keyboard with every token's mode flipped.
// This is how delete mode reuses the whole browse grammar: keyboards are
// built once, mode-agnostic, and stamped afterwards. Static and export
// buttons pass through untouched, and the stamp is idempotent.
func (m Markup) InMode(mode nav.Mode) Markup {
	out := make(Markup, len(m))
	for i, row := range m {
		out[i] = make([]Button, len(row))
		for j, b := range row {
			out[i][j] = Button{Label: b.Label, Token: b.Token.InMode(mode)}
		}
	}
	return out
}

func btn(label string, token nav.Token) Button {
	return Button{Label: label, Token: token}
}

// mainMenu is the five-option entry keyboard.
func mainMenu() Markup {
	return Markup{
		{btn("New record", nav.New(nav.ActionNewRecord))},
		{btn("Browse records", nav.New(nav.ActionBrowse))},
		{btn("Delete record", nav.New(nav.ActionBrowse).InMode(nav.ModeDelete))},
		{
			btn("Export TXT", nav.New(nav.ActionExportFile, nav.FormatTXT, nav.ScopeAll)),
			btn("Export PDF", nav.New(nav.ActionExportFile, nav.FormatPDF, nav.ScopeAll)),
		},
		{btn("Export filter", nav.New(nav.ActionExportOpen))},
	}
}

// cancelKeyboard accompanies free-text prompts in guided flows.
func cancelKeyboard() Markup {
	return Markup{{btn("Cancel", nav.New(nav.ActionCancel))}}
}

// monthsKeyboard shows a year's months three per row, with a year-step
// row underneath: "<<" and ">>" appear only when a neighbor year exists.
func monthsKeyboard(year int, months []int, hasPrev, hasNext bool) Markup {
	var m Markup
	var row []Button
	for _, month := range months {
		row = append(row, btn(monthName(month), nav.NewInts(nav.ActionSelectMonth, year, month)))
		if len(row) == 3 {
			m = append(m, row)
			row = nil
		}
	}
	if len(row) > 0 {
		m = append(m, row)
	}

	var navRow []Button
	if hasPrev {
		navRow = append(navRow, btn("<<", nav.New(nav.ActionYearStep, strconv.Itoa(year), nav.DirPrev)))
	}
	navRow = append(navRow, btn("Main menu", nav.New(nav.ActionMainMenu)))
	if hasNext {
		navRow = append(navRow, btn(">>", nav.New(nav.ActionYearStep, strconv.Itoa(year), nav.DirNext)))
	}
	return append(m, navRow)
}

// daysKeyboard shows one window of day buttons plus paging and escape rows.
func daysKeyboard(year, month int, window []int, page, totalPages int) Markup {
	var dayRow []Button
	for _, d := range window {
		dayRow = append(dayRow, btn(strconv.Itoa(d), nav.NewInts(nav.ActionSelectDay, year, month, d)))
	}
	m := Markup{dayRow}

	var navRow []Button
	if page > 0 {
		navRow = append(navRow, btn("< Days", nav.NewInts(nav.ActionDayPage, year, month, page-1)))
	}
	navRow = append(navRow, btn("Months", nav.NewInts(nav.ActionBackMonths, year)))
	if page < totalPages-1 {
		navRow = append(navRow, btn("Days >", nav.NewInts(nav.ActionDayPage, year, month, page+1)))
	}
	m = append(m, navRow)

	if totalPages > 1 {
		m = append(m, []Button{btn(fmt.Sprintf("%d/%d", page+1, totalPages), nav.New(nav.ActionNoop))})
	}

	m = append(m,
		[]Button{btn("Whole month", nav.NewInts(nav.ActionViewMonth, year, month))},
		[]Button{btn("Main menu", nav.New(nav.ActionMainMenu))},
	)
	return m
}

// afterRecordsKeyboard follows a rendered day or month view.
func afterRecordsKeyboard(year, month int) Markup {
	return Markup{
		{
			btn("Back to days", nav.NewInts(nav.ActionSelectMonth, year, month)),
			btn("Main menu", nav.New(nav.ActionMainMenu)),
		},
	}
}

// ─── Export keyboards ────────────────────────────────────────────────────────

func exportRootKeyboard() Markup {
	return Markup{
		{btn("Everything", nav.New(nav.ActionExportScope, nav.ScopeAll))},
		{btn("By year", nav.New(nav.ActionExportScope, nav.ScopeYear))},
		{btn("By month", nav.New(nav.ActionExportScope, nav.ScopeMonth))},
		{btn("Cancel", nav.New(nav.ActionExportCancel))},
	}
}

func exportYearsKeyboard(years []int) Markup {
	var m Markup
	var row []Button
	for _, y := range years {
		row = append(row, btn(strconv.Itoa(y), nav.NewInts(nav.ActionExportYear, y)))
		if len(row) == 3 {
			m = append(m, row)
			row = nil
		}
	}
	if len(row) > 0 {
		m = append(m, row)
	}
	return append(m, []Button{btn("Back", nav.New(nav.ActionExportBackRoot))})
}

func exportMonthsKeyboard(year int, months []int) Markup {
	var m Markup
	var row []Button
	for _, month := range months {
		row = append(row, btn(monthName(month), nav.NewInts(nav.ActionExportMonth, year, month)))
		if len(row) == 4 {
			m = append(m, row)
			row = nil
		}
	}
	if len(row) > 0 {
		m = append(m, row)
	}
	return append(m, []Button{btn("Back", nav.New(nav.ActionExportBackYears))})
}

// exportFormatKeyboard offers the document type for an already chosen
// scope. The scope and its parameters ride inside the export token, so
// the final press is self-contained.
func exportFormatKeyboard(scope export.Scope, year, month int) Markup {
	tail := []string{string(scope)}
	switch scope {
	case export.ScopeYear:
		tail = append(tail, strconv.Itoa(year))
	case export.ScopeMonth:
		tail = append(tail, strconv.Itoa(year), strconv.Itoa(month))
	}

	txt := append([]string{nav.FormatTXT}, tail...)
	pdf := append([]string{nav.FormatPDF}, tail...)
	return Markup{
		{btn("TXT", nav.New(nav.ActionExportFile, txt...))},
		{btn("PDF", nav.New(nav.ActionExportFile, pdf...))},
		{btn("Cancel", nav.New(nav.ActionExportCancel))},
	}
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return strconv.Itoa(m)
	}
	return [...]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}[m-1]
}
