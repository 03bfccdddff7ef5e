// Package bot contains the conversation engine and its Telegram adapter.
//
// The engine is transport-free: it consumes classified events and produces
// replies (text plus keyboards plus optional documents). Each event is a
// discrete, independent interaction; everything the engine remembers
// between two events lives in the persisted session context. The Telegram
// adapter in telegram.go is the only file that talks to the network.
package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avdeyev/healthdiary/internal/diary"
	"github.com/avdeyev/healthdiary/internal/flow"
	"github.com/avdeyev/healthdiary/internal/nav"
	"github.com/avdeyev/healthdiary/internal/storage"
)

// EventKind classifies an inbound chat event.
type EventKind int

const (
	EventCommand EventKind = iota
	EventButton
	EventText
)

// Event is one inbound interaction, already stripped of transport detail.
type Event struct {
	Kind      EventKind
	UserID    int64
	ChatID    int64
	MessageID int    // message the pressed button was attached to
	Text      string // command name or free-text payload
	Token     string // raw callback token for button presses
}

// Reply is one outbound display: text, pressable options, and optionally
// a generated document. Edit replaces the originating message in place
// (navigation), otherwise a new message is sent (prompts, confirmations).
type Reply struct {
	Text     string
	Markup   Markup
	Edit     bool
	Document *Document
}

// Document is a generated export to deliver as a file.
type Document struct {
	Name string
	Data []byte
}

// DocumentRenderer renders report lines to a byte stream. A nil renderer
// means the capability is absent and exports of that type are refused
// with an actionable message instead of a broken file.
type DocumentRenderer interface {
	Render(lines []string) ([]byte, error)
}

const (
	msgWelcome        = "Hi! I keep your health diary. What would you like to do?"
	msgMenuHint       = "Use the buttons below."
	msgAskSeverity    = "How bad is it? Send a number from 1 to 10."
	msgBadSeverity    = "Please send a whole number from 1 to 10."
	msgAskText        = "Describe how you feel."
	msgAskDeleteID    = "Send the id of the record to delete."
	msgBadDeleteID    = "Please send a numeric record id."
	msgCancelled      = "Cancelled."
	msgDeleted        = "Record removed."
	msgNoRecords      = "You have no records yet."
	msgStoreFailure   = "Something went wrong, please try again."
	msgPDFUnavailable = "PDF export is unavailable right now. Try TXT instead."
)

// Engine drives the diary conversation: it classifies events, walks the
// grouping tree, advances the guided flows and renders replies.
type Engine struct {
	store    *storage.Store
	pdf      DocumentRenderer
	log      *slog.Logger
	loc      *time.Location
	pageSize int
}

// NewEngine wires the conversation engine. pdf may be nil when PDF
// rendering is not available.
func NewEngine(store *storage.Store, pdf DocumentRenderer, log *slog.Logger, loc *time.Location, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = diary.DefaultPageSize
	}
	return &Engine{store: store, pdf: pdf, log: log, loc: loc, pageSize: pageSize}
}

// Handle fully processes one inbound event and returns the replies to
// deliver. The session context is loaded at entry and written back before
// returning; a failure for one user never leaks into another's session.
func (e *Engine) Handle(ev Event) []Reply {
	ctx := e.loadContext(ev.UserID)

	var replies []Reply
	switch ev.Kind {
	case EventCommand:
		replies = e.handleCommand(&ctx, ev)
	case EventButton:
		replies = e.handleToken(&ctx, ev)
	case EventText:
		replies = e.handleText(&ctx, ev)
	}

	e.saveContext(ev.UserID, ctx)
	return replies
}

func (e *Engine) handleCommand(ctx *sessionContext, ev Event) []Reply {
	switch ev.Text {
	case "start":
		return []Reply{{Text: msgWelcome, Markup: mainMenu()}}
	default:
		return []Reply{{Text: msgMenuHint, Markup: mainMenu()}}
	}
}

// ─── Token routing ───────────────────────────────────────────────────────────

func (e *Engine) handleToken(ctx *sessionContext, ev Event) []Reply {
	tok := nav.Decode(ev.Token)

	switch tok.Action {
	case nav.ActionNoop:
		return nil

	case nav.ActionMainMenu:
		return []Reply{{Text: msgWelcome, Markup: mainMenu(), Edit: true}}

	case nav.ActionNewRecord:
		ctx.State = e.advance(ctx.State, flow.EventStartAdd)
		ctx.DraftSeverity = 0
		return []Reply{{Text: msgAskSeverity, Markup: cancelKeyboard()}}

	case nav.ActionCancel, nav.ActionExportCancel:
		return e.cancel(ctx)

	case nav.ActionBrowse, nav.ActionYearStep, nav.ActionSelectMonth,
		nav.ActionDayPage, nav.ActionSelectDay, nav.ActionViewMonth,
		nav.ActionBackMonths:
		return e.handleNavigation(ctx, ev.UserID, tok)

	case nav.ActionExportOpen, nav.ActionExportScope, nav.ActionExportYear,
		nav.ActionExportMonth, nav.ActionExportBackRoot, nav.ActionExportBackYears,
		nav.ActionExportFile:
		return e.handleExport(ctx, ev.UserID, tok)
	}
	return nil
}

func (e *Engine) cancel(ctx *sessionContext) []Reply {
	m := flow.Machine(ctx.State)
	if state, err := flow.Fire(m, flow.EventCancel); err == nil {
		ctx.State = state
	}
	ctx.DraftSeverity = 0
	ctx.ExportScope = ""
	return []Reply{{Text: msgCancelled, Markup: mainMenu(), Edit: true}}
}

// ─── Browse / delete navigation ─────────────────────────────────────────────

func (e *Engine) handleNavigation(ctx *sessionContext, userID int64, tok nav.Token) []Reply {
	tree, failure := e.buildTree(userID)
	if failure != nil {
		return failure
	}
	if tree.Empty() {
		return []Reply{{Text: msgNoRecords, Markup: mainMenu(), Edit: true}}
	}

	cur := &ctx.Browse
	if tok.Mode == nav.ModeDelete {
		cur = &ctx.Delete
	}

	switch tok.Action {
	case nav.ActionBrowse:
		year := cur.Year
		if !contains(tree.Years(), year) {
			year = latest(tree.Years())
		}
		return e.monthsView(tree, cur, tok.Mode, year)

	case nav.ActionYearStep:
		return e.monthsView(tree, cur, tok.Mode, stepYear(tree.Years(), tok.Int(0), tok.Arg(1)))

	case nav.ActionBackMonths:
		return e.monthsView(tree, cur, tok.Mode, tok.Int(0))

	case nav.ActionSelectMonth:
		return e.daysView(tree, cur, tok.Mode, tok.Int(0), tok.Int(1), 0)

	case nav.ActionDayPage:
		return e.daysView(tree, cur, tok.Mode, tok.Int(0), tok.Int(1), tok.Int(2))

	case nav.ActionSelectDay:
		return e.dayRecordsView(ctx, tree, cur, tok.Mode, tok.Int(0), tok.Int(1), tok.Int(2))

	case nav.ActionViewMonth:
		return e.monthRecordsView(tree, tok.Mode, tok.Int(0), tok.Int(1))
	}
	return nil
}

// monthsView renders the month keyboard for a year. A stale year falls
// back to the latest year present.
func (e *Engine) monthsView(tree *diary.Tree, cur *cursor, mode nav.Mode, year int) []Reply {
	years := tree.Years()
	if !contains(years, year) {
		year = latest(years)
	}
	months := tree.Months(year)

	idx := indexOf(years, year)
	markup := monthsKeyboard(year, months, idx > 0, idx < len(years)-1).InMode(mode)

	cur.Year = year
	cur.Month = 0
	cur.Page = 0

	title := fmt.Sprintf("Records — %d. Pick a month.", year)
	if mode == nav.ModeDelete {
		title = fmt.Sprintf("Deleting — %d. Pick a month.", year)
	}
	return []Reply{{Text: title, Markup: markup, Edit: true}}
}

// daysView renders one window of a month's day list. A stale month falls
// back to the months view; a stale page index is clamped.
func (e *Engine) daysView(tree *diary.Tree, cur *cursor, mode nav.Mode, year, month, page int) []Reply {
	days := tree.Days(year, month)
	if len(days) == 0 {
		return e.monthsView(tree, cur, mode, year)
	}

	page = diary.ClampPage(days, page, e.pageSize)
	window := diary.Page(days, page, e.pageSize)
	total := diary.TotalPages(days, e.pageSize)

	markup := daysKeyboard(year, month, window, page, total).InMode(mode)

	cur.Year = year
	cur.Month = month
	cur.Page = page

	title := fmt.Sprintf("%s %d. Pick a day.", monthName(month), year)
	if mode == nav.ModeDelete {
		title = fmt.Sprintf("%s %d. Pick a day to delete from.", monthName(month), year)
	}
	return []Reply{{Text: title, Markup: markup, Edit: true}}
}

// dayRecordsView is the terminal navigation action. In browse mode it
// shows the day's records; in delete mode it additionally opens the
// delete-id prompt.
func (e *Engine) dayRecordsView(ctx *sessionContext, tree *diary.Tree, cur *cursor, mode nav.Mode, year, month, day int) []Reply {
	records := tree.DayRecords(year, month, day)
	if len(records) == 0 {
		// The day emptied out since the keyboard was built.
		return e.daysView(tree, cur, mode, year, month, cur.Page)
	}

	cur.Year = year
	cur.Month = month

	text := fmt.Sprintf("Records for %02d.%02d.%d:\n\n%s", day, month, year, formatRecords(records))
	view := Reply{Text: text, Markup: afterRecordsKeyboard(year, month).InMode(mode), Edit: true}

	if mode == nav.ModeDelete {
		ctx.State = e.advance(ctx.State, flow.EventStartDelete)
		return []Reply{view, {Text: msgAskDeleteID, Markup: cancelKeyboard()}}
	}
	return []Reply{view}
}

func (e *Engine) monthRecordsView(tree *diary.Tree, mode nav.Mode, year, month int) []Reply {
	records := tree.MonthRecords(year, month)
	if len(records) == 0 {
		return []Reply{{Text: msgNoRecords, Markup: mainMenu(), Edit: true}}
	}
	text := fmt.Sprintf("Records for %s %d:\n\n%s", monthName(month), year, formatRecords(records))
	return []Reply{{Text: text, Markup: afterRecordsKeyboard(year, month).InMode(mode), Edit: true}}
}

// ─── Free-text replies ──────────────────────────────────────────────────────

func (e *Engine) handleText(ctx *sessionContext, ev Event) []Reply {
	switch ctx.State {
	case flow.StateAwaitingSeverity:
		severity, err := flow.ParseSeverity(ev.Text)
		if err != nil {
			// Re-prompt; no state change, no data loss.
			return []Reply{{Text: msgBadSeverity, Markup: cancelKeyboard()}}
		}
		ctx.DraftSeverity = severity
		ctx.State = e.advance(ctx.State, flow.EventSeverityOK)
		return []Reply{{Text: msgAskText, Markup: cancelKeyboard()}}

	case flow.StateAwaitingText:
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return []Reply{{Text: msgAskText, Markup: cancelKeyboard()}}
		}
		id, err := e.store.AddRecord(ev.UserID, ctx.DraftSeverity, text, diary.Now(e.loc))
		if err != nil {
			// Keep the flow alive so the user can retry the same text.
			e.log.Error("record insert failed", "user", ev.UserID, "err", err)
			return []Reply{{Text: msgStoreFailure, Markup: cancelKeyboard()}}
		}
		ctx.State = e.advance(ctx.State, flow.EventTextOK)
		ctx.DraftSeverity = 0
		return []Reply{{Text: fmt.Sprintf("Saved record #%d.", id), Markup: mainMenu()}}

	case flow.StateAwaitingDeleteID:
		id, err := flow.ParseRecordID(ev.Text)
		if err != nil {
			return []Reply{{Text: msgBadDeleteID, Markup: cancelKeyboard()}}
		}
		if err := e.store.DeleteRecord(ev.UserID, id); err != nil {
			e.log.Error("record delete failed", "user", ev.UserID, "id", id, "err", err)
			return []Reply{{Text: msgStoreFailure, Markup: cancelKeyboard()}}
		}
		ctx.State = e.advance(ctx.State, flow.EventDeleteOK)
		return []Reply{{Text: msgDeleted, Markup: mainMenu()}}

	default:
		return []Reply{{Text: msgMenuHint, Markup: mainMenu()}}
	}
}

// advance fires one flow event and returns the new state. Transition
// errors keep the current state; they are a bug in routing, not in input,
// so they are logged rather than shown.
func (e *Engine) advance(state, event string) string {
	next, err := flow.Fire(flow.Machine(state), event)
	if err != nil {
		e.log.Error("flow transition rejected", "state", state, "event", event, "err", err)
		return state
	}
	return next
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// buildTree loads the user's records and groups them. The second return
// is non-nil only on a store failure, carrying the reply to send instead.
func (e *Engine) buildTree(userID int64) (*diary.Tree, []Reply) {
	records, err := e.store.ListRecords(userID)
	if err != nil {
		e.log.Error("record listing failed", "user", userID, "err", err)
		return nil, []Reply{{Text: msgStoreFailure, Markup: mainMenu(), Edit: true}}
	}
	return diary.NewTree(records), nil
}

func formatRecords(records []diary.Record) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "#%d  %s  [%d/%d]\n%s\n\n",
			r.ID, r.Timestamp.Format(diary.TimeLayout), r.Severity, diary.MaxSeverity, r.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func contains(keys []int, k int) bool {
	return indexOf(keys, k) >= 0
}

func indexOf(keys []int, k int) int {
	for i, v := range keys {
		if v == k {
			return i
		}
	}
	return -1
}

func latest(keys []int) int {
	if len(keys) == 0 {
		return 0
	}
	return keys[len(keys)-1]
}

// stepYear moves one year back or forward from the given year, clamped to
// the available range. A vanished year falls back to the latest one.
func stepYear(years []int, year int, dir string) int {
	idx := indexOf(years, year)
	if idx < 0 {
		return latest(years)
	}
	if dir == nav.DirPrev && idx > 0 {
		return years[idx-1]
	}
	if dir == nav.DirNext && idx < len(years)-1 {
		return years[idx+1]
	}
	return year
}
