// Package nav implements the callback token protocol: the compact strings
// carried by inline keyboard buttons that encode "where the user is and
// what to do next".
//
// A token is <action>:<arg>:<arg>... with colon-delimited fields. Every
// browse action has a delete-mode counterpart written with a "del_" prefix
// on the wire; internally the mode is a field on the decoded token, so
// switching mode is a field flip rather than string surgery.
package nav

import (
	"strconv"
	"strings"
)

// Mode selects which terminal action the navigation grammar leads to:
// viewing a day's records, or prompting for a record id to delete.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeDelete
)

// deletePrefix marks the delete-mode family on the wire.
const deletePrefix = "del_"

// Action identifies one token family.
type Action string

// Navigation actions. Each has a 1:1 delete-mode mirror.
const (
	ActionBrowse      Action = "browse"      // enter browsing at the latest year
	ActionYearStep    Action = "nav_year"    // args: year, prev|next
	ActionSelectMonth Action = "sel_month"   // args: year, month
	ActionDayPage     Action = "nav_days"    // args: year, month, page
	ActionSelectDay   Action = "sel_day"     // args: year, month, day
	ActionViewMonth   Action = "view_month"  // args: year, month
	ActionBackMonths  Action = "back_months" // args: year
	ActionMainMenu    Action = "main_menu"
	ActionNoop        Action = "noop"
)

// Static and export-flow actions. These have no delete-mode mirror.
const (
	ActionNewRecord       Action = "new_note"
	ActionCancel          Action = "cancel"
	ActionExportOpen      Action = "export_open"       // open the scope filter
	ActionExportScope     Action = "export_scope"      // arg: all|year|month
	ActionExportYear      Action = "export_year"       // arg: year
	ActionExportMonth     Action = "export_month"      // args: year, month
	ActionExportBackRoot  Action = "export_back_root"  // back to the scope keyboard
	ActionExportBackYears Action = "export_back_years" // back to the year keyboard
	ActionExportCancel    Action = "export_cancel"
	ActionExportFile      Action = "export_make" // args: txt|pdf, all|year|month, [year, [month]]
)

// Year-step directions.
const (
	DirPrev = "prev"
	DirNext = "next"
)

// Export scope argument values, shared with the export filter.
const (
	ScopeAll   = "all"
	ScopeYear  = "year"
	ScopeMonth = "month"
)

// Export format argument values.
const (
	FormatTXT = "txt"
	FormatPDF = "pdf"
)

// Token is a decoded navigation token: a tagged union of mode, action and
// validated arguments.
type Token struct {
	Mode   Mode
	Action Action
	Args   []string
}

// argSpec validates a single argument position.
type argSpec struct {
	enum     []string // nil means any integer
	optional bool
}

func argInt() argSpec                { return argSpec{} }
func argOptInt() argSpec             { return argSpec{optional: true} }
func argEnum(vals ...string) argSpec { return argSpec{enum: vals} }

// signatures declares each action's argument shape. Decoding type-checks
// every position against it; anything that does not fit is a no-op.
var signatures = map[Action][]argSpec{
	ActionBrowse:      {},
	ActionYearStep:    {argInt(), argEnum(DirPrev, DirNext)},
	ActionSelectMonth: {argInt(), argInt()},
	ActionDayPage:     {argInt(), argInt(), argInt()},
	ActionSelectDay:   {argInt(), argInt(), argInt()},
	ActionViewMonth:   {argInt(), argInt()},
	ActionBackMonths:  {argInt()},
	ActionMainMenu:    {},
	ActionNoop:        {},

	ActionNewRecord:       {},
	ActionCancel:          {},
	ActionExportOpen:      {},
	ActionExportScope:     {argEnum(ScopeAll, ScopeYear, ScopeMonth)},
	ActionExportYear:      {argInt()},
	ActionExportMonth:     {argInt(), argInt()},
	ActionExportBackRoot:  {},
	ActionExportBackYears: {},
	ActionExportCancel:    {},
	ActionExportFile:      {argEnum(FormatTXT, FormatPDF), argEnum(ScopeAll, ScopeYear, ScopeMonth), argOptInt(), argOptInt()},
}

// mirrored is the browse family: the actions with a delete-mode twin.
var mirrored = map[Action]bool{
	ActionBrowse:      true,
	ActionYearStep:    true,
	ActionSelectMonth: true,
	ActionDayPage:     true,
	ActionSelectDay:   true,
	ActionViewMonth:   true,
	ActionBackMonths:  true,
	ActionMainMenu:    true,
	ActionNoop:        true,
}

// Noop is the token every malformed input collapses to.
var Noop = Token{Action: ActionNoop}

// New builds a token from an action and string arguments.
func New(action Action, args ...string) Token {
	return Token{Action: action, Args: args}
}

// NewInts builds a token whose arguments are all integers.
func NewInts(action Action, args ...int) Token {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = strconv.Itoa(a)
	}
	return Token{Action: action, Args: strs}
}

// InMode returns a copy of the token carrying the given mode. Actions
// outside the mirrored browse family are returned unchanged, so applying
// the transform to a built option set is idempotent and never touches
// static or export buttons.
func (t Token) InMode(mode Mode) Token {
	if !mirrored[t.Action] {
		return t
	}
	t.Mode = mode
	return t
}

// Int returns argument i as an integer. Decode has already type-checked
// it; a constructed token with a bad argument yields 0.
func (t Token) Int(i int) int {
	if i >= len(t.Args) {
		return 0
	}
	n, _ := strconv.Atoi(t.Args[i])
	return n
}

// Arg returns argument i, or "" when absent.
func (t Token) Arg(i int) string {
	if i >= len(t.Args) {
		return ""
	}
	return t.Args[i]
}

// Encode renders the token to its wire form.
func (t Token) Encode() string {
	name := string(t.Action)
	if t.Mode == ModeDelete && mirrored[t.Action] {
		name = deletePrefix + name
	}
	if len(t.Args) == 0 {
		return name
	}
	return name + ":" + strings.Join(t.Args, ":")
}

// Decode parses a wire token. Malformed input (unknown action, wrong
// argument count, a field that fails its type check) decodes to the
// no-op token rather than an error: tokens can outlive the data they
// refer to, and a dead button press must never be fatal.
func Decode(s string) Token {
	parts := strings.Split(s, ":")
	name := parts[0]
	args := parts[1:]

	mode := ModeBrowse
	if rest, ok := strings.CutPrefix(name, deletePrefix); ok && mirrored[Action(rest)] {
		mode = ModeDelete
		name = rest
	}

	action := Action(name)
	spec, ok := signatures[action]
	if !ok {
		return Noop
	}

	required := 0
	for _, a := range spec {
		if !a.optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(spec) {
		return Noop
	}
	for i, a := range args {
		if !spec[i].valid(a) {
			return Noop
		}
	}

	return Token{Mode: mode, Action: action, Args: args}
}

func (a argSpec) valid(s string) bool {
	if a.enum == nil {
		_, err := strconv.Atoi(s)
		return err == nil
	}
	for _, v := range a.enum {
		if s == v {
			return true
		}
	}
	return false
}
