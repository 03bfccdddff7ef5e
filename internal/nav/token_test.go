package nav

import "testing"

// --- Round trip ---

func TestDecode_RoundTrip(t *testing.T) {
	tokens := []Token{
		New(ActionBrowse),
		New(ActionYearStep, "2024", DirPrev),
		New(ActionYearStep, "2024", DirNext),
		NewInts(ActionSelectMonth, 2024, 3),
		NewInts(ActionDayPage, 2024, 3, 1),
		NewInts(ActionSelectDay, 2024, 3, 10),
		NewInts(ActionViewMonth, 2024, 3),
		NewInts(ActionBackMonths, 2024),
		New(ActionMainMenu),
		New(ActionNoop),
		New(ActionExportScope, ScopeMonth),
		New(ActionExportFile, FormatPDF, ScopeMonth, "2024", "3"),
		New(ActionExportFile, FormatTXT, ScopeAll),
	}
	for _, tok := range tokens {
		got := Decode(tok.Encode())
		if got.Action != tok.Action {
			t.Errorf("Decode(%q).Action = %q, want %q", tok.Encode(), got.Action, tok.Action)
		}
		if got.Mode != tok.Mode {
			t.Errorf("Decode(%q).Mode = %v, want %v", tok.Encode(), got.Mode, tok.Mode)
		}
		if len(got.Args) != len(tok.Args) {
			t.Fatalf("Decode(%q).Args = %v, want %v", tok.Encode(), got.Args, tok.Args)
		}
		for i := range tok.Args {
			if got.Args[i] != tok.Args[i] {
				t.Errorf("Decode(%q).Args[%d] = %q, want %q", tok.Encode(), i, got.Args[i], tok.Args[i])
			}
		}
	}
}

func TestDecode_RoundTripDeleteMode(t *testing.T) {
	tok := NewInts(ActionSelectDay, 2024, 3, 10).InMode(ModeDelete)
	wire := tok.Encode()
	if wire != "del_sel_day:2024:3:10" {
		t.Fatalf("Encode = %q, want del_sel_day:2024:3:10", wire)
	}
	got := Decode(wire)
	if got.Mode != ModeDelete || got.Action != ActionSelectDay {
		t.Errorf("Decode(%q) = %+v, want delete-mode sel_day", wire, got)
	}
}

// --- Mode transform ---

func TestInMode_Idempotent(t *testing.T) {
	tok := NewInts(ActionDayPage, 2024, 3, 0)
	once := tok.InMode(ModeDelete)
	twice := once.InMode(ModeDelete)
	if once.Encode() != twice.Encode() {
		t.Errorf("double transform produced %q, want %q", twice.Encode(), once.Encode())
	}
	if got := twice.Encode(); got != "del_nav_days:2024:3:0" {
		t.Errorf("Encode = %q, want single del_ prefix", got)
	}
}

func TestInMode_LeavesStaticActionsAlone(t *testing.T) {
	for _, tok := range []Token{New(ActionNewRecord), New(ActionCancel), New(ActionExportOpen)} {
		got := tok.InMode(ModeDelete)
		if got.Mode != ModeBrowse {
			t.Errorf("InMode changed non-mirrored action %q", tok.Action)
		}
		if got.Encode() != tok.Encode() {
			t.Errorf("InMode changed wire form of %q to %q", tok.Encode(), got.Encode())
		}
	}
}

func TestInMode_BackToBrowse(t *testing.T) {
	tok := NewInts(ActionSelectMonth, 2024, 4).InMode(ModeDelete).InMode(ModeBrowse)
	if got := tok.Encode(); got != "sel_month:2024:4" {
		t.Errorf("Encode = %q, want sel_month:2024:4", got)
	}
}

// --- Malformed input ---

func TestDecode_MalformedIsNoop(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"sel_month",               // missing args
		"sel_month:2024",          // too few args
		"sel_month:2024:3:7",      // too many args
		"sel_month:2024:march",    // non-integer
		"nav_year:2024:sideways",  // bad direction enum
		"export_scope:decade",     // bad scope enum
		"export_make:doc:all",     // bad format enum
		"del_new_note",            // del_ prefix on a non-mirrored action
		"del_",                    // bare prefix
		"sel_day:2024:3:10:extra", // arity overflow
	}
	for _, s := range cases {
		if got := Decode(s); got.Action != ActionNoop {
			t.Errorf("Decode(%q) = %+v, want noop", s, got)
		}
	}
}

func TestDecode_OptionalArgs(t *testing.T) {
	if got := Decode("export_make:txt:year:2024"); got.Action != ActionExportFile || got.Int(2) != 2024 {
		t.Errorf("Decode export_make with optional year = %+v", got)
	}
	if got := Decode("export_make:txt:all"); got.Action != ActionExportFile || len(got.Args) != 2 {
		t.Errorf("Decode export_make without optional args = %+v", got)
	}
}
