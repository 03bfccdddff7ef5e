// Package flow defines the guided-entry conversation machine: the per-user
// states that classify free-text replies, and the validation of the values
// those replies must carry.
//
// The machine is stateless per request. Each inbound event reconstructs an
// FSM from the state string persisted in the session context, fires at most
// one event, and persists the resulting state back.
package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/avdeyev/healthdiary/internal/diary"
	"github.com/looplab/fsm"
)

// Conversation states. Exactly one is active per user at a time.
const (
	StateIdle             = "idle"
	StateAwaitingSeverity = "awaiting_severity"
	StateAwaitingText     = "awaiting_text"
	StateAwaitingDeleteID = "awaiting_delete_id"
)

// Transition events.
const (
	EventStartAdd    = "start_add"
	EventSeverityOK  = "severity_ok"
	EventTextOK      = "text_ok"
	EventStartDelete = "start_delete"
	EventDeleteOK    = "delete_ok"
	EventCancel      = "cancel"
)

// allStates lets a new guided flow start from anywhere, implicitly
// discarding whatever was in flight. There is no nesting and no merge.
var allStates = []string{StateIdle, StateAwaitingSeverity, StateAwaitingText, StateAwaitingDeleteID}

// Machine builds the conversation FSM positioned at the given state.
// An empty or unknown state starts at idle, so an expired or corrupt
// session context degrades to the main menu instead of failing.
func Machine(state string) *fsm.FSM {
	if !known(state) {
		state = StateIdle
	}
	return fsm.NewFSM(
		state,
		fsm.Events{
			{Name: EventStartAdd, Src: allStates, Dst: StateAwaitingSeverity},
			{Name: EventSeverityOK, Src: []string{StateAwaitingSeverity}, Dst: StateAwaitingText},
			{Name: EventTextOK, Src: []string{StateAwaitingText}, Dst: StateIdle},
			{Name: EventStartDelete, Src: allStates, Dst: StateAwaitingDeleteID},
			{Name: EventDeleteOK, Src: []string{StateAwaitingDeleteID}, Dst: StateIdle},
			{Name: EventCancel, Src: allStates, Dst: StateIdle},
		},
		fsm.Callbacks{},
	)
}

// Fire advances the machine and returns the new state.
func Fire(m *fsm.FSM, event string) (string, error) {
	if err := m.Event(context.Background(), event); err != nil {
		return m.Current(), fmt.Errorf("flow: event %s from %s: %w", event, m.Current(), err)
	}
	return m.Current(), nil
}

func known(state string) bool {
	for _, s := range allStates {
		if s == state {
			return true
		}
	}
	return false
}

// ParseSeverity validates a severity reply: an integer in [1, 10].
// Invalid input is an explicit error value, branched on by the caller to
// re-prompt without a state change.
func ParseSeverity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("severity %q is not a number", s)
	}
	if n < diary.MinSeverity || n > diary.MaxSeverity {
		return 0, fmt.Errorf("severity %d is outside %d..%d", n, diary.MinSeverity, diary.MaxSeverity)
	}
	return n, nil
}

// ParseRecordID validates a delete reply: a positive integer record id.
// Whether the id actually exists is the store's business, not the flow's.
func ParseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a record id", s)
	}
	return id, nil
}
