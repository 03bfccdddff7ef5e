package bot

import (
	"encoding/json"

	"github.com/avdeyev/healthdiary/internal/flow"
)

// sessionContext is the per-user scratch space carried between events:
// the conversation state, the partially collected record draft, the
// pending export scope and one navigation cursor per mode.
//
// It is persisted as a JSON blob in the sessions table and passed
// explicitly through every handler, never held as process-wide state.
type sessionContext struct {
	State         string `json:"state"`
	DraftSeverity int    `json:"draft_severity,omitempty"`
	ExportScope   string `json:"export_scope,omitempty"`
	Browse        cursor `json:"browse"`
	Delete        cursor `json:"delete"`
}

// cursor is a navigation snapshot for one mode. Browse and delete each
// own one, so switching modes mid-session cannot move the other mode's
// position.
type cursor struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Page  int `json:"page,omitempty"`
}

func newSessionContext() sessionContext {
	return sessionContext{State: flow.StateIdle}
}

// loadContext fetches and decodes a user's session context. A missing
// row, a store failure or a corrupt blob all degrade to a fresh idle
// context; an expired session is a restart, not an error.
func (e *Engine) loadContext(userID int64) sessionContext {
	blob, err := e.store.LoadSession(userID)
	if err != nil {
		e.log.Warn("session load failed, starting fresh", "user", userID, "err", err)
		return newSessionContext()
	}
	if blob == nil {
		return newSessionContext()
	}
	var ctx sessionContext
	if err := json.Unmarshal(blob, &ctx); err != nil {
		e.log.Warn("session blob corrupt, starting fresh", "user", userID, "err", err)
		return newSessionContext()
	}
	if ctx.State == "" {
		ctx.State = flow.StateIdle
	}
	return ctx
}

func (e *Engine) saveContext(userID int64, ctx sessionContext) {
	blob, err := json.Marshal(ctx)
	if err != nil {
		e.log.Error("session marshal failed", "user", userID, "err", err)
		return
	}
	if err := e.store.SaveSession(userID, blob); err != nil {
		e.log.Error("session save failed", "user", userID, "err", err)
	}
}
