// Package diary holds the domain model of the health diary: the record
// type, the fixed-offset wall clock records are stamped with, the
// year→month→day grouping tree used for browsing, and the day-window pager.
package diary

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format read from and written to the store.
const TimeLayout = "02.01.2006 15:04"

// Severity bounds for a record's score.
const (
	MinSeverity = 1
	MaxSeverity = 10
)

// Record is one diary entry. Records are created by the guided-entry flow
// and deleted by id; they are never edited in place.
type Record struct {
	ID        int64
	UserID    int64
	Severity  int
	Text      string
	Timestamp time.Time
}

// Zone returns the fixed zone offset records are stamped with.
// The offset is applied at write time only; stored timestamps are
// re-read in the same zone, never re-derived.
func Zone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// Now returns the current wall-clock time in the given zone.
// This, not user input, determines a new record's place in the tree.
func Now(loc *time.Location) time.Time {
	return timeNow().In(loc)
}
