package diary

import "sort"

// Tree is the year→month→day projection of one user's records.
// It is rebuilt from the store on every browse entry and never persisted.
//
// Leaves are never empty: a (year, month, day) key exists only if at least
// one record fell on that day. This is what keeps pagination honest: the
// pager can trust that every listed key has something behind it.
type Tree struct {
	days map[int]map[int]map[int][]Record
}

// NewTree groups records by the year, month and day of their timestamps.
// Order within a day follows the input order.
func NewTree(records []Record) *Tree {
	t := &Tree{days: make(map[int]map[int]map[int][]Record)}
	for _, r := range records {
		y, m, d := r.Timestamp.Year(), int(r.Timestamp.Month()), r.Timestamp.Day()
		if t.days[y] == nil {
			t.days[y] = make(map[int]map[int][]Record)
		}
		if t.days[y][m] == nil {
			t.days[y][m] = make(map[int][]Record)
		}
		t.days[y][m][d] = append(t.days[y][m][d], r)
	}
	return t
}

// Empty reports whether the tree holds no records at all.
func (t *Tree) Empty() bool {
	return len(t.days) == 0
}

// Years returns the years with at least one record, ascending.
func (t *Tree) Years() []int {
	return sortedKeys(t.days)
}

// Months returns the months of the given year with at least one record,
// ascending. Returns an empty slice for a year with no data.
func (t *Tree) Months(year int) []int {
	return sortedKeys(t.days[year])
}

// Days returns the days of the given year and month with at least one
// record, ascending. Returns an empty slice when there is no data.
func (t *Tree) Days(year, month int) []int {
	if t.days[year] == nil {
		return nil
	}
	return sortedKeys(t.days[year][month])
}

// DayRecords returns the records of one day in insertion order,
// or nil when the day has none.
func (t *Tree) DayRecords(year, month, day int) []Record {
	if t.days[year] == nil || t.days[year][month] == nil {
		return nil
	}
	return t.days[year][month][day]
}

// MonthRecords returns all records of a month, ordered day by day,
// insertion order within each day.
func (t *Tree) MonthRecords(year, month int) []Record {
	var out []Record
	for _, d := range t.Days(year, month) {
		out = append(out, t.days[year][month][d]...)
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
