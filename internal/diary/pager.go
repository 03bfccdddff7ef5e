package diary

// DefaultPageSize is the number of day buttons shown per window.
const DefaultPageSize = 5

// TotalPages returns the number of fixed-size windows over keys,
// which is 0 only for an empty list.
func TotalPages(keys []int, size int) int {
	if len(keys) == 0 || size <= 0 {
		return 0
	}
	return (len(keys) + size - 1) / size
}

// ClampPage clips a requested page index into the valid range for keys.
// Out-of-range indexes come from stale tokens after data changed and are
// silently pulled back rather than rejected.
func ClampPage(keys []int, page, size int) int {
	total := TotalPages(keys, size)
	if total == 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= total {
		return total - 1
	}
	return page
}

// Page returns the window of keys at the given page index, clipped to
// bounds. A page past the end yields an empty window; callers that want
// the stale-token recovery behavior clamp first with ClampPage.
func Page(keys []int, page, size int) []int {
	if len(keys) == 0 || size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(keys) {
		return nil
	}
	end := start + size
	if end > len(keys) {
		end = len(keys)
	}
	return keys[start:end]
}
