package diary

import "testing"

func keys(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		n, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := TotalPages(keys(c.n), c.size); got != c.want {
			t.Errorf("TotalPages(%d keys, %d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}

func TestPage_Windows(t *testing.T) {
	ks := keys(12)

	first := Page(ks, 0, 5)
	if len(first) != 5 || first[0] != 1 || first[4] != 5 {
		t.Errorf("page 0 = %v", first)
	}

	last := Page(ks, TotalPages(ks, 5)-1, 5)
	if len(last) != 2 || last[0] != 11 || last[1] != 12 {
		t.Errorf("last page = %v", last)
	}

	// One past the end is empty, not an error.
	if got := Page(ks, TotalPages(ks, 5), 5); len(got) != 0 {
		t.Errorf("page past end = %v, want empty", got)
	}
}

func TestPage_Empty(t *testing.T) {
	if got := Page(nil, 0, 5); len(got) != 0 {
		t.Errorf("Page(nil) = %v", got)
	}
}

func TestClampPage(t *testing.T) {
	ks := keys(12) // 3 pages
	cases := []struct {
		page, want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{3, 2},
		{99, 2},
	}
	for _, c := range cases {
		if got := ClampPage(ks, c.page, 5); got != c.want {
			t.Errorf("ClampPage(%d) = %d, want %d", c.page, got, c.want)
		}
	}
	if got := ClampPage(nil, 7, 5); got != 0 {
		t.Errorf("ClampPage on empty keys = %d, want 0", got)
	}
}
