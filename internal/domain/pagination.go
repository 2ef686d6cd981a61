package domain

// Pagination tracks where the feed is in a filtered result set.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalJobs  int `json:"totalJobs"`
}

// SinglePage is the pagination of a random sample of n jobs.
func SinglePage(n int) Pagination {
	return Pagination{Page: 1, TotalPages: 1, TotalJobs: n}
}

func (p Pagination) HasPages() bool { return p.TotalPages > 1 }

func (p Pagination) Next() int { return clamp(p.Page+1, 1, p.TotalPages) }

func (p Pagination) Prev() int { return clamp(p.Page-1, 1, p.TotalPages) }

// Window returns up to size page numbers around the current page, the way
// the pager shows them: the first pages while near the start, otherwise
// centred on the current page.
func (p Pagination) Window(size int) []int {
	n := min(size, p.TotalPages)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		num := i + 1
		if p.Page > 3 {
			num = p.Page + i - 2
		}
		if num > p.TotalPages {
			break
		}
		out = append(out, num)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
