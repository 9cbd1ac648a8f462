package search

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is the resolved paging window for a result set.
type Page struct {
	Page  int
	Limit int
	Skip  int
	Pages int
}

// NormalizePage maps a requested page number to a valid one. Zero means the
// value was absent or not a number.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit]. Zero means
// absent and falls back to DefaultLimit; negatives clamp to 1.
func NormalizeLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Paginate resolves page, limit and skip for the request and the page count
// for total matches. There is always at least one page.
func Paginate(page, limit int, total int64) Page {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}

	return Page{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
		Pages: pages,
	}
}

// ParseInt reads a client-supplied paging value leniently. JSON numbers are
// truncated toward zero; strings yield their leading integer ("3abc" is 3).
// Anything else, including nil, yields 0.
func ParseInt(v interface{}) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		if n > math.MaxInt32 {
			return math.MaxInt32
		}
		if n < math.MinInt32 {
			return math.MinInt32
		}
		return int(n)
	case json.Number:
		return ParseInt(string(n))
	case string:
		return leadingInt(n)
	}
	return 0
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		// out of range values saturate
		return int(n)
	}
	return int(n)
}
