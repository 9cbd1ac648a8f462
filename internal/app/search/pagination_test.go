package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int64
		expected Page
	}{
		{"defaults", 0, 0, 0, Page{Page: 1, Limit: 20, Skip: 0, Pages: 1}},
		{"second page", 2, 20, 45, Page{Page: 2, Limit: 20, Skip: 20, Pages: 3}},
		{"exact multiple", 1, 10, 30, Page{Page: 1, Limit: 10, Skip: 0, Pages: 3}},
		{"negative page", -3, 10, 5, Page{Page: 1, Limit: 10, Skip: 0, Pages: 1}},
		{"negative limit", 1, -5, 3, Page{Page: 1, Limit: 1, Skip: 0, Pages: 3}},
		{"limit capped", 2, 500, 250, Page{Page: 2, Limit: 100, Skip: 100, Pages: 3}},
		{"page beyond last", 9, 20, 45, Page{Page: 9, Limit: 20, Skip: 160, Pages: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Paginate(tt.page, tt.limit, tt.total))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int
	}{
		{"nil", nil, 0},
		{"json float", float64(3), 3},
		{"fraction truncated", 2.9, 2},
		{"numeric string", "4", 4},
		{"leading digits", "7abc", 7},
		{"negative string", "-2", -2},
		{"not a number", "abc", 0},
		{"json number", json.Number("12"), 12},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInt(tt.input))
		})
	}
}
