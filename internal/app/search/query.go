package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/model"
)

var underPricePattern = regexp.MustCompile(`(?i)under\s+(\d+)`)

// categoryPhrases is scanned in order; the first phrase contained in the
// lower-cased query becomes the category constraint.
var categoryPhrases = []string{
	"women ethnic",
	"women western",
	"men",
	"kids",
	"home & kitchen",
	"beauty & health",
	"jewellery & accessories",
	"bags & footwear",
	"electronics",
}

type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Filters are the structured constraints a client can send next to the
// free-text query.
type Filters struct {
	Category    string
	Subcategory string
	Tags        []string
	PriceRange  *PriceRange
}

// Predicate is a conjunction of constraints over products. Every string
// constraint is a case-insensitive literal substring match. Zero values mean
// "no constraint".
type Predicate struct {
	Category    string
	Subcategory string
	// Terms must each appear in title, description, subcategory or a tag.
	Terms []string
	// Tags must each appear in at least one product tag.
	Tags     []string
	MinPrice *float64
	MaxPrice *float64
}

type SortField struct {
	Field      string
	Descending bool
}

// DefaultSort orders newest first with id as the tie-breaker so paging is stable.
var DefaultSort = []SortField{
	{Field: "created_at", Descending: true},
	{Field: "id", Descending: true},
}

type Query struct {
	Predicate Predicate
	Sort      []SortField
}

// Build turns a free-text query and structured filters into a predicate and
// sort order. It never fails: unusable input simply adds no constraint.
func Build(text string, filters Filters) Query {
	var p Predicate

	text = strings.ToLower(strings.TrimSpace(text))
	if text != "" {
		residual := text
		if loc := underPricePattern.FindStringSubmatchIndex(text); loc != nil {
			if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil {
				max := float64(n)
				p.MaxPrice = &max
			}
			residual = text[:loc[0]] + " " + text[loc[1]:]
		}

		for _, phrase := range categoryPhrases {
			if strings.Contains(text, phrase) {
				p.Category = phrase
				break
			}
		}

		p.Terms = strings.Fields(residual)
	}

	if c := strings.TrimSpace(filters.Category); c != "" {
		p.Category = strings.ToLower(c)
	}
	if s := strings.TrimSpace(filters.Subcategory); s != "" {
		p.Subcategory = strings.ToLower(s)
	}
	for _, tag := range filters.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			p.Tags = append(p.Tags, t)
		}
	}
	if r := filters.PriceRange; r != nil {
		if r.Min != nil && *r.Min > 0 {
			min := *r.Min
			p.MinPrice = &min
		}
		if r.Max != nil && *r.Max > 0 {
			max := *r.Max
			p.MaxPrice = &max
		}
	}

	return Query{Predicate: p, Sort: DefaultSort}
}

// IsEmpty reports whether the predicate matches every product.
func (p Predicate) IsEmpty() bool {
	return p.Category == "" && p.Subcategory == "" && len(p.Terms) == 0 &&
		len(p.Tags) == 0 && p.MinPrice == nil && p.MaxPrice == nil
}

// Matches evaluates the predicate against a single product with the same
// semantics the stores apply.
func (p Predicate) Matches(product *model.Product) bool {
	if p.Category != "" && !containsFold(product.Category, p.Category) {
		return false
	}
	if p.Subcategory != "" && !containsFold(product.Subcategory, p.Subcategory) {
		return false
	}
	for _, term := range p.Terms {
		if !containsFold(product.Title, term) &&
			!containsFold(product.Description, term) &&
			!containsFold(product.Subcategory, term) &&
			!anyTagContains(product.Tags, term) {
			return false
		}
	}
	for _, tag := range p.Tags {
		if !anyTagContains(product.Tags, tag) {
			return false
		}
	}
	if p.MinPrice != nil && product.Price < *p.MinPrice {
		return false
	}
	if p.MaxPrice != nil && product.Price > *p.MaxPrice {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyTagContains(tags []string, sub string) bool {
	for _, tag := range tags {
		if containsFold(tag, sub) {
			return true
		}
	}
	return false
}
