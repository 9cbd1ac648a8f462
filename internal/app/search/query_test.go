package search

import (
	"testing"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestBuild_EmptyInput(t *testing.T) {
	q := Build("", Filters{})

	assert.True(t, q.Predicate.IsEmpty())
	assert.Equal(t, DefaultSort, q.Sort)
}

func TestBuild_UnderPriceIsExtractedAndStripped(t *testing.T) {
	q := Build("sarees under 500", Filters{})

	require.NotNil(t, q.Predicate.MaxPrice)
	assert.Equal(t, 500.0, *q.Predicate.MaxPrice)
	assert.Nil(t, q.Predicate.MinPrice)
	assert.Equal(t, []string{"sarees"}, q.Predicate.Terms)
	assert.Empty(t, q.Predicate.Category)
}

func TestBuild_UnderPriceCaseInsensitive(t *testing.T) {
	q := Build("Kurti UNDER   799 cotton", Filters{})

	require.NotNil(t, q.Predicate.MaxPrice)
	assert.Equal(t, 799.0, *q.Predicate.MaxPrice)
	assert.Equal(t, []string{"kurti", "cotton"}, q.Predicate.Terms)
}

func TestBuild_OnlyFirstUnderIsUsed(t *testing.T) {
	q := Build("under 300 under 900", Filters{})

	require.NotNil(t, q.Predicate.MaxPrice)
	assert.Equal(t, 300.0, *q.Predicate.MaxPrice)
	assert.Equal(t, []string{"under", "900"}, q.Predicate.Terms)
}

func TestBuild_UnderWithoutNumberIsATerm(t *testing.T) {
	q := Build("under garments", Filters{})

	assert.Nil(t, q.Predicate.MaxPrice)
	assert.Equal(t, []string{"under", "garments"}, q.Predicate.Terms)
}

func TestBuild_CategoryInference(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"women ethnic", "Women Ethnic kurta", "women ethnic"},
		{"first phrase wins", "women western electronics", "women western"},
		{"men substring of women", "women tops", "men"},
		{"kids", "kids shoes", "kids"},
		{"ampersand phrase", "home & kitchen storage", "home & kitchen"},
		{"no category", "saree", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Build(tt.query, Filters{})
			assert.Equal(t, tt.expected, q.Predicate.Category)
		})
	}
}

func TestBuild_StructuredFilters(t *testing.T) {
	q := Build("men shirts under 1000", Filters{
		Category:    "Kids",
		Subcategory: "T-Shirts",
		Tags:        []string{"Cotton", " ", "summer"},
		PriceRange:  &PriceRange{Min: floatPtr(200)},
	})

	p := q.Predicate
	assert.Equal(t, "kids", p.Category)
	assert.Equal(t, "t-shirts", p.Subcategory)
	assert.Equal(t, []string{"cotton", "summer"}, p.Tags)
	require.NotNil(t, p.MinPrice)
	assert.Equal(t, 200.0, *p.MinPrice)
	require.NotNil(t, p.MaxPrice)
	assert.Equal(t, 1000.0, *p.MaxPrice, "under bound kept when no max supplied")
}

func TestBuild_PriceRangeMaxOverridesUnder(t *testing.T) {
	q := Build("sarees under 500", Filters{PriceRange: &PriceRange{Max: floatPtr(2000)}})

	require.NotNil(t, q.Predicate.MaxPrice)
	assert.Equal(t, 2000.0, *q.Predicate.MaxPrice)
}

func TestBuild_NonPositiveBoundsIgnored(t *testing.T) {
	q := Build("", Filters{PriceRange: &PriceRange{Min: floatPtr(0), Max: floatPtr(-5)}})

	assert.True(t, q.Predicate.IsEmpty())
}

func TestPredicate_Matches(t *testing.T) {
	saree := &model.Product{
		Title:       "Banarasi Silk Saree",
		Description: "Traditional festive wear",
		Category:    "Women Ethnic",
		Subcategory: "Sarees",
		Tags:        []string{"silk", "wedding"},
		Price:       450,
	}
	shirt := &model.Product{
		Title:       "Checked Shirt",
		Description: "Cotton casual shirt",
		Category:    "Men",
		Subcategory: "Shirts",
		Tags:        []string{"cotton"},
		Price:       650,
	}

	tests := []struct {
		name   string
		query  string
		filter Filters
		saree  bool
		shirt  bool
	}{
		{"empty matches all", "", Filters{}, true, true},
		{"sarees under 500", "sarees under 500", Filters{}, true, false},
		{"term in tag", "wedding", Filters{}, true, false},
		{"term in description", "casual", Filters{}, false, true},
		{"all terms required", "silk casual", Filters{}, false, false},
		{"category phrase is also a term", "men", Filters{}, false, false},
		{"category filter substring", "", Filters{Category: "men"}, true, true},
		{"tag filter", "", Filters{Tags: []string{"COT"}}, false, true},
		{"min price", "", Filters{PriceRange: &PriceRange{Min: floatPtr(500)}}, false, true},
		{"literal metacharacters", "s.*", Filters{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.query, tt.filter).Predicate
			assert.Equal(t, tt.saree, p.Matches(saree))
			assert.Equal(t, tt.shirt, p.Matches(shirt))
		})
	}
}
