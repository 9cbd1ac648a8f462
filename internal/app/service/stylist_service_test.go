package service

import (
	"context"
	"testing"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	current := search.Filters{Category: "Men", Tags: []string{"cotton"}}

	tests := []struct {
		name         string
		message      string
		language     string
		wantQuery    string
		wantCategory string
		wantMax      float64
		wantReply    string
	}{
		{
			name:         "women tops",
			message:      "Show me women tops",
			language:     LanguageEnglish,
			wantQuery:    "women tops kurti blouse shirt",
			wantCategory: "Women",
			wantReply:    "Absolutely! I've got some amazing women's tops",
		},
		{
			name:         "price limit",
			message:      "dresses under 500",
			language:     LanguageEnglish,
			wantQuery:    "products under 500",
			wantCategory: "Men",
			wantMax:      500,
			wantReply:    "under ₹500",
		},
		{
			name:         "price limit in hindi",
			message:      "price less than 300",
			language:     LanguageHindi,
			wantQuery:    "products under 300",
			wantCategory: "Men",
			wantMax:      300,
			wantReply:    "₹300 के अंदर",
		},
		{
			name:         "price word without number",
			message:      "something below budget",
			language:     LanguageEnglish,
			wantQuery:    "something below budget",
			wantCategory: "Men",
			wantReply:    "best collection of",
		},
		{
			name:      "party",
			message:   "Party wear please",
			language:  LanguageEnglish,
			wantQuery: "party festive wedding occasion dress lehenga saree",
			wantReply: "stunning party collection",
		},
		{
			name:      "reset",
			message:   "show all",
			language:  LanguageEnglish,
			wantQuery: "all products",
			wantReply: "Showing all our products",
		},
		{
			name:         "default keeps filters",
			message:      "red kurta",
			language:     LanguageEnglish,
			wantQuery:    "red kurta",
			wantCategory: "Men",
			wantReply:    `"red kurta"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := interpret(tt.message, tt.language, current)
			assert.Equal(t, tt.wantQuery, reply.Query)
			assert.Equal(t, tt.wantCategory, reply.Filters.Category)
			assert.Contains(t, reply.Reply, tt.wantReply)
			if tt.wantMax > 0 {
				require.NotNil(t, reply.Filters.PriceRange)
				require.NotNil(t, reply.Filters.PriceRange.Max)
				assert.Equal(t, tt.wantMax, *reply.Filters.PriceRange.Max)
				assert.Nil(t, reply.Filters.PriceRange.Min)
			}
		})
	}
}

func TestStylistService_Chat(t *testing.T) {
	searchService, productRepo := setupSearchServiceTest(t)
	stylistService := NewStylistService(searchService)
	ctx := context.Background()

	require.NoError(t, productRepo.Create(ctx, &model.Product{
		Title: "Party Lehenga", Category: "Women Ethnic", Tags: model.Tags{}, Price: 1500, ProductURL: "https://example.com/p/1",
	}))

	_, err := stylistService.Chat(ctx, "   ", LanguageEnglish, search.Filters{}, 1, 10)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	reply, err := stylistService.Chat(ctx, "lehenga", "fr", search.Filters{}, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, reply.Results)
	assert.Equal(t, int64(1), reply.Results.Total)
	assert.Equal(t, "Party Lehenga", reply.Results.Products[0].Title)
	assert.Contains(t, reply.Reply, "Absolutely!", "unknown languages answer in English")
}

func TestStylistService_Outfits(t *testing.T) {
	stylistService := NewStylistService(nil)

	outfits := stylistService.Outfits("red shirt")
	require.Len(t, outfits, 3)
	assert.Equal(t, 2198.0, outfits[0].TotalPrice)
	assert.Equal(t, 2798.0, outfits[1].TotalPrice)
	assert.Equal(t, 2698.0, outfits[2].TotalPrice)

	outfits[0].Items[0].Name = "changed"
	assert.Equal(t, "Red Striped Cotton Shirt", stylistService.Outfits("")[0].Items[0].Name)
}
