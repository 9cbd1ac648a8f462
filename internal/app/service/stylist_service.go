package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

var ErrEmptyMessage = errors.New("message is required")

const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

var chatPricePattern = regexp.MustCompile(`(?:less than|under|below)\s*(\d+)`)

// ChatReply is the stylist's answer plus the search it ran on the shopper's behalf.
type ChatReply struct {
	Reply   string
	Query   string
	Filters search.Filters
	Results *SearchResult
}

type OutfitItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type Outfit struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Items       []OutfitItem `json:"items"`
	TotalPrice  float64      `json:"total_price"`
	Confidence  int          `json:"confidence"`
}

type StylistService interface {
	Chat(ctx context.Context, message, language string, current search.Filters, page, limit int) (*ChatReply, error)
	Outfits(query string) []Outfit
}

type stylistService struct {
	searchService SearchService
}

func NewStylistService(searchService SearchService) StylistService {
	return &stylistService{searchService: searchService}
}

func (s *stylistService) Chat(ctx context.Context, message, language string, current search.Filters, page, limit int) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if language != LanguageHindi {
		language = LanguageEnglish
	}

	reply := interpret(message, language, current)
	reply.Results = s.searchService.Search(ctx, SearchRequest{
		Query:   reply.Query,
		Page:    page,
		Limit:   limit,
		Filters: reply.Filters,
	})

	logger.Info("Stylist chat handled", map[string]interface{}{
		"language": language,
		"query":    reply.Query,
		"total":    reply.Results.Total,
	})
	return reply, nil
}

// interpret maps a chat message to a search request and reply text. Rules
// are checked in order and the first match wins.
func interpret(message, language string, current search.Filters) *ChatReply {
	lower := strings.ToLower(message)
	hindi := language == LanguageHindi
	pick := func(en, hi string) string {
		if hindi {
			return hi
		}
		return en
	}

	switch {
	case strings.Contains(lower, "women top"):
		filters := current
		filters.Category = "Women"
		return &ChatReply{
			Query:   "women tops kurti blouse shirt",
			Filters: filters,
			Reply: pick(
				"Absolutely! I've got some amazing women's tops for you. Would you like to see anything else?",
				"बिल्कुल! महिलाओं के बेहतरीन टॉप्स आपके लिए लेकर आया हूं। कुछ और देखना चाहेंगे?",
			),
		}

	case strings.Contains(lower, "price less than") || strings.Contains(lower, "under") || strings.Contains(lower, "below"):
		if m := chatPricePattern.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				max := float64(n)
				filters := current
				filters.PriceRange = &search.PriceRange{Max: &max}
				return &ChatReply{
					Query:   fmt.Sprintf("products under %d", n),
					Filters: filters,
					Reply: pick(
						fmt.Sprintf("Great choice! I've found the best deals under ₹%d for you. Excellent quality at amazing prices!", n),
						fmt.Sprintf("वाह! ₹%d के अंदर के बेस्ट डील्स लेकर आया हूं। बहुत अच्छी क्वालिटी मिलेगी!", n),
					),
				}
			}
		}
		return defaultReply(message, current, pick)

	case strings.Contains(lower, "party"):
		return &ChatReply{
			Query:   "party festive wedding occasion dress lehenga saree",
			Filters: search.Filters{},
			Reply: pick(
				"Perfect! I've brought you a stunning party collection. You'll look absolutely gorgeous!",
				"परफेक्ट! पार्टी के लिए शानदार कलेक्शन लेकर आया हूं। आप बिल्कुल स्टनिंग लगेंगी!",
			),
		}

	case strings.Contains(lower, "reset") || strings.Contains(lower, "clear") || strings.Contains(lower, "show all"):
		return &ChatReply{
			Query:   "all products",
			Filters: search.Filters{},
			Reply: pick(
				"Of course! Showing all our products. Let me know if you need something specific!",
				"जी हां! सभी उत्पाद दिखा रहा हूं। कुछ खास चाहिए तो बताइए!",
			),
		}
	}

	return defaultReply(message, current, pick)
}

func defaultReply(message string, current search.Filters, pick func(en, hi string) string) *ChatReply {
	return &ChatReply{
		Query:   message,
		Filters: current,
		Reply: pick(
			fmt.Sprintf("Absolutely! I've got the best collection of %q for you. Would you like to explore more options?", message),
			fmt.Sprintf("जी हां! %q के लिए बेस्ट कलेक्शन लेकर आया हूं। कुछ और भी देखना चाहेंगे?", message),
		),
	}
}

var cannedOutfits = []Outfit{
	{
		ID:          1,
		Title:       "Casual Weekend Look",
		Description: "Perfect for a relaxed day out",
		Image:       "https://images.unsplash.com/photo-1564557287817-3785e38ec1f5?w=300&h=400&fit=crop",
		Items: []OutfitItem{
			{Name: "Red Striped Cotton Shirt", Price: 899, Image: "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=150&h=150&fit=crop"},
			{Name: "Classic Blue Denim Jeans", Price: 1299, Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=150&h=150&fit=crop"},
		},
		Confidence: 95,
	},
	{
		ID:          2,
		Title:       "Smart Casual Style",
		Description: "Great for casual meetings or dates",
		Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop",
		Items: []OutfitItem{
			{Name: "Red Checked Formal Shirt", Price: 1199, Image: "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=150&h=150&fit=crop"},
			{Name: "Slim Fit Blue Jeans", Price: 1599, Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=150&h=150&fit=crop"},
		},
		Confidence: 88,
	},
	{
		ID:          3,
		Title:       "Trendy Urban Look",
		Description: "Stay stylish in the city",
		Image:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=400&fit=crop",
		Items: []OutfitItem{
			{Name: "Red Striped Polo Shirt", Price: 799, Image: "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=150&h=150&fit=crop"},
			{Name: "Distressed Blue Jeans", Price: 1899, Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=150&h=150&fit=crop"},
		},
		Confidence: 82,
	},
}

// Outfits returns the fixed outfit combinations. The query is only logged.
func (s *stylistService) Outfits(query string) []Outfit {
	logger.Debug("Serving outfit combinations", map[string]interface{}{
		"query": query,
	})

	outfits := make([]Outfit, len(cannedOutfits))
	for i, o := range cannedOutfits {
		o.Items = append([]OutfitItem(nil), o.Items...)
		o.TotalPrice = 0
		for _, item := range o.Items {
			o.TotalPrice += item.Price
		}
		outfits[i] = o
	}
	return outfits
}
