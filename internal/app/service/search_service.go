package service

import (
	"context"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DegradedSearchMessage = "Database temporarily unavailable. Please try again later."

var searchDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meesho",
	Name:      "search_degraded_total",
	Help:      "Search requests answered with an empty page because the product store failed.",
})

type SearchRequest struct {
	Query   string
	Page    int
	Limit   int
	Filters search.Filters
}

type SearchResult struct {
	Query    string
	Products []model.Product
	Page     int
	Pages    int
	Total    int64
	Limit    int
	Degraded bool
	Message  string
}

type SearchService interface {
	// Search never fails: storage errors produce a degraded empty page.
	Search(ctx context.Context, req SearchRequest) *SearchResult
}

type searchService struct {
	productRepo repository.ProductRepository
}

func NewSearchService(productRepo repository.ProductRepository) SearchService {
	return &searchService{productRepo: productRepo}
}

func (s *searchService) Search(ctx context.Context, req SearchRequest) *SearchResult {
	q := search.Build(req.Query, req.Filters)

	logger.Debug("Executing product search", map[string]interface{}{
		"query":    req.Query,
		"category": q.Predicate.Category,
		"terms":    q.Predicate.Terms,
		"page":     req.Page,
		"limit":    req.Limit,
	})

	total, err := s.productRepo.Count(ctx, q.Predicate)
	if err != nil {
		return s.degraded(req, err)
	}

	p := search.Paginate(req.Page, req.Limit, total)
	products, err := s.productRepo.Find(ctx, q.Predicate, q.Sort, p.Skip, p.Limit)
	if err != nil {
		return s.degraded(req, err)
	}

	return &SearchResult{
		Query:    req.Query,
		Products: products,
		Page:     p.Page,
		Pages:    p.Pages,
		Total:    total,
		Limit:    p.Limit,
	}
}

func (s *searchService) degraded(req SearchRequest, err error) *SearchResult {
	logger.Error("Product search failed, returning empty results", err, map[string]interface{}{
		"query": req.Query,
	})
	searchDegradedTotal.Inc()

	return &SearchResult{
		Query:    req.Query,
		Products: []model.Product{},
		Page:     1,
		Pages:    1,
		Total:    0,
		Limit:    search.NormalizeLimit(req.Limit),
		Degraded: true,
		Message:  DegradedSearchMessage,
	}
}
