package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

var ErrInvalidSpreadsheet = errors.New("invalid product spreadsheet")

const productSheetName = "Products"

// column order of product spreadsheets, shared by import and export
var productSheetHeader = []interface{}{
	"Title", "Description", "Category", "Subcategory", "Tags", "Price",
	"Original Price", "Discount", "Rating", "Review Count", "Product URL", "Image URL",
}

const (
	colTitle = iota
	colDescription
	colCategory
	colSubcategory
	colTags
	colPrice
	colOriginalPrice
	colDiscount
	colRating
	colReviewCount
	colProductURL
	colImageURL
)

type ImportResult struct {
	Total      int `json:"total"`
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

func (s *productService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no sheets found", ErrInvalidSpreadsheet)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidSpreadsheet)
	}

	result := &ImportResult{Total: len(rows) - 1}
	var products []*model.Product
	seen := make(map[string]bool)

	// first row is the header
	for _, row := range rows[1:] {
		product, ok := parseProductRow(row)
		if !ok {
			result.Skipped++
			continue
		}
		if seen[product.ProductURL] {
			result.Duplicates++
			continue
		}
		seen[product.ProductURL] = true
		products = append(products, product)
	}

	urls := make([]string, len(products))
	for i, p := range products {
		urls[i] = p.ProductURL
	}
	existing, err := s.productRepo.ExistingURLs(ctx, urls)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		if existing[product.ProductURL] {
			result.Duplicates++
			continue
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				result.Duplicates++
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	logger.Info("Products imported", map[string]interface{}{
		"total":      result.Total,
		"imported":   result.Imported,
		"skipped":    result.Skipped,
		"duplicates": result.Duplicates,
	})
	return result, nil
}

func (s *productService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), productSheetName); err != nil {
		return err
	}
	header := productSheetHeader
	if err := f.SetSheetRow(productSheetName, "A1", &header); err != nil {
		return err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := productRow(&p)
		if err := f.SetSheetRow(productSheetName, cell, &row); err != nil {
			return err
		}
	}

	logger.Info("Products exported", map[string]interface{}{
		"count": len(products),
	})
	_, err = f.WriteTo(w)
	return err
}

func productRow(p *model.Product) []interface{} {
	row := make([]interface{}, len(productSheetHeader))
	row[colTitle] = p.Title
	row[colDescription] = p.Description
	row[colCategory] = p.Category
	row[colSubcategory] = p.Subcategory
	row[colTags] = strings.Join(p.Tags, ", ")
	row[colPrice] = p.Price
	row[colOriginalPrice] = ""
	if p.OriginalPrice != nil {
		row[colOriginalPrice] = *p.OriginalPrice
	}
	row[colDiscount] = ""
	if p.Discount != nil {
		row[colDiscount] = *p.Discount
	}
	row[colRating] = ""
	if p.Rating != nil {
		row[colRating] = *p.Rating
	}
	row[colReviewCount] = ""
	if p.ReviewsCount != nil {
		row[colReviewCount] = *p.ReviewsCount
	}
	row[colProductURL] = p.ProductURL
	row[colImageURL] = p.ImageURL
	return row
}

// parseProductRow maps one spreadsheet row to a product. Rows without a
// title, product URL or positive price are rejected.
func parseProductRow(row []string) (*model.Product, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	title := cell(colTitle)
	productURL := cell(colProductURL)
	price, ok := parsePrice(cell(colPrice))
	if title == "" || productURL == "" || !ok || price <= 0 {
		return nil, false
	}

	product := &model.Product{
		Title:       title,
		Description: cell(colDescription),
		Category:    cell(colCategory),
		Subcategory: cell(colSubcategory),
		Tags:        splitTags(cell(colTags)),
		Price:       price,
		ProductURL:  productURL,
		ImageURL:    cell(colImageURL),
	}
	if v, ok := parsePrice(cell(colOriginalPrice)); ok {
		product.OriginalPrice = &v
	}
	if v := cell(colDiscount); v != "" {
		product.Discount = &v
	}
	if v, err := strconv.ParseFloat(cell(colRating), 64); err == nil {
		product.Rating = &v
	}
	if v, err := strconv.Atoi(strings.ReplaceAll(cell(colReviewCount), ",", "")); err == nil {
		product.ReviewsCount = &v
	}
	return product, true
}

var priceCleaner = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", " ", "")

func parsePrice(s string) (float64, bool) {
	s = priceCleaner.Replace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitTags(s string) model.Tags {
	tags := model.Tags{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
