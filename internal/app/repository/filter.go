package repository

import (
	"regexp"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// tagContainsClause matches when any decoded tag element contains the bound
// pattern. Tags live in a JSON text column, so matching the raw text would
// make brackets, quotes and commas searchable.
func tagContainsClause(query *gorm.DB) string {
	if query.Dialector.Name() == "postgres" {
		return `EXISTS (SELECT 1 FROM json_array_elements_text(tags::json) AS tag(value) WHERE LOWER(tag.value) LIKE ? ESCAPE '\')`
	}
	return `EXISTS (SELECT 1 FROM json_each(tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`
}

// applyPredicate narrows a products query to rows matching p.
func applyPredicate(query *gorm.DB, p search.Predicate) *gorm.DB {
	tagClause := tagContainsClause(query)
	if p.Category != "" {
		query = query.Where(`LOWER(category) LIKE ? ESCAPE '\'`, containsPattern(p.Category))
	}
	if p.Subcategory != "" {
		query = query.Where(`LOWER(subcategory) LIKE ? ESCAPE '\'`, containsPattern(p.Subcategory))
	}
	for _, term := range p.Terms {
		like := containsPattern(term)
		query = query.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(subcategory) LIKE ? ESCAPE '\' OR `+tagClause+`)`,
			like, like, like, like,
		)
	}
	for _, tag := range p.Tags {
		query = query.Where(tagClause, containsPattern(tag))
	}
	if p.MinPrice != nil {
		query = query.Where("price >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		query = query.Where("price <= ?", *p.MaxPrice)
	}
	return query
}

var sqlSortColumns = map[string]string{
	"created_at": "created_at",
	"id":         "id",
	"price":      "price",
}

func applySort(query *gorm.DB, sort []search.SortField) *gorm.DB {
	for _, s := range sort {
		column, ok := sqlSortColumns[s.Field]
		if !ok {
			continue
		}
		if s.Descending {
			query = query.Order(column + " DESC")
		} else {
			query = query.Order(column + " ASC")
		}
	}
	return query
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// PredicateToBSON translates p into a Mongo filter document.
func PredicateToBSON(p search.Predicate) bson.M {
	filter := bson.M{}
	var and bson.A

	if p.Category != "" {
		filter["category"] = containsRegex(p.Category)
	}
	if p.Subcategory != "" {
		filter["subcategory"] = containsRegex(p.Subcategory)
	}
	for _, term := range p.Terms {
		re := containsRegex(term)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"subcategory": re},
			bson.M{"tags": re},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	if len(p.Tags) > 0 {
		all := make(bson.A, len(p.Tags))
		for i, tag := range p.Tags {
			all[i] = containsRegex(tag)
		}
		filter["tags"] = bson.M{"$all": all}
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

var bsonSortFields = map[string]string{
	"created_at": "created_at",
	"id":         "_id",
	"price":      "price",
}

// SortToBSON translates sort fields into a Mongo sort document.
func SortToBSON(sort []search.SortField) bson.D {
	doc := bson.D{}
	for _, s := range sort {
		field, ok := bsonSortFields[s.Field]
		if !ok {
			continue
		}
		dir := 1
		if s.Descending {
			dir = -1
		}
		doc = append(doc, bson.E{Key: field, Value: dir})
	}
	return doc
}
