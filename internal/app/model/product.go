package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Title         string    `gorm:"not null" bson:"title" json:"title"`
	Description   string    `gorm:"type:text" bson:"description" json:"description"`
	Category      string    `gorm:"type:varchar(100);index" bson:"category" json:"category"`
	Subcategory   string    `gorm:"type:varchar(100)" bson:"subcategory" json:"subcategory"`
	Tags          Tags      `gorm:"type:text" bson:"tags" json:"tags"`
	Price         float64   `gorm:"not null;index" bson:"price" json:"price"`
	OriginalPrice *float64  `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Discount      *string   `gorm:"type:varchar(50)" bson:"discount,omitempty" json:"discount,omitempty"`
	Rating        *float64  `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewsCount  *int      `bson:"reviews_count,omitempty" json:"reviews_count,omitempty"`
	ProductURL    string    `gorm:"uniqueIndex;not null" bson:"product_url" json:"product_url"` // canonical URL
	ImageURL      string    `bson:"image_url" json:"image_url"`
	CreatedAt     time.Time `gorm:"index" bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductSummary is the slice of a product shown next to a cart line.
type ProductSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
	}
}
