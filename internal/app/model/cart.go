package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is the single per-user cart. TotalItems and TotalPrice are derived
// from Items and rewritten on every mutation.
type Cart struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	UserID     string     `gorm:"type:varchar(36);uniqueIndex;not null" bson:"user_id" json:"user_id"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" bson:"items" json:"items"`
	TotalItems int        `gorm:"not null;default:0" bson:"total_items" json:"total_items"`
	TotalPrice float64    `gorm:"not null;default:0" bson:"total_price" json:"total_price"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem is one line of a cart. Price is the unit price captured when the
// line was created. Size and Color are nil when the variant was not chosen.
type CartItem struct {
	ID        uint            `gorm:"primarykey" bson:"-" json:"-"`
	CartID    string          `gorm:"type:varchar(36);not null;index" bson:"-" json:"-"`
	Position  int             `gorm:"not null;default:0" bson:"-" json:"-"`
	ProductID string          `gorm:"type:varchar(36);not null;index" bson:"product_id" json:"product_id"`
	Quantity  int             `gorm:"not null;default:1" bson:"quantity" json:"quantity"`
	Price     float64         `gorm:"not null" bson:"price" json:"price"`
	Size      *string         `gorm:"type:varchar(50)" bson:"size" json:"size"`
	Color     *string         `gorm:"type:varchar(50)" bson:"color" json:"color"`
	Product   *ProductSummary `gorm:"-" bson:"-" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
