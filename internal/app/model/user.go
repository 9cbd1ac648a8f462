package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
}

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Name         string    `gorm:"not null" bson:"name" json:"name"`
	Phone        string    `gorm:"type:varchar(20);uniqueIndex;not null" bson:"phone" json:"phone"` // login handle, immutable
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" bson:"password_hash" json:"-"`
	Address      Address   `gorm:"embedded;embeddedPrefix:address_" bson:"address" json:"address"`
	IsAdmin      bool      `gorm:"not null;default:false" bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
