package models

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          string  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name        string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug        string  `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	// Inventory is units on hand; decremented by the reconciler on payment
	// completion and guarded against going negative.
	Inventory  int                          `gorm:"column:inventory;not null;default:0" json:"inventory"`
	Featured   bool                         `gorm:"column:featured;not null;default:false" json:"featured"`
	Images     datatypes.JSONType[[]string] `gorm:"column:images;type:jsonb;default:'[]'" json:"images"`
	CategoryID *string                      `gorm:"column:category_id;type:uuid;index" json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Category struct {
	ID        string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
