package db

import "gorm.io/gorm"

// Product is an item of the boutique. Price is stored in euro cents.
type Product struct {
	gorm.Model
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	PriceCents  int64
	ImageURL    string
	Category    string `gorm:"size:60"`
	InStock     bool
}
