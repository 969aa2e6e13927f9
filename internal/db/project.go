package db

import "gorm.io/gorm"

// Project is a news card on the projects page. Description is markdown.
type Project struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	DateLabel   string `gorm:"size:60"`
	Category    string `gorm:"size:60"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"size:40"`
	Color       string `gorm:"size:20"`
	ImageURL    string
	SortOrder   int `gorm:"default:0;index"`
	IsActive    bool
}
