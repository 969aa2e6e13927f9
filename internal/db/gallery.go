package db

import "gorm.io/gorm"

// GalleryImage is a photo shown on the public gallery page.
type GalleryImage struct {
	gorm.Model
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string
	Category     string `gorm:"size:40;index"`
	ImageWidth   int
	ImageHeight  int
}
