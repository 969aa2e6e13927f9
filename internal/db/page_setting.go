package db

import "time"

// PageSetting controls whether a page appears in the public navigation.
type PageSetting struct {
	ID        uint   `gorm:"primaryKey"`
	PageKey   string `gorm:"size:64;uniqueIndex;not null"`
	PageLabel string `gorm:"size:100"`
	NavLabel  string `gorm:"size:100"`
	Href      string `gorm:"size:200"`
	IsVisible bool
	SortOrder int `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (PageSetting) TableName() string {
	return "page_settings"
}
