package db

import "time"

// SiteContent stores one admin override of a compiled content default.
// The (page, section, content_key) triple is unique.
type SiteContent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Page         string    `gorm:"size:64;not null;uniqueIndex:idx_site_content_triple,priority:1;index" json:"page"`
	Section      string    `gorm:"size:64;not null;uniqueIndex:idx_site_content_triple,priority:2" json:"section"`
	ContentKey   string    `gorm:"size:100;not null;uniqueIndex:idx_site_content_triple,priority:3" json:"content_key"`
	ContentValue *string   `gorm:"type:text" json:"content_value"`
	ContentType  string    `gorm:"size:20;not null;default:text" json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the historical table name.
func (SiteContent) TableName() string {
	return "site_content"
}

// Value returns the stored value, treating NULL as empty.
func (s SiteContent) Value() string {
	if s.ContentValue == nil {
		return ""
	}
	return *s.ContentValue
}
