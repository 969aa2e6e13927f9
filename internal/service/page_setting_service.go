package service

import (
	"errors"
	"strings"

	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
	"gorm.io/gorm"
)

var ErrPageSettingNotFound = errors.New("page setting not found")

// PageSettingService controls which pages appear in the public navigation.
type PageSettingService struct {
	db *gorm.DB
}

// PageSettingInput updates the editable fields of a page setting.
type PageSettingInput struct {
	NavLabel  string `json:"nav_label"`
	SortOrder *int   `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
}

// NewPageSettingService creates a PageSettingService.
func NewPageSettingService(gdb *gorm.DB) *PageSettingService {
	return &PageSettingService{db: gdb}
}

// Seed creates a visible setting for every schema page that has none yet.
// Existing rows are left untouched.
func (s *PageSettingService) Seed(schema *content.Schema) error {
	for i, page := range schema.Pages() {
		setting := db.PageSetting{
			PageKey:   page.Key,
			PageLabel: page.Label,
			NavLabel:  page.Label,
			Href:      page.Path,
			IsVisible: true,
			SortOrder: i + 1,
		}
		if err := s.db.Where(db.PageSetting{PageKey: page.Key}).FirstOrCreate(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns every setting by sort order.
func (s *PageSettingService) ListAll() ([]db.PageSetting, error) {
	var items []db.PageSetting
	if err := s.db.Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Navigation returns the visible pages by sort order.
func (s *PageSettingService) Navigation() ([]db.PageSetting, error) {
	var items []db.PageSetting
	if err := s.db.Where("is_visible = ?", true).Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update changes the editable fields of a setting.
func (s *PageSettingService) Update(id uint, input PageSettingInput) (*db.PageSetting, error) {
	var setting db.PageSetting
	if err := s.db.First(&setting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageSettingNotFound
		}
		return nil, err
	}

	if label := strings.TrimSpace(input.NavLabel); label != "" {
		setting.NavLabel = label
	}
	if input.SortOrder != nil {
		setting.SortOrder = *input.SortOrder
	}
	if input.IsVisible != nil {
		setting.IsVisible = *input.IsVisible
	}

	if err := s.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetVisibility shows or hides a page in the navigation.
func (s *PageSettingService) SetVisibility(id uint, visible bool) (*db.PageSetting, error) {
	return s.Update(id, PageSettingInput{IsVisible: &visible})
}
