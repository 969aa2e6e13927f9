package service

import (
	"errors"
	"strings"

	"github.com/reflet/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound        = errors.New("gallery image not found")
	ErrGalleryImageMissing    = errors.New("gallery image is required")
	ErrGalleryCategoryInvalid = errors.New("gallery category is invalid")
)

const (
	GalleryCategoryAgriculture = "agriculture"
	GalleryCategoryCulture     = "culture"
	GalleryCategoryRestaurant  = "restaurant"
)

// GalleryCategories lists the accepted categories in display order.
var GalleryCategories = []string{GalleryCategoryAgriculture, GalleryCategoryCulture, GalleryCategoryRestaurant}

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryFilter describes filters for listing gallery images.
type GalleryFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []db.GalleryImage
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
	// Fallback is set when the table is empty and Items holds the built-in set.
	Fallback bool
}

// GalleryInput represents fields accepted when creating or updating a gallery image.
type GalleryInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category"`
	ImageWidth   int    `json:"image_width"`
	ImageHeight  int    `json:"image_height"`
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns gallery images matching the filter, newest first.
func (s *GalleryService) List(filter GalleryFilter) (GalleryListResult, error) {
	result := GalleryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 24),
	}

	query := s.db.Model(&db.GalleryImage{})
	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// ListPublic returns the public gallery. When nothing has been uploaded yet the
// built-in photo set is returned instead.
func (s *GalleryService) ListPublic(category string) (GalleryListResult, error) {
	var total int64
	if err := s.db.Model(&db.GalleryImage{}).Count(&total).Error; err != nil {
		return GalleryListResult{}, err
	}
	if total == 0 {
		items := DefaultGalleryImages(category)
		return GalleryListResult{Items: items, Total: int64(len(items)), TotalPages: 1, Page: 1, PerPage: len(items), Fallback: true}, nil
	}
	return s.List(GalleryFilter{Category: category, Page: 1, PerPage: 200})
}

// Get fetches a gallery image by id.
func (s *GalleryService) Get(id uint) (*db.GalleryImage, error) {
	var item db.GalleryImage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new gallery image.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	item := db.GalleryImage{}
	applyGalleryInput(&item, input)

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing gallery image.
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyGalleryInput(item, input)

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a gallery image.
func (s *GalleryService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func applyGalleryInput(item *db.GalleryImage, input GalleryInput) {
	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.ThumbnailURL = strings.TrimSpace(input.ThumbnailURL)
	item.Category = normalizeGalleryCategory(input.Category)
	item.ImageWidth = input.ImageWidth
	item.ImageHeight = input.ImageHeight
}

func validateGalleryInput(input GalleryInput) error {
	if strings.TrimSpace(input.ImageURL) == "" {
		return ErrGalleryImageMissing
	}
	category := normalizeGalleryCategory(input.Category)
	for _, known := range GalleryCategories {
		if category == known {
			return nil
		}
	}
	return ErrGalleryCategoryInvalid
}

func normalizeGalleryCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return GalleryCategoryAgriculture
	}
	return category
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
