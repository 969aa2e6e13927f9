package service

import (
	"errors"
	"math"
	"strings"

	"github.com/reflet/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrProductNameMissing     = errors.New("product name is required")
	ErrProductPriceInvalid    = errors.New("product price is invalid")
	ErrProductCategoryInvalid = errors.New("product category is invalid")
)

// ProductCategories lists the boutique categories in display order.
var ProductCategories = []string{"artisanat", "bijoux", "textiles", "bons-cadeaux"}

// ProductService handles boutique products.
type ProductService struct {
	db *gorm.DB
}

// ProductInput is accepted when creating or updating a product. Price is in euros.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	InStock     *bool   `json:"in_stock"`
}

// NewProductService creates a ProductService.
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{db: gdb}
}

// ListAll returns every product, newest first.
func (s *ProductService) ListAll() ([]db.Product, error) {
	var items []db.Product
	if err := s.db.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListInStock returns products shown in the boutique, optionally filtered by category.
func (s *ProductService) ListInStock(category string) ([]db.Product, error) {
	query := s.db.Where("in_stock = ?", true)
	if category = strings.TrimSpace(category); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	var items []db.Product
	if err := query.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a product by id.
func (s *ProductService) Get(id uint) (*db.Product, error) {
	var item db.Product
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a product. Products are in stock unless stated otherwise.
func (s *ProductService) Create(input ProductInput) (*db.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	item := db.Product{InStock: true}
	applyProductInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies a product.
func (s *ProductService) Update(id uint, input ProductInput) (*db.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyProductInput(item, input)
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// PriceEuros formats cents for display.
func PriceEuros(cents int64) float64 {
	return float64(cents) / 100
}

func applyProductInput(item *db.Product, input ProductInput) {
	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.PriceCents = int64(math.Round(input.Price * 100))
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.Category = normalizeProductCategory(input.Category)
	if input.InStock != nil {
		item.InStock = *input.InStock
	}
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameMissing
	}
	if input.Price < 0 || math.IsNaN(input.Price) || math.IsInf(input.Price, 0) {
		return ErrProductPriceInvalid
	}
	category := normalizeProductCategory(input.Category)
	for _, known := range ProductCategories {
		if known == category {
			return nil
		}
	}
	return ErrProductCategoryInvalid
}

func normalizeProductCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return ProductCategories[0]
	}
	return category
}
