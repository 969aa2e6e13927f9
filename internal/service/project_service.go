package service

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/reflet/internal/db"
	"github.com/reflet/internal/view"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectTitleMissing = errors.New("project title is required")
	ErrProjectIconInvalid  = errors.New("project icon is invalid")
	ErrProjectColorInvalid = errors.New("project color is invalid")
)

var (
	projectMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	projectSanitizer = bluemonday.UGCPolicy()
)

// ProjectService handles project cards.
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput is accepted when creating or updating a project.
type ProjectInput struct {
	Title       string `json:"title"`
	DateLabel   string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// ProjectCard is a project ready for the public page.
type ProjectCard struct {
	db.Project
	DescriptionHTML template.HTML
	IconSVG         template.HTML
	ColorClass      string
}

// NewProjectService creates a ProjectService.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// ListAll returns every project by sort order.
func (s *ProjectService) ListAll() ([]db.Project, error) {
	var items []db.Project
	if err := s.db.Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActive returns the public cards. With no project stored the built-in cards are used.
func (s *ProjectService) ListActive() ([]ProjectCard, error) {
	var total int64
	if err := s.db.Model(&db.Project{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []db.Project
	if total == 0 {
		items = DefaultProjects()
	} else if err := s.db.Where("is_active = ?", true).Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}

	cards := make([]ProjectCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, ProjectCard{
			Project:         item,
			DescriptionHTML: RenderProjectMarkdown(item.Description),
			IconSVG:         view.ProjectIconSVG(item.Icon),
			ColorClass:      view.ProjectColorClass(item.Color),
		})
	}
	return cards, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var item db.Project
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a project. New projects are active and appended to the order.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	item := db.Project{IsActive: true}
	applyProjectInput(&item, input)
	if item.SortOrder == 0 {
		order, err := s.nextSortOrder()
		if err != nil {
			return nil, err
		}
		item.SortOrder = order
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies a project.
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyProjectInput(item, input)
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// RenderProjectMarkdown renders a project description to sanitized HTML.
func RenderProjectMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := projectMarkdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(projectSanitizer.SanitizeBytes(buf.Bytes()))
}

func applyProjectInput(item *db.Project, input ProjectInput) {
	item.Title = strings.TrimSpace(input.Title)
	item.DateLabel = strings.TrimSpace(input.DateLabel)
	item.Category = strings.TrimSpace(input.Category)
	item.Description = strings.TrimSpace(input.Description)
	item.Icon = strings.TrimSpace(input.Icon)
	if item.Icon == "" {
		item.Icon = "Sprout"
	}
	item.Color = strings.ToLower(strings.TrimSpace(input.Color))
	if item.Color == "" {
		item.Color = "primary"
	}
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.SortOrder = input.SortOrder
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
}

func validateProjectInput(input ProjectInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrProjectTitleMissing
	}
	if icon := strings.TrimSpace(input.Icon); icon != "" && !view.IsProjectIcon(icon) {
		return ErrProjectIconInvalid
	}
	if color := strings.TrimSpace(input.Color); color != "" && !view.IsProjectColor(color) {
		return ErrProjectColorInvalid
	}
	return nil
}

func (s *ProjectService) nextSortOrder() (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.Project{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
