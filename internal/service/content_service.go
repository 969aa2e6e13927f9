package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
)

var (
	// ErrDataUnavailable wraps every failure of the content store.
	ErrDataUnavailable = errors.New("data unavailable")
	ErrUnknownPage     = errors.New("unknown page")
	ErrUnknownSection  = errors.New("unknown section")
	ErrInvalidOverride = errors.New("page, section and key are required")
)

// BulkSaveError reports the first item of a bulk save that failed. Items before
// Index were persisted, items after it were not attempted.
type BulkSaveError struct {
	Index int
	Item  content.Override
	Err   error
}

func (e *BulkSaveError) Error() string {
	return fmt.Sprintf("save %s/%s/%s (item %d): %v", e.Item.Page, e.Item.Section, e.Item.Key, e.Index, e.Err)
}

func (e *BulkSaveError) Unwrap() error { return e.Err }

// ContentService reads and writes content overrides.
type ContentService struct {
	db       *gorm.DB
	schema   *content.Schema
	sanitize *bluemonday.Policy
	logger   zerolog.Logger
}

// NewContentService returns a service resolving against schema.
func NewContentService(gdb *gorm.DB, schema *content.Schema, logger zerolog.Logger) *ContentService {
	if schema == nil {
		schema = content.Default
	}
	return &ContentService{
		db:       gdb,
		schema:   schema,
		sanitize: bluemonday.UGCPolicy(),
		logger:   logger,
	}
}

// Schema returns the schema the service resolves against.
func (s *ContentService) Schema() *content.Schema { return s.schema }

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}

func toOverride(row db.SiteContent) content.Override {
	return content.Override{
		ID:      row.ID,
		Page:    row.Page,
		Section: row.Section,
		Key:     row.ContentKey,
		Value:   row.Value(),
		Type:    row.ContentType,
	}
}

// FetchOverrides returns every override of page in ascending id order.
func (s *ContentService) FetchOverrides(ctx context.Context, page string) ([]content.Override, error) {
	var rows []db.SiteContent
	if err := s.db.WithContext(ctx).Where("page = ?", page).Order("id asc").Find(&rows).Error; err != nil {
		return nil, unavailable(err)
	}
	overrides := make([]content.Override, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, toOverride(row))
	}
	return overrides, nil
}

// ResolvePage fetches and resolves a schema page. When the store fails the page is
// still returned, resolved from defaults only, together with the error.
func (s *ContentService) ResolvePage(ctx context.Context, page string) (content.ResolvedPage, error) {
	schemaPage, ok := s.schema.Page(page)
	if !ok {
		return content.ResolvedPage{}, ErrUnknownPage
	}

	overrides, err := s.FetchOverrides(ctx, page)
	if err != nil {
		return content.ResolvePage(schemaPage, nil), err
	}

	for _, o := range overrides {
		if o.Key == content.VisibilityKey {
			if _, known := schemaPage.Section(o.Section); known {
				continue
			}
		} else if _, known := schemaPage.Field(o.Section, o.Key); known {
			continue
		}
		s.logger.Debug().Str("page", page).Str("section", o.Section).Str("key", o.Key).Msg("override not in schema")
	}

	return content.ResolvePage(schemaPage, overrides), nil
}

// EditorForm returns the page as the admin editor shows it: every field with its
// stored value or, when unset, its default.
func (s *ContentService) EditorForm(ctx context.Context, page string) (content.ResolvedPage, error) {
	return s.ResolvePage(ctx, page)
}

// SaveOverridesBulk upserts items one after the other. It is not atomic: on the first
// failure it stops and returns a *BulkSaveError, leaving earlier items persisted.
// Values of rich-text schema fields are sanitized whatever type the item declares.
func (s *ContentService) SaveOverridesBulk(ctx context.Context, items []content.Override) error {
	for i, item := range items {
		if err := s.upsert(ctx, item); err != nil {
			return &BulkSaveError{Index: i, Item: item, Err: err}
		}
	}
	return nil
}

// ToggleVisibility shows or hides a section of a page.
func (s *ContentService) ToggleVisibility(ctx context.Context, page, section string, visible bool) error {
	schemaPage, ok := s.schema.Page(page)
	if !ok {
		return ErrUnknownPage
	}
	if _, ok := schemaPage.Section(section); !ok {
		return ErrUnknownSection
	}
	return s.upsert(ctx, content.VisibilityOverride(page, section, visible))
}

// SaveEditorForm persists an editor submission keyed by "section.key". Only fields of
// the schema with non-empty values are saved. It returns the number of saved items.
func (s *ContentService) SaveEditorForm(ctx context.Context, page string, form map[string]string) (int, error) {
	schemaPage, ok := s.schema.Page(page)
	if !ok {
		return 0, ErrUnknownPage
	}
	items := content.ItemsFromForm(schemaPage, form, s.SanitizeHTML)
	if err := s.SaveOverridesBulk(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// SanitizeHTML strips markup a rich-text field must not carry.
func (s *ContentService) SanitizeHTML(html string) string {
	return strings.TrimSpace(s.sanitize.Sanitize(html))
}

// upsert writes the row of the triple in one statement, updating value and type when the
// triple already exists.
func (s *ContentService) upsert(ctx context.Context, item content.Override) error {
	if strings.TrimSpace(item.Page) == "" || strings.TrimSpace(item.Section) == "" || strings.TrimSpace(item.Key) == "" {
		return ErrInvalidOverride
	}
	contentType := item.Type
	if contentType == "" {
		contentType = string(content.KindPlainText)
	}
	value := item.Value
	if field, ok := s.schema.Field(item.Page, item.Section, item.Key); ok {
		contentType = string(field.Kind)
		if field.Kind == content.KindRichText {
			value = s.SanitizeHTML(value)
		}
	}

	row := db.SiteContent{
		Page:         item.Page,
		Section:      item.Section,
		ContentKey:   item.Key,
		ContentValue: &value,
		ContentType:  contentType,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page"}, {Name: "section"}, {Name: "content_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content_value": value,
			"content_type":  contentType,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error; err != nil {
		return unavailable(err)
	}
	return nil
}
