// Package content holds the compiled page/section/field schema of the site and
// the pure resolution of stored overrides against its defaults.
package content

import (
	"fmt"
	"strings"
)

// Kind tags a field with its editing widget and the shape of its stored value.
type Kind string

const (
	KindPlainText Kind = "text"
	KindRichText  Kind = "rich_text"
	KindImage     Kind = "image"
	// KindSystem marks sentinel rows such as section visibility.
	KindSystem Kind = "system"
)

// VisibilityKey is the reserved content key carrying a section's visibility flag.
const VisibilityKey = "_visible"

// Field is one editable unit of content.
type Field struct {
	Key     string
	Label   string
	Kind    Kind
	Default string
}

// Section is a named, ordered group of fields.
type Section struct {
	Key    string
	Label  string
	Fields []Field
}

// Page maps a page identifier to its ordered sections.
type Page struct {
	Key      string
	Label    string
	Path     string
	Sections []Section
}

// Schema is the immutable set of editable pages.
type Schema struct {
	pages []Page
	index map[string]int
}

// NewSchema validates and indexes the given pages. Keys must be unique at every level
// and the sentinel visibility key cannot be used as a field key.
func NewSchema(pages ...Page) (*Schema, error) {
	s := &Schema{pages: pages, index: make(map[string]int, len(pages))}
	for i, page := range pages {
		if strings.TrimSpace(page.Key) == "" {
			return nil, fmt.Errorf("page %d has no key", i)
		}
		if _, dup := s.index[page.Key]; dup {
			return nil, fmt.Errorf("duplicate page %q", page.Key)
		}
		s.index[page.Key] = i

		sections := make(map[string]struct{}, len(page.Sections))
		for _, section := range page.Sections {
			if _, dup := sections[section.Key]; dup {
				return nil, fmt.Errorf("page %q: duplicate section %q", page.Key, section.Key)
			}
			sections[section.Key] = struct{}{}

			fields := make(map[string]struct{}, len(section.Fields))
			for _, field := range section.Fields {
				if field.Key == VisibilityKey {
					return nil, fmt.Errorf("page %q section %q: %s is reserved", page.Key, section.Key, VisibilityKey)
				}
				if _, dup := fields[field.Key]; dup {
					return nil, fmt.Errorf("page %q section %q: duplicate field %q", page.Key, section.Key, field.Key)
				}
				fields[field.Key] = struct{}{}
			}
		}
	}
	return s, nil
}

// MustSchema is NewSchema that panics on invalid input; used for compiled data.
func MustSchema(pages ...Page) *Schema {
	s, err := NewSchema(pages...)
	if err != nil {
		panic(err)
	}
	return s
}

// Pages returns the pages in declaration order.
func (s *Schema) Pages() []Page {
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Page looks a page up by key.
func (s *Schema) Page(key string) (Page, bool) {
	i, ok := s.index[key]
	if !ok {
		return Page{}, false
	}
	return s.pages[i], true
}

// Field looks a field up by its full triple.
func (s *Schema) Field(page, section, key string) (Field, bool) {
	p, ok := s.Page(page)
	if !ok {
		return Field{}, false
	}
	return p.Field(section, key)
}

// Section looks a section up by key.
func (p Page) Section(key string) (Section, bool) {
	for _, section := range p.Sections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// Field looks a field up within the page.
func (p Page) Field(section, key string) (Field, bool) {
	sec, ok := p.Section(section)
	if !ok {
		return Field{}, false
	}
	for _, field := range sec.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Default returns the compiled default of a field, or "" when the field is unknown.
func (p Page) Default(section, key string) string {
	field, _ := p.Field(section, key)
	return field.Default
}

// FormKey is the flat "section.key" name used by the admin form.
func FormKey(section, key string) string {
	return section + "." + key
}

// SplitFormKey is the inverse of FormKey.
func SplitFormKey(formKey string) (section, key string, ok bool) {
	section, key, ok = strings.Cut(formKey, ".")
	if !ok || section == "" || key == "" {
		return "", "", false
	}
	return section, key, true
}
