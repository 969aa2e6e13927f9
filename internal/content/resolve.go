package content

import "strconv"

// Override is one stored admin override of a field default.
// Overrides handed to the resolvers are expected in ascending ID order.
type Override struct {
	ID      uint   `json:"id,omitempty"`
	Page    string `json:"page"`
	Section string `json:"section"`
	Key     string `json:"content_key"`
	Value   string `json:"content_value"`
	Type    string `json:"content_type"`
}

// Resolve returns the value of the first override matching section and key when it is
// non-empty, and fallback otherwise. Later duplicates are never consulted.
func Resolve(overrides []Override, section, key, fallback string) string {
	for _, o := range overrides {
		if o.Section == section && o.Key == key {
			if o.Value != "" {
				return o.Value
			}
			return fallback
		}
	}
	return fallback
}

// ResolveVisibility reports whether a section is visible. Sections are visible unless
// their sentinel row holds exactly "false".
func ResolveVisibility(overrides []Override, section string) bool {
	return Resolve(overrides, section, VisibilityKey, "true") != "false"
}

// VisibilityOverride builds the sentinel row toggling a section.
func VisibilityOverride(page, section string, visible bool) Override {
	return Override{
		Page:    page,
		Section: section,
		Key:     VisibilityKey,
		Value:   strconv.FormatBool(visible),
		Type:    string(KindSystem),
	}
}

type indexKey struct {
	section string
	key     string
}

// Index answers Resolve and Visible in constant time for one page load.
type Index struct {
	values map[indexKey]string
}

// NewIndex indexes overrides keeping the first row of each (section, key) pair.
func NewIndex(overrides []Override) Index {
	idx := Index{values: make(map[indexKey]string, len(overrides))}
	for _, o := range overrides {
		k := indexKey{o.Section, o.Key}
		if _, seen := idx.values[k]; seen {
			continue
		}
		idx.values[k] = o.Value
	}
	return idx
}

// Resolve has the semantics of the package level Resolve.
func (idx Index) Resolve(section, key, fallback string) string {
	if v := idx.values[indexKey{section, key}]; v != "" {
		return v
	}
	return fallback
}

// Visible has the semantics of ResolveVisibility.
func (idx Index) Visible(section string) bool {
	return idx.values[indexKey{section, VisibilityKey}] != "false"
}

// ResolvedField is a schema field with its effective value.
type ResolvedField struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Kind       Kind   `json:"kind"`
	Value      string `json:"value"`
	Default    string `json:"default"`
	Overridden bool   `json:"overridden"`
}

// IsRich reports whether the value is an HTML fragment.
func (f ResolvedField) IsRich() bool { return f.Kind == KindRichText }

// IsImage reports whether the value is an image URL.
func (f ResolvedField) IsImage() bool { return f.Kind == KindImage }

// ResolvedSection is a section with visibility and resolved fields.
type ResolvedSection struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Visible bool            `json:"visible"`
	Fields  []ResolvedField `json:"fields"`
}

// ResolvedPage is the fully resolved view of one schema page.
type ResolvedPage struct {
	Key      string            `json:"page"`
	Label    string            `json:"label"`
	Sections []ResolvedSection `json:"sections"`
}

// ResolvePage resolves every field of page against overrides.
func ResolvePage(page Page, overrides []Override) ResolvedPage {
	idx := NewIndex(overrides)
	out := ResolvedPage{Key: page.Key, Label: page.Label, Sections: make([]ResolvedSection, 0, len(page.Sections))}
	for _, section := range page.Sections {
		rs := ResolvedSection{
			Key:     section.Key,
			Label:   section.Label,
			Visible: idx.Visible(section.Key),
			Fields:  make([]ResolvedField, 0, len(section.Fields)),
		}
		for _, field := range section.Fields {
			value := idx.Resolve(section.Key, field.Key, field.Default)
			rs.Fields = append(rs.Fields, ResolvedField{
				Key:        field.Key,
				Label:      field.Label,
				Kind:       field.Kind,
				Value:      value,
				Default:    field.Default,
				Overridden: idx.Resolve(section.Key, field.Key, "") != "",
			})
		}
		out.Sections = append(out.Sections, rs)
	}
	return out
}

// Section returns a resolved section by key.
func (p ResolvedPage) Section(key string) (ResolvedSection, bool) {
	for _, s := range p.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return ResolvedSection{}, false
}

// Lookup is Section without the presence flag, for templates. Unknown keys yield a
// hidden empty section.
func (p ResolvedPage) Lookup(key string) ResolvedSection {
	s, _ := p.Section(key)
	return s
}

// Get returns the resolved value of a field, "" for unknown triples.
func (p ResolvedPage) Get(section, key string) string {
	s, ok := p.Section(section)
	if !ok {
		return ""
	}
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Visible reports section visibility. Unknown sections are visible.
func (p ResolvedPage) Visible(section string) bool {
	s, ok := p.Section(section)
	if !ok {
		return true
	}
	return s.Visible
}

// Values flattens the page to section -> key -> value.
func (p ResolvedPage) Values() map[string]map[string]string {
	out := make(map[string]map[string]string, len(p.Sections))
	for _, s := range p.Sections {
		fields := make(map[string]string, len(s.Fields))
		for _, f := range s.Fields {
			fields[f.Key] = f.Value
		}
		out[s.Key] = fields
	}
	return out
}

// Visibility returns section -> visible.
func (p ResolvedPage) Visibility() map[string]bool {
	out := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		out[s.Key] = s.Visible
	}
	return out
}

// ItemsFromForm turns an editor submission keyed by FormKey into bulk-save items in
// schema order. Unknown keys and empty values are dropped. Rich-text values go through
// sanitize when it is non-nil.
func ItemsFromForm(page Page, form map[string]string, sanitize func(string) string) []Override {
	var items []Override
	for _, section := range page.Sections {
		for _, field := range section.Fields {
			value := form[FormKey(section.Key, field.Key)]
			if value == "" {
				continue
			}
			if field.Kind == KindRichText && sanitize != nil {
				value = sanitize(value)
				if value == "" {
					continue
				}
			}
			items = append(items, Override{
				Page:    page.Key,
				Section: section.Key,
				Key:     field.Key,
				Value:   value,
				Type:    string(field.Kind),
			})
		}
	}
	return items
}
