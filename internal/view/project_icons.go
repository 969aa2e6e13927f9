package view

import (
	"html/template"
	"strings"
)

// ProjectIconOption describes a selectable icon for project cards.
type ProjectIconOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ProjectColorOption describes a selectable accent color for project cards.
type ProjectColorOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Class string `json:"class"`
}

type projectIconAsset struct {
	Key   string
	Label string
	SVG   string
}

const svgOpen = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

var (
	projectIconDefinitions = []projectIconAsset{
		{Key: "Sprout", Label: "Pousse", SVG: svgOpen + `<path d="M7 20h10"/><path d="M10 20c5.5-2.5.8-6.4 3-10"/><path d="M9.5 9.4c1.1.8 1.8 2.2 2.3 3.7-2 .4-3.5.4-4.8-.3-1.2-.6-2.3-1.9-3-4.2 2.8-.5 4.4 0 5.5.8z"/><path d="M14.1 6a7 7 0 0 0-1.1 4c1.9-.1 3.3-.6 4.3-1.4 1-1 1.6-2.3 1.7-4.6-2.7.1-4 1-4.9 2z"/></svg>`},
		{Key: "Award", Label: "Récompense", SVG: svgOpen + `<circle cx="12" cy="8" r="6"/><path d="M15.477 12.89 17 22l-5-3-5 3 1.523-9.11"/></svg>`},
		{Key: "Package", Label: "Colis", SVG: svgOpen + `<path d="m7.5 4.27 9 5.15"/><path d="M21 8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16Z"/><path d="m3.3 7 8.7 5 8.7-5"/><path d="M12 22V12"/></svg>`},
		{Key: "Users", Label: "Communauté", SVG: svgOpen + `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"/><circle cx="9" cy="7" r="4"/><path d="M22 21v-2a4 4 0 0 0-3-3.87"/><path d="M16 3.13a4 4 0 0 1 0 7.75"/></svg>`},
		{Key: "Heart", Label: "Solidarité", SVG: svgOpen + `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/></svg>`},
		{Key: "Music", Label: "Musique", SVG: svgOpen + `<path d="M9 18V5l12-2v13"/><circle cx="6" cy="18" r="3"/><circle cx="18" cy="16" r="3"/></svg>`},
	}
	defaultProjectIcon = projectIconAsset{Key: "Calendar", Label: "Calendrier", SVG: svgOpen + `<rect width="18" height="18" x="3" y="4" rx="2"/><path d="M16 2v4"/><path d="M8 2v4"/><path d="M3 10h18"/></svg>`}
	projectIconLookup  = func() map[string]projectIconAsset {
		lookup := make(map[string]projectIconAsset, len(projectIconDefinitions)+1)
		for _, icon := range projectIconDefinitions {
			lookup[strings.ToLower(icon.Key)] = icon
		}
		lookup[strings.ToLower(defaultProjectIcon.Key)] = defaultProjectIcon
		return lookup
	}()

	projectColors = []ProjectColorOption{
		{Key: "primary", Label: "Vert", Class: "accent-primary"},
		{Key: "gold", Label: "Or", Class: "accent-gold"},
		{Key: "ocean", Label: "Océan", Class: "accent-ocean"},
	}
)

// ProjectIconOptions exposes the selectable icons for the admin UI.
func ProjectIconOptions() []ProjectIconOption {
	options := make([]ProjectIconOption, 0, len(projectIconDefinitions)+1)
	for _, icon := range projectIconDefinitions {
		options = append(options, ProjectIconOption{Key: icon.Key, Label: icon.Label})
	}
	return append(options, ProjectIconOption{Key: defaultProjectIcon.Key, Label: defaultProjectIcon.Label})
}

// IsProjectIcon reports whether key names a known icon, case-insensitively.
func IsProjectIcon(key string) bool {
	_, ok := projectIconLookup[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// ProjectIconSVG resolves the SVG markup for key, falling back to the calendar icon.
func ProjectIconSVG(key string) template.HTML {
	if icon, ok := projectIconLookup[strings.ToLower(strings.TrimSpace(key))]; ok {
		return template.HTML(icon.SVG)
	}
	return template.HTML(defaultProjectIcon.SVG)
}

// ProjectColorOptions exposes the selectable accent colors.
func ProjectColorOptions() []ProjectColorOption {
	out := make([]ProjectColorOption, len(projectColors))
	copy(out, projectColors)
	return out
}

// ProjectColorClass maps a color key to its CSS class; unknown keys use primary.
func ProjectColorClass(key string) string {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	for _, c := range projectColors {
		if c.Key == trimmed {
			return c.Class
		}
	}
	return projectColors[0].Class
}

// IsProjectColor reports whether key names a known color.
func IsProjectColor(key string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	for _, c := range projectColors {
		if c.Key == trimmed {
			return true
		}
	}
	return false
}
