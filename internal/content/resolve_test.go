package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackWithoutOverrides(t *testing.T) {
	assert.Equal(t, "x", Resolve(nil, "hero", "title", "x"))
	assert.Equal(t, "", Resolve(nil, "hero", "title", ""))
}

func TestResolveEmptyOverrideEqualsDefault(t *testing.T) {
	overrides := []Override{{ID: 1, Section: "hero", Key: "title", Value: ""}}
	assert.Equal(t, "Ensemble, cultivons", Resolve(overrides, "hero", "title", "Ensemble, cultivons"))
}

func TestResolveFirstMatchWins(t *testing.T) {
	overrides := []Override{
		{ID: 3, Section: "hero", Key: "title", Value: "first"},
		{ID: 7, Section: "hero", Key: "title", Value: "second"},
	}
	assert.Equal(t, "first", Resolve(overrides, "hero", "title", "default"))
	assert.Equal(t, "first", NewIndex(overrides).Resolve("hero", "title", "default"))

	// An empty first match is not skipped in favour of a later duplicate.
	overrides[0].Value = ""
	assert.Equal(t, "default", Resolve(overrides, "hero", "title", "default"))
	assert.Equal(t, "default", NewIndex(overrides).Resolve("hero", "title", "default"))
}

func TestResolveVisibility(t *testing.T) {
	assert.True(t, ResolveVisibility(nil, "hero"))

	cases := map[string]bool{
		"false": false,
		"true":  true,
		"":      true,
		"FALSE": true,
		"no":    true,
	}
	for value, want := range cases {
		overrides := []Override{{Section: "hero", Key: VisibilityKey, Value: value}}
		assert.Equal(t, want, ResolveVisibility(overrides, "hero"), "value %q", value)
		assert.Equal(t, want, NewIndex(overrides).Visible("hero"), "value %q", value)
	}
}

func TestVisibilityOverride(t *testing.T) {
	o := VisibilityOverride("accueil", "impact", false)
	assert.Equal(t, Override{Page: "accueil", Section: "impact", Key: "_visible", Value: "false", Type: "system"}, o)
	assert.False(t, ResolveVisibility([]Override{o}, "impact"))
}

func TestResolvePageIsTotal(t *testing.T) {
	for _, page := range Default.Pages() {
		resolved := ResolvePage(page, nil)
		require.Len(t, resolved.Sections, len(page.Sections), page.Key)
		for i, section := range page.Sections {
			assert.True(t, resolved.Sections[i].Visible)
			for j, field := range section.Fields {
				got := resolved.Sections[i].Fields[j]
				assert.Equal(t, field.Default, got.Value, "%s/%s/%s", page.Key, section.Key, field.Key)
				assert.False(t, got.Overridden)
			}
		}
	}
}

func TestResolvePageAppliesOverrides(t *testing.T) {
	page, ok := Default.Page("accueil")
	require.True(t, ok)

	resolved := ResolvePage(page, []Override{
		{ID: 1, Page: "accueil", Section: "hero", Key: "title", Value: "Bonjour"},
		{ID: 2, Page: "accueil", Section: "impact", Key: VisibilityKey, Value: "false"},
		{ID: 3, Page: "accueil", Section: "ghost", Key: "title", Value: "orphan"},
	})

	assert.Equal(t, "Bonjour", resolved.Get("hero", "title"))
	assert.Equal(t, "l'avenir du Gabon", resolved.Get("hero", "title_highlight"))
	assert.Equal(t, "", resolved.Get("ghost", "title"))
	assert.False(t, resolved.Visible("impact"))
	assert.True(t, resolved.Visible("hero"))
	assert.True(t, resolved.Visible("ghost"))

	values := resolved.Values()
	assert.Equal(t, "Bonjour", values["hero"]["title"])
	assert.Equal(t, ImageHeroAgriculture, values["hero"]["image"])
	assert.False(t, resolved.Visibility()["impact"])
}

func TestItemsFromForm(t *testing.T) {
	page, ok := Default.Page("accueil")
	require.True(t, ok)

	items := ItemsFromForm(page, map[string]string{
		"hero.title":          "Nouveau titre",
		"hero.subtitle":       "",
		"mission.description": "<p>ok</p><script>x</script>",
		"hero.image":          "https://cdn.example/x.jpg",
		"ghost.title":         "ignored",
	}, func(s string) string { return strings.ReplaceAll(s, "<script>x</script>", "") })

	require.Len(t, items, 3)
	assert.Equal(t, Override{Page: "accueil", Section: "hero", Key: "title", Value: "Nouveau titre", Type: "text"}, items[0])
	assert.Equal(t, "image", items[1].Type)
	assert.Equal(t, "mission", items[2].Section)
	assert.Equal(t, "<p>ok</p>", items[2].Value)
	assert.Equal(t, "rich_text", items[2].Type)
}

func TestSchemaLookups(t *testing.T) {
	field, ok := Default.Field("accueil", "hero", "title")
	require.True(t, ok)
	assert.Equal(t, "Ensemble, cultivons", field.Default)
	assert.Equal(t, KindPlainText, field.Kind)

	_, ok = Default.Field("accueil", "hero", "nope")
	assert.False(t, ok)
	_, ok = Default.Page("nope")
	assert.False(t, ok)

	keys := make([]string, 0)
	for _, p := range Default.Pages() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"accueil", "moyens", "cooperative", "culture", "projets", "boutique", "galerie", "contact", "presidente"}, keys)
}

func TestNewSchemaRejectsInvalidPages(t *testing.T) {
	_, err := NewSchema(Page{Key: "a"}, Page{Key: "a"})
	assert.Error(t, err)

	_, err = NewSchema(Page{Key: "a", Sections: []Section{{Key: "s", Fields: []Field{{Key: VisibilityKey}}}}})
	assert.Error(t, err)

	_, err = NewSchema(Page{Key: "a", Sections: []Section{{Key: "s"}, {Key: "s"}}})
	assert.Error(t, err)

	_, err = NewSchema(Page{Key: " "})
	assert.Error(t, err)
}

func TestSplitFormKey(t *testing.T) {
	section, key, ok := SplitFormKey(FormKey("hero", "title"))
	require.True(t, ok)
	assert.Equal(t, "hero", section)
	assert.Equal(t, "title", key)

	_, _, ok = SplitFormKey("nodot")
	assert.False(t, ok)
	_, _, ok = SplitFormKey(".title")
	assert.False(t, ok)
}

func TestLookupUnknownSectionIsHidden(t *testing.T) {
	page, ok := Default.Page("boutique")
	require.True(t, ok)
	resolved := ResolvePage(page, nil)

	assert.Equal(t, "hero", resolved.Lookup("hero").Key)
	assert.True(t, resolved.Lookup("hero").Visible)
	assert.False(t, resolved.Lookup("ghost").Visible)
}
