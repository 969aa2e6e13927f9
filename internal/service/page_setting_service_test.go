package service

import (
	"errors"
	"testing"

	"github.com/reflet/internal/content"
)

func TestPageSettingSeedIsIdempotent(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageSettingService(gdb)
	if err := svc.Seed(content.Default); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	items, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	pages := content.Default.Pages()
	if len(items) != len(pages) {
		t.Fatalf("expected %d settings, got %d", len(pages), len(items))
	}
	for i, item := range items {
		if item.PageKey != pages[i].Key || item.Href != pages[i].Path || !item.IsVisible || item.SortOrder != i+1 {
			t.Fatalf("unexpected seeded setting %d: %+v", i, item)
		}
	}

	hidden := false
	if _, err := svc.Update(items[1].ID, PageSettingInput{NavLabel: "Nos moyens", IsVisible: &hidden}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := svc.Seed(content.Default); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}

	again, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(again) != len(pages) {
		t.Fatalf("expected reseeding not to add rows, got %d", len(again))
	}
	if again[1].NavLabel != "Nos moyens" || again[1].IsVisible {
		t.Fatalf("expected reseeding to keep edits, got %+v", again[1])
	}
}

func TestPageSettingNavigation(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPageSettingService(gdb)
	if err := svc.Seed(content.Default); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	items, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}

	var boutique uint
	for _, item := range items {
		if item.PageKey == "boutique" {
			boutique = item.ID
		}
	}
	if _, err := svc.SetVisibility(boutique, false); err != nil {
		t.Fatalf("SetVisibility returned error: %v", err)
	}

	nav, err := svc.Navigation()
	if err != nil {
		t.Fatalf("Navigation returned error: %v", err)
	}
	if len(nav) != len(items)-1 {
		t.Fatalf("expected %d visible pages, got %d", len(items)-1, len(nav))
	}
	for _, item := range nav {
		if item.PageKey == "boutique" {
			t.Fatalf("expected boutique to be hidden from navigation")
		}
	}

	if _, err := svc.SetVisibility(9999, true); !errors.Is(err, ErrPageSettingNotFound) {
		t.Fatalf("expected ErrPageSettingNotFound, got %v", err)
	}
}
