package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
	"github.com/reflet/internal/service"
)

func (e *handlerTestEnv) registerPublicRoutes() {
	e.router.GET("/", e.api.ShowHome)
	e.router.GET("/p/:page", e.api.ShowPage)
	e.router.GET("/boutique", e.api.PageHandler("boutique"))
	e.router.GET("/galerie", e.api.PageHandler("galerie"))
	e.router.POST("/contact", e.api.SubmitContact)
	e.router.GET("/api/content/:page", e.api.GetPageContent)
	e.router.GET("/api/navigation", e.api.GetNavigation)
}

func TestShowHomeAppliesOverrides(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	title := "Bienvenue"
	if err := env.db.Create(&db.SiteContent{Page: "accueil", Section: "hero", ContentKey: "title", ContentValue: &title, ContentType: "text"}).Error; err != nil {
		t.Fatalf("failed to seed override: %v", err)
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	name, data := env.html.last()
	if name != "home.html" {
		t.Fatalf("expected home template, got %s", name)
	}
	page, ok := data["content"].(content.ResolvedPage)
	if !ok {
		t.Fatalf("expected resolved page, got %T", data["content"])
	}
	if page.Get("hero", "title") != "Bienvenue" {
		t.Fatalf("expected override, got %q", page.Get("hero", "title"))
	}
	if page.Get("hero", "title_highlight") != "l'avenir du Gabon" {
		t.Fatalf("expected default for untouched field, got %q", page.Get("hero", "title_highlight"))
	}
}

func TestShowHomeRendersDefaultsWhenStoreFails(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	if err := env.db.Migrator().DropTable(&db.SiteContent{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	_, data := env.html.last()
	page := data["content"].(content.ResolvedPage)
	if page.Get("hero", "title") != "Ensemble, cultivons" {
		t.Fatalf("expected default title, got %q", page.Get("hero", "title"))
	}
}

func TestShowPageUnknownIsNotFound(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	rr := env.do(httptest.NewRequest(http.MethodGet, "/p/inexistante", nil), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if name, _ := env.html.last(); name != "not_found.html" {
		t.Fatalf("expected not_found template, got %s", name)
	}
}

func TestShowPageDispatchesListings(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	cases := map[string]string{
		"/p/culture":  "page.html",
		"/p/projets":  "projets.html",
		"/p/contact":  "contact.html",
		"/p/accueil":  "home.html",
		"/boutique":   "boutique.html",
		"/p/boutique": "boutique.html",
	}
	for path, want := range cases {
		rr := env.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
		if name, _ := env.html.last(); name != want {
			t.Fatalf("%s: expected %s, got %s", path, want, name)
		}
	}
}

func TestShowBoutiqueListsProductsInStock(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	products := []db.Product{
		{Name: "Collier perles", PriceCents: 1800, Category: "bijoux", InStock: true},
		{Name: "Pagne wax", PriceCents: 3200, Category: "textiles", InStock: true},
		{Name: "Masque", PriceCents: 9000, Category: "artisanat", InStock: false},
	}
	if err := env.db.Create(&products).Error; err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}

	env.do(httptest.NewRequest(http.MethodGet, "/boutique", nil), "")
	_, data := env.html.last()
	items := data["products"].([]db.Product)
	if len(items) != 2 {
		t.Fatalf("expected 2 products in stock, got %d", len(items))
	}

	env.do(httptest.NewRequest(http.MethodGet, "/boutique?category=bijoux", nil), "")
	_, data = env.html.last()
	items = data["products"].([]db.Product)
	if len(items) != 1 || items[0].Name != "Collier perles" {
		t.Fatalf("expected bijoux only, got %+v", items)
	}
}

func TestShowGalerieFallsBackToBuiltInPhotos(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	env.do(httptest.NewRequest(http.MethodGet, "/galerie?category=culture", nil), "")
	name, data := env.html.last()
	if name != "galerie.html" {
		t.Fatalf("expected galerie template, got %s", name)
	}
	items := data["items"].([]db.GalleryImage)
	if len(items) == 0 {
		t.Fatal("expected built-in photos")
	}
	for _, item := range items {
		if item.Category != service.GalleryCategoryCulture {
			t.Fatalf("expected culture photos only, got %q", item.Category)
		}
	}
}

func TestSubmitContactStoresMessage(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	form := url.Values{
		"first_name": {"Awa"},
		"last_name":  {"Nguema"},
		"email":      {"Awa@Example.com"},
		"subject":    {"Bénévolat"},
		"message":    {"Je souhaite aider à la coopérative."},
		"consent":    {"true"},
	}
	rr := env.do(postForm("/contact", form), "")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/contact?sent=1" {
		t.Fatalf("expected redirect after submit, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	var stored db.ContactMessage
	if err := env.db.First(&stored).Error; err != nil {
		t.Fatalf("expected stored message: %v", err)
	}
	if stored.Email != "awa@example.com" || stored.IsRead {
		t.Fatalf("unexpected stored message: %+v", stored)
	}
}

func TestSubmitContactRejectsInvalidInput(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	rr := env.do(postForm("/contact", url.Values{"first_name": {"Awa"}, "consent": {"true"}}), "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	name, data := env.html.last()
	if name != "contact.html" {
		t.Fatalf("expected contact template, got %s", name)
	}
	fields, ok := data["fieldErrors"].(map[string]string)
	if !ok || fields["email"] == "" {
		t.Fatalf("expected email field error, got %v", data["fieldErrors"])
	}

	rr = env.do(jsonRequest(http.MethodPost, "/contact", `{"first_name":"Awa","last_name":"Nguema","email":"awa@example.com","subject":"Autre","message":"Bonjour","consent":false}`), "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected consent to be required, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "confidentialité") {
		t.Fatalf("expected consent error, got %s", rr.Body.String())
	}

	var count int64
	env.db.Model(&db.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no stored message, got %d", count)
	}
}

func TestGetPageContentReportsVisibility(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	hidden := "false"
	if err := env.db.Create(&db.SiteContent{Page: "accueil", Section: "impact", ContentKey: content.VisibilityKey, ContentValue: &hidden, ContentType: "system"}).Error; err != nil {
		t.Fatalf("failed to seed visibility: %v", err)
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/content/accueil", nil), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var body struct {
		Visibility map[string]bool `json:"visibility"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Visibility["impact"] || !body.Visibility["hero"] {
		t.Fatalf("unexpected visibility: %v", body.Visibility)
	}
}

func TestGetNavigationSkipsHiddenPages(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerPublicRoutes()

	if err := env.api.pageSettings.Seed(content.Default); err != nil {
		t.Fatalf("failed to seed page settings: %v", err)
	}
	if err := env.db.Model(&db.PageSetting{}).Where("page_key = ?", "presidente").Update("is_visible", false).Error; err != nil {
		t.Fatalf("failed to hide page: %v", err)
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/navigation", nil), "")
	var body struct {
		Items []navItem `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Items) != len(content.Default.Pages())-1 {
		t.Fatalf("expected hidden page to be skipped, got %d items", len(body.Items))
	}
	for _, item := range body.Items {
		if item.Key == "presidente" {
			t.Fatal("expected presidente to be hidden")
		}
	}
	if body.Items[0].Key != "accueil" {
		t.Fatalf("expected schema order, got %s first", body.Items[0].Key)
	}
}
