package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/service"
)

// resolvePage resolves a schema page for public rendering. Store failures are logged
// and the defaults are rendered.
func (a *API) resolvePage(c *gin.Context, key string) (content.ResolvedPage, bool) {
	page, err := a.content.ResolvePage(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPage) {
			return content.ResolvedPage{}, false
		}
		a.logger.Warn().Err(err).Str("page", key).Msg("content unavailable, rendering defaults")
	}
	return page, true
}

func (a *API) notFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Page introuvable"})
}

// ShowHome renders the accueil page.
func (a *API) ShowHome(c *gin.Context) {
	page, _ := a.resolvePage(c, "accueil")
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":   page.Label,
		"pageKey": page.Key,
		"content": page,
	})
}

// ShowPage renders any schema page by key, handing the pages with their own
// listing to the dedicated handler.
func (a *API) ShowPage(c *gin.Context) {
	a.showPageByKey(c, c.Param("page"))
}

// PageHandler returns a handler rendering the schema page key.
func (a *API) PageHandler(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.showPageByKey(c, key)
	}
}

func (a *API) showPageByKey(c *gin.Context, key string) {
	switch key {
	case "accueil":
		a.ShowHome(c)
		return
	case "boutique":
		a.ShowBoutique(c)
		return
	case "galerie":
		a.ShowGalerie(c)
		return
	case "projets":
		a.ShowProjets(c)
		return
	case "contact":
		a.ShowContact(c)
		return
	}

	page, ok := a.resolvePage(c, key)
	if !ok {
		a.notFound(c)
		return
	}
	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":   page.Label,
		"pageKey": page.Key,
		"content": page,
	})
}

// ShowBoutique renders the shop with the products in stock.
func (a *API) ShowBoutique(c *gin.Context) {
	page, _ := a.resolvePage(c, "boutique")
	category := strings.TrimSpace(c.Query("category"))

	payload := gin.H{
		"title":      page.Label,
		"pageKey":    page.Key,
		"content":    page,
		"categories": service.ProductCategories,
		"category":   category,
	}
	items, err := a.products.ListInStock(category)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load products")
		payload["error"] = "Les produits n'ont pas pu être chargés"
	}
	payload["products"] = items
	a.renderHTML(c, http.StatusOK, "boutique.html", payload)
}

// ShowGalerie renders the photo gallery.
func (a *API) ShowGalerie(c *gin.Context) {
	page, _ := a.resolvePage(c, "galerie")
	category := strings.TrimSpace(c.Query("category"))

	payload := gin.H{
		"title":      page.Label,
		"pageKey":    page.Key,
		"content":    page,
		"categories": service.GalleryCategories,
		"category":   category,
	}
	result, err := a.galleries.ListPublic(category)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load gallery")
		result.Items = service.DefaultGalleryImages(category)
	}
	payload["items"] = result.Items
	a.renderHTML(c, http.StatusOK, "galerie.html", payload)
}

// ShowProjets renders the active project cards.
func (a *API) ShowProjets(c *gin.Context) {
	page, _ := a.resolvePage(c, "projets")

	payload := gin.H{
		"title":   page.Label,
		"pageKey": page.Key,
		"content": page,
	}
	cards, err := a.projects.ListActive()
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load projects")
		payload["error"] = "Les projets n'ont pas pu être chargés"
	}
	payload["projects"] = cards
	a.renderHTML(c, http.StatusOK, "projets.html", payload)
}

// ShowContact renders the contact form.
func (a *API) ShowContact(c *gin.Context) {
	page, _ := a.resolvePage(c, "contact")
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title":    page.Label,
		"pageKey":  page.Key,
		"content":  page,
		"subjects": service.ContactSubjects,
		"sent":     c.Query("sent") == "1",
		"form":     service.ContactInput{},
	})
}

// SubmitContact stores a contact message and redirects back to the form.
func (a *API) SubmitContact(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBind(&input); err != nil {
		respondContactForm(a, c, http.StatusBadRequest, input, gin.H{"error": "Formulaire invalide"})
		return
	}

	if _, err := a.contacts.Submit(input); err != nil {
		var validation *service.ContactValidationError
		switch {
		case errors.As(err, &validation):
			respondContactForm(a, c, http.StatusBadRequest, input, gin.H{"fieldErrors": validation.Fields, "error": "Veuillez corriger les champs signalés"})
		case errors.Is(err, service.ErrConsentRequired):
			respondContactForm(a, c, http.StatusBadRequest, input, gin.H{"error": "Vous devez accepter la politique de confidentialité"})
		default:
			_ = c.Error(err)
			respondContactForm(a, c, http.StatusInternalServerError, input, gin.H{"error": "Le message n'a pas pu être envoyé, veuillez réessayer"})
		}
		return
	}

	if wantsJSONResponse(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Message envoyé"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/contact?sent=1")
}

func respondContactForm(a *API, c *gin.Context, status int, input service.ContactInput, extra gin.H) {
	if wantsJSONResponse(c) {
		body := gin.H{}
		for k, v := range extra {
			body[k] = v
		}
		c.JSON(status, body)
		return
	}

	page, _ := a.resolvePage(c, "contact")
	payload := gin.H{
		"title":    page.Label,
		"pageKey":  page.Key,
		"content":  page,
		"subjects": service.ContactSubjects,
		"form":     input,
	}
	for k, v := range extra {
		payload[k] = v
	}
	a.renderHTML(c, status, "contact.html", payload)
}

// GetPageContent returns a resolved page as JSON. Store failures degrade to defaults.
func (a *API) GetPageContent(c *gin.Context) {
	page, err := a.content.ResolvePage(c.Request.Context(), c.Param("page"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownPage) {
			respondError(c, http.StatusNotFound, "Page inconnue")
			return
		}
		a.logger.Warn().Err(err).Str("page", c.Param("page")).Msg("content unavailable, serving defaults")
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       page.Key,
		"label":      page.Label,
		"content":    page.Values(),
		"visibility": page.Visibility(),
		"sections":   page.Sections,
	})
}

// GetNavigation returns the visible pages in order.
func (a *API) GetNavigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": a.navigation()})
}

func wantsJSONResponse(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}
