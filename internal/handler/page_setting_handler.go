package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
)

// ShowPageSettings renders the navigation settings page.
func (a *API) ShowPageSettings(c *gin.Context) {
	items, err := a.pageSettings.ListAll()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "pages_manage.html", gin.H{"title": "Pages", "error": "Impossible de charger les pages"})
		return
	}
	a.renderHTML(c, http.StatusOK, "pages_manage.html", gin.H{"title": "Pages", "items": items})
}

// ListPageSettings returns every page setting by sort order.
func (a *API) ListPageSettings(c *gin.Context) {
	items, err := a.pageSettings.ListAll()
	if err != nil {
		respondInternal(c, "Impossible de charger les pages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdatePageSetting edits the label, order or visibility of a page.
func (a *API) UpdatePageSetting(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	var payload service.PageSettingInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}

	item, err := a.pageSettings.Update(id, payload)
	if err != nil {
		if errors.Is(err, service.ErrPageSettingNotFound) {
			respondError(c, http.StatusNotFound, "Page introuvable")
			return
		}
		respondInternal(c, "Erreur de sauvegarde", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page mise à jour", "item": item})
}

// TogglePageVisibility shows or hides a page in the navigation.
func (a *API) TogglePageVisibility(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	var payload visibilityPayload
	if !bindJSON(c, &payload, "Format invalide") {
		return
	}
	if payload.Visible == nil {
		respondError(c, http.StatusBadRequest, "Le champ visible est requis")
		return
	}

	item, err := a.pageSettings.SetVisibility(id, *payload.Visible)
	if err != nil {
		if errors.Is(err, service.ErrPageSettingNotFound) {
			respondError(c, http.StatusNotFound, "Page introuvable")
			return
		}
		respondInternal(c, "Erreur de sauvegarde", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visibilité mise à jour", "item": item})
}
