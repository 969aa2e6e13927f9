package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/service"
)

type bulkSavePayload struct {
	Items []content.Override `json:"items"`
}

type editorPayload struct {
	Values map[string]string `json:"values"`
}

type visibilityPayload struct {
	Visible *bool `json:"visible"`
}

// ShowContentEditor renders the admin form of a schema page.
func (a *API) ShowContentEditor(c *gin.Context) {
	pageKey := c.Param("page")
	schemaPage, ok := a.content.Schema().Page(pageKey)
	if !ok {
		a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Page introuvable"})
		return
	}

	form, err := a.content.EditorForm(c.Request.Context(), pageKey)
	payload := gin.H{
		"title":  "Contenu : " + schemaPage.Label,
		"page":   schemaPage,
		"form":   form,
		"pages":  a.content.Schema().Pages(),
		"notice": c.Query("notice"),
	}
	if err != nil {
		_ = c.Error(err)
		payload["error"] = "Le contenu enregistré n'a pas pu être chargé, les valeurs par défaut sont affichées"
	}
	a.renderHTML(c, http.StatusOK, "content_edit.html", payload)
}

// SubmitContentForm saves the HTML editor form and redirects back to it.
func (a *API) SubmitContentForm(c *gin.Context) {
	pageKey := c.Param("page")
	if err := c.Request.ParseForm(); err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/content/"+url.PathEscape(pageKey)+"?notice="+url.QueryEscape("Formulaire invalide"))
		return
	}

	values := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		values[key] = c.Request.PostForm.Get(key)
	}

	saved, err := a.content.SaveEditorForm(c.Request.Context(), pageKey, values)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPage) {
			a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Page introuvable"})
			return
		}
		_ = c.Error(err)
		c.Redirect(http.StatusSeeOther, "/admin/content/"+url.PathEscape(pageKey)+"?notice="+url.QueryEscape("Erreur : "+err.Error()))
		return
	}

	a.logger.Info().Str("page", pageKey).Int("items", saved).Msg("content saved")
	c.Redirect(http.StatusSeeOther, "/admin/content/"+url.PathEscape(pageKey)+"?notice="+url.QueryEscape("Contenu enregistré"))
}

// GetContentEditor returns the editor model of a page as JSON.
func (a *API) GetContentEditor(c *gin.Context) {
	form, err := a.content.EditorForm(c.Request.Context(), c.Param("page"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownPage) {
			respondError(c, http.StatusNotFound, "Page inconnue")
			return
		}
		respondInternal(c, "Erreur de chargement", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// SaveContentEditor saves a "section.key" map for one page.
func (a *API) SaveContentEditor(c *gin.Context) {
	var payload editorPayload
	if !bindJSON(c, &payload, "Format de contenu invalide") {
		return
	}

	saved, err := a.content.SaveEditorForm(c.Request.Context(), c.Param("page"), payload.Values)
	if err != nil {
		a.respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contenu enregistré", "saved": saved})
}

// SaveContentBulk upserts a list of overrides in order.
func (a *API) SaveContentBulk(c *gin.Context) {
	var payload bulkSavePayload
	if !bindJSON(c, &payload, "Format de contenu invalide") {
		return
	}

	if err := a.content.SaveOverridesBulk(c.Request.Context(), payload.Items); err != nil {
		a.respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contenu enregistré", "saved": len(payload.Items)})
}

// SetSectionVisibility shows or hides a section of a page.
func (a *API) SetSectionVisibility(c *gin.Context) {
	var payload visibilityPayload
	if !bindJSON(c, &payload, "Format invalide") {
		return
	}
	if payload.Visible == nil {
		respondError(c, http.StatusBadRequest, "Le champ visible est requis")
		return
	}

	page, section := c.Param("page"), c.Param("section")
	if err := a.content.ToggleVisibility(c.Request.Context(), page, section, *payload.Visible); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPage), errors.Is(err, service.ErrUnknownSection):
			respondError(c, http.StatusNotFound, "Section inconnue")
		default:
			respondInternal(c, "Erreur de sauvegarde", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "section": section, "visible": *payload.Visible})
}

func (a *API) respondSaveError(c *gin.Context, err error) {
	var bulkErr *service.BulkSaveError
	switch {
	case errors.Is(err, service.ErrUnknownPage):
		respondError(c, http.StatusNotFound, "Page inconnue")
	case errors.As(err, &bulkErr):
		status := http.StatusInternalServerError
		if errors.Is(bulkErr.Err, service.ErrInvalidOverride) {
			status = http.StatusBadRequest
		} else {
			_ = c.Error(err)
		}
		c.JSON(status, gin.H{
			"error": "Erreur de sauvegarde : " + bulkErr.Err.Error(),
			"index": bulkErr.Index,
			"item":  bulkErr.Item,
		})
	case errors.Is(err, service.ErrInvalidOverride):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondInternal(c, "Erreur de sauvegarde", err)
	}
}
