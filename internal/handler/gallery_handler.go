package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
)

// ShowGalleryManagement renders admin gallery management page.
func (a *API) ShowGalleryManagement(c *gin.Context) {
	result, err := a.galleries.List(service.GalleryFilter{Category: c.Query("category"), Search: c.Query("search"), PerPage: 200})
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "gallery_manage.html", gin.H{
			"title": "Galerie",
			"error": "Impossible de charger la galerie",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "gallery_manage.html", gin.H{
		"title":      "Galerie",
		"items":      result.Items,
		"categories": service.GalleryCategories,
		"category":   c.Query("category"),
	})
}

// ListGalleryImages returns gallery images, filtered and paginated.
func (a *API) ListGalleryImages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	result, err := a.galleries.List(service.GalleryFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		respondInternal(c, "Impossible de charger la galerie", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"page":       result.Page,
		"totalPages": result.TotalPages,
	})
}

// CreateGalleryImage creates a new gallery image.
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload service.GalleryInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}

	item, err := a.galleries.Create(payload)
	if err != nil {
		respondGalleryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image ajoutée", "item": item})
}

// UpdateGalleryImage updates an existing gallery image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	var payload service.GalleryInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}

	item, err := a.galleries.Update(id, payload)
	if err != nil {
		respondGalleryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image mise à jour", "item": item})
}

// DeleteGalleryImage removes a gallery image.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := a.galleries.Delete(id); err != nil {
		respondGalleryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée"})
}

func respondGalleryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGalleryNotFound):
		respondError(c, http.StatusNotFound, "Image introuvable")
	case errors.Is(err, service.ErrGalleryImageMissing):
		respondError(c, http.StatusBadRequest, "Veuillez choisir une image")
	case errors.Is(err, service.ErrGalleryCategoryInvalid):
		respondError(c, http.StatusBadRequest, "Catégorie invalide")
	default:
		respondInternal(c, "Erreur de sauvegarde", err)
	}
}
