package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
)

// ShowProductManagement renders the boutique admin page.
func (a *API) ShowProductManagement(c *gin.Context) {
	items, err := a.products.ListAll()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "products_manage.html", gin.H{"title": "Boutique", "error": "Impossible de charger les produits"})
		return
	}
	a.renderHTML(c, http.StatusOK, "products_manage.html", gin.H{
		"title":      "Boutique",
		"items":      items,
		"categories": service.ProductCategories,
	})
}

// ListProducts returns every product.
func (a *API) ListProducts(c *gin.Context) {
	items, err := a.products.ListAll()
	if err != nil {
		respondInternal(c, "Impossible de charger les produits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateProduct adds a product.
func (a *API) CreateProduct(c *gin.Context) {
	var payload service.ProductInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	item, err := a.products.Create(payload)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit ajouté", "item": item})
}

// UpdateProduct modifies a product.
func (a *API) UpdateProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	var payload service.ProductInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	item, err := a.products.Update(id, payload)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour", "item": item})
}

// DeleteProduct removes a product.
func (a *API) DeleteProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	if err := a.products.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Produit introuvable")
	case errors.Is(err, service.ErrProductNameMissing):
		respondError(c, http.StatusBadRequest, "Le nom est obligatoire")
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, http.StatusBadRequest, "Prix invalide")
	case errors.Is(err, service.ErrProductCategoryInvalid):
		respondError(c, http.StatusBadRequest, "Catégorie invalide")
	default:
		respondInternal(c, "Erreur de sauvegarde", err)
	}
}
