package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
	"github.com/reflet/internal/view"
)

// ShowProjectManagement renders the projects admin page.
func (a *API) ShowProjectManagement(c *gin.Context) {
	items, err := a.projects.ListAll()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "projects_manage.html", gin.H{"title": "Projets", "error": "Impossible de charger les projets"})
		return
	}
	a.renderHTML(c, http.StatusOK, "projects_manage.html", gin.H{
		"title":  "Projets",
		"items":  items,
		"icons":  view.ProjectIconOptions(),
		"colors": view.ProjectColorOptions(),
	})
}

// ListProjects returns every project with the selectable icons and colours.
func (a *API) ListProjects(c *gin.Context) {
	items, err := a.projects.ListAll()
	if err != nil {
		respondInternal(c, "Impossible de charger les projets", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"icons":  view.ProjectIconOptions(),
		"colors": view.ProjectColorOptions(),
	})
}

// CreateProject adds a project.
func (a *API) CreateProject(c *gin.Context) {
	var payload service.ProjectInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	item, err := a.projects.Create(payload)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projet ajouté", "item": item})
}

// UpdateProject modifies a project.
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	var payload service.ProjectInput
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	item, err := a.projects.Update(id, payload)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projet mis à jour", "item": item})
}

// DeleteProject removes a project.
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	if err := a.projects.Delete(id); err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projet supprimé"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "Projet introuvable")
	case errors.Is(err, service.ErrProjectTitleMissing):
		respondError(c, http.StatusBadRequest, "Le titre est obligatoire")
	case errors.Is(err, service.ErrProjectIconInvalid):
		respondError(c, http.StatusBadRequest, "Icône invalide")
	case errors.Is(err, service.ErrProjectColorInvalid):
		respondError(c, http.StatusBadRequest, "Couleur invalide")
	default:
		respondInternal(c, "Erreur de sauvegarde", err)
	}
}
