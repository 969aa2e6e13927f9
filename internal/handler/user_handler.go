package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
)

type userPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type rolePayload struct {
	Role string `json:"role"`
}

type userView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ShowUsers renders the account management page.
func (a *API) ShowUsers(c *gin.Context) {
	users, err := a.users.List()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "users.html", gin.H{"title": "Utilisateurs", "error": "Impossible de charger les utilisateurs"})
		return
	}
	a.renderHTML(c, http.StatusOK, "users.html", gin.H{"title": "Utilisateurs", "items": users})
}

// ListUsers returns every account without password hashes.
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.users.List()
	if err != nil {
		respondInternal(c, "Impossible de charger les utilisateurs", err)
		return
	}
	items := make([]userView, 0, len(users))
	for _, u := range users {
		items = append(items, userView{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateUser adds an account.
func (a *API) CreateUser(c *gin.Context) {
	var payload userPayload
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	user, err := a.users.Create(payload.Email, payload.Password, payload.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur créé", "item": userView{ID: user.ID, Email: user.Email, Role: user.Role}})
}

// SetUserRole changes the role of an account.
func (a *API) SetUserRole(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	var payload rolePayload
	if !bindJSON(c, &payload, "Paramètres invalides") {
		return
	}
	user, err := a.users.SetRole(id, payload.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour", "item": userView{ID: user.ID, Email: user.Email, Role: user.Role}})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "Utilisateur introuvable")
	case errors.Is(err, service.ErrUserExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, "Rôle invalide")
	case errors.Is(err, service.ErrLastAdmin):
		respondError(c, http.StatusConflict, "Il faut au moins un administrateur")
	default:
		respondInternal(c, "Erreur", err)
	}
}
