package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/service"
)

// ShowLoginPage renders the login form. Signed-in users go straight to the dashboard.
func (a *API) ShowLoginPage(c *gin.Context) {
	if _, ok := a.auth.Current(c); ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title":  "Connexion",
		"error":  c.Query("error"),
		"notice": c.Query("notice"),
	})
}

// Login checks the credentials and opens a session.
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := a.users.Authenticate(email, password)
	if err != nil {
		status := http.StatusUnauthorized
		message := service.ErrInvalidCredentials.Error()
		if !errors.Is(err, service.ErrInvalidCredentials) {
			_ = c.Error(err)
			status = http.StatusInternalServerError
			message = "Connexion impossible, veuillez réessayer"
		}
		a.renderHTML(c, status, "login.html", gin.H{"title": "Connexion", "error": message, "email": email})
		return
	}

	if err := a.auth.SignIn(c, auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role, Epoch: user.SessionEpoch}); err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{"title": "Connexion", "error": "La session n'a pas pu être enregistrée"})
		return
	}

	a.logger.Info().Uint("user_id", user.ID).Msg("admin signed in")
	c.Redirect(http.StatusFound, "/admin")
}

// Logout closes the session.
func (a *API) Logout(c *gin.Context) {
	if err := a.auth.SignOut(c); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowForgotPassword renders the reset request form.
func (a *API) ShowForgotPassword(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "forgot_password.html", gin.H{"title": "Mot de passe oublié"})
}

// ForgotPassword sends a reset link. The answer is the same whether or not the
// email belongs to an account.
func (a *API) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if err := a.users.RequestPasswordReset(c.Request.Context(), email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			a.renderHTML(c, http.StatusBadRequest, "forgot_password.html", gin.H{"title": "Mot de passe oublié", "error": err.Error(), "email": email})
			return
		}
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "forgot_password.html", gin.H{"title": "Mot de passe oublié", "error": "L'email n'a pas pu être envoyé"})
		return
	}

	a.renderHTML(c, http.StatusOK, "forgot_password.html", gin.H{
		"title":  "Mot de passe oublié",
		"notice": "Si un compte existe pour cette adresse, un lien de réinitialisation vient d'être envoyé.",
	})
}

// ShowResetPassword renders the new password form for a reset link.
func (a *API) ShowResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, "/admin/forgot-password")
		return
	}
	a.renderHTML(c, http.StatusOK, "reset_password.html", gin.H{"title": "Nouveau mot de passe", "token": token})
}

// ResetPassword stores the new password and signs out every session of the user.
func (a *API) ResetPassword(c *gin.Context) {
	token := c.PostForm("token")
	password := c.PostForm("password")
	if password != c.PostForm("password_confirm") {
		a.renderHTML(c, http.StatusBadRequest, "reset_password.html", gin.H{
			"title": "Nouveau mot de passe",
			"token": token,
			"error": "Les mots de passe ne correspondent pas",
		})
		return
	}

	if _, err := a.users.ResetPassword(c.Request.Context(), token, password); err != nil {
		status := http.StatusBadRequest
		message := err.Error()
		switch {
		case errors.Is(err, service.ErrWeakPassword):
		case errors.Is(err, auth.ErrInvalidResetToken):
			message = auth.ErrInvalidResetToken.Error()
		default:
			_ = c.Error(err)
			status = http.StatusInternalServerError
			message = "Le mot de passe n'a pas pu être modifié"
		}
		a.renderHTML(c, status, "reset_password.html", gin.H{"title": "Nouveau mot de passe", "token": token, "error": message})
		return
	}

	c.Redirect(http.StatusFound, "/admin/login?notice=Mot+de+passe+modifi%C3%A9")
}

// ShowDashboard renders the admin home page.
func (a *API) ShowDashboard(c *gin.Context) {
	overview, err := a.dashboard.Overview()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Tableau de bord",
			"error": "Les statistiques n'ont pas pu être chargées",
			"pages": a.content.Schema().Pages(),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":    "Tableau de bord",
		"overview": overview,
		"pages":    a.content.Schema().Pages(),
	})
}

// GetDashboard returns the dashboard counters as JSON.
func (a *API) GetDashboard(c *gin.Context) {
	overview, err := a.dashboard.Overview()
	if err != nil {
		respondInternal(c, "Chargement impossible", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
