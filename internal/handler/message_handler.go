package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/service"
)

// ShowMessages renders the contact message inbox.
func (a *API) ShowMessages(c *gin.Context) {
	items, err := a.contacts.List()
	if err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "messages.html", gin.H{"title": "Messages", "error": "Impossible de charger les messages"})
		return
	}
	a.renderHTML(c, http.StatusOK, "messages.html", gin.H{"title": "Messages", "items": items})
}

// ListMessages returns messages newest first.
func (a *API) ListMessages(c *gin.Context) {
	items, err := a.contacts.List()
	if err != nil {
		respondInternal(c, "Impossible de charger les messages", err)
		return
	}
	unread, err := a.contacts.CountUnread()
	if err != nil {
		respondInternal(c, "Impossible de charger les messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "unread": unread})
}

// MarkMessageRead flags a message as read.
func (a *API) MarkMessageRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	item, err := a.contacts.MarkRead(id)
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message lu", "item": item})
}

// DeleteMessage removes a message.
func (a *API) DeleteMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identifiant invalide")
		return
	}
	if err := a.contacts.Delete(id); err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message supprimé"})
}

func respondMessageError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrMessageNotFound) {
		respondError(c, http.StatusNotFound, "Message introuvable")
		return
	}
	respondInternal(c, "Erreur", err)
}
