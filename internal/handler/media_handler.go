package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/imaging"
	"github.com/reflet/internal/service"
	"github.com/reflet/internal/storage"
)

type mediaDeletePayload struct {
	Path string `json:"path"`
}

// ShowMediaLibrary renders the media manager.
func (a *API) ShowMediaLibrary(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "media.html", gin.H{
		"title":   "Médiathèque",
		"folders": service.MediaFolders,
		"folder":  c.Query("folder"),
	})
}

// ListMedia lists one folder, or every folder when none is given.
func (a *API) ListMedia(c *gin.Context) {
	if a.media == nil {
		respondError(c, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	items, err := a.media.List(c.Request.Context(), c.Query("folder"), c.Query("search"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidFolder) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(c, "Impossible de lister les fichiers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// UploadMedia runs the uploaded image through the pipeline and stores it.
func (a *API) UploadMedia(c *gin.Context) {
	if a.media == nil {
		respondError(c, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Aucun fichier reçu")
		return
	}

	file := imaging.FileFromHeader(header)
	if err := a.media.Pipeline().Validate(file); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	body, err := header.Open()
	if err != nil {
		respondInternal(c, "Lecture du fichier impossible", err)
		return
	}
	defer body.Close()

	asset, err := a.media.Upload(c.Request.Context(), service.MediaUpload{
		Folder:    c.PostForm("folder"),
		File:      file,
		Body:      body,
		Thumbnail: formFlag(c, "thumbnail"),
		Optimize:  formFlag(c, "optimize"),
	})
	if err != nil {
		var decodeErr *imaging.DecodeError
		switch {
		case errors.Is(err, imaging.ErrNotAnImage), errors.Is(err, imaging.ErrTooLarge), errors.Is(err, service.ErrInvalidFolder):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &decodeErr):
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			respondInternal(c, "Erreur lors de l'upload", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploadée", "item": asset})
}

// DeleteMedia removes an object by its storage path.
func (a *API) DeleteMedia(c *gin.Context) {
	if a.media == nil {
		respondError(c, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	var payload mediaDeletePayload
	if !bindJSON(c, &payload, "Chemin manquant") {
		return
	}

	if err := a.media.Remove(c.Request.Context(), payload.Path); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidPath):
			respondError(c, http.StatusBadRequest, "Chemin invalide")
		case errors.Is(err, storage.ErrObjectNotFound):
			respondError(c, http.StatusNotFound, "Fichier introuvable")
		default:
			respondInternal(c, "Erreur de suppression", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée"})
}

func formFlag(c *gin.Context, key string) bool {
	v := c.PostForm(key)
	return v == "true" || v == "1"
}
