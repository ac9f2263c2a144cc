package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"moviereviews/internal/storage/posters"

	"github.com/gin-gonic/gin"
)

// PosterHandler streams poster images out of the poster store.
type PosterHandler struct {
	store  posters.Store
	logger *slog.Logger
}

func NewPosterHandler(store posters.Store, logger *slog.Logger) *PosterHandler {
	return &PosterHandler{store: store, logger: logger}
}

func (h *PosterHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/static/images/*filepath", h.Get)
}

// Get serves one poster
// GET /static/images/*filepath
func (h *PosterHandler) Get(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")

	obj, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, posters.ErrNotFound) || errors.Is(err, posters.ErrInvalidName) {
			notFound(c, "Image not found.")
			return
		}
		h.logger.Error("open poster failed", "image", name, "error", err)
		serverError(c)
		return
	}
	defer obj.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
}
