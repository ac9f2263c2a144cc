package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// renderError shows error.html with the given status instead of a crash page.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"status":  status,
		"title":   http.StatusText(status),
		"message": message,
	})
}

func notFound(c *gin.Context, message string) {
	renderError(c, http.StatusNotFound, message)
}

func serverError(c *gin.Context) {
	renderError(c, http.StatusInternalServerError, "Something went wrong, your changes were not saved.")
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
