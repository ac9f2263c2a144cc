// Package web holds the HTML templates, compiled into the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template together with the shared layout.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":  formatDate,
		"formatScore": FormatScore,
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// FormatScore prints 0 for an unrated movie, 9.0 for whole averages and the
// shortest form otherwise (8.67).
func FormatScore(avg float64) string {
	switch {
	case avg == 0:
		return "0"
	case avg == math.Trunc(avg):
		return fmt.Sprintf("%.1f", avg)
	default:
		return strconv.FormatFloat(avg, 'f', -1, 64)
	}
}
