package server

import (
	"fmt"
	"log/slog"
	"time"

	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/handler"
	"moviereviews/internal/http-api/service"
	"moviereviews/internal/storage/posters"
	"moviereviews/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs, built once at startup.
type Deps struct {
	Logger         *slog.Logger
	Movies         service.MovieService
	Reviews        service.ReviewService
	Posters        posters.Store
	Ping           func() error
	UploadMaxBytes int64
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// NewRouter wires middleware, templates and every route of the site.
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: d.CORSOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(tmpl)

	handler.NewMovieHandler(d.Movies, d.Reviews, d.UploadMaxBytes, d.RequestTimeout, d.Logger).RegisterRoutes(r)
	handler.NewReviewHandler(d.Reviews, d.RequestTimeout, d.Logger).RegisterRoutes(r)
	handler.NewPosterHandler(d.Posters, d.Logger).RegisterRoutes(r)
	handler.NewHealthHandler(d.Ping).RegisterRoutes(r)

	return r, nil
}
