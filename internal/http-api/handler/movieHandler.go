package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movies   service.MovieService
	reviews  service.ReviewService
	maxImage int64
	timeout  time.Duration
	logger   *slog.Logger
}

func NewMovieHandler(movies service.MovieService, reviews service.ReviewService, maxImage int64, timeout time.Duration, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		movies:   movies,
		reviews:  reviews,
		maxImage: maxImage,
		timeout:  timeout,
		logger:   logger,
	}
}

func (h *MovieHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.List)
	r.GET("/movie/:id", h.Show)
	r.POST("/movie/:id", h.SubmitReview)
	r.GET("/add_movie", h.NewForm)
	r.POST("/add_movie", h.Create)
}

// List renders every movie, newest first
// GET /
func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	movies, err := h.movies.ListMovies(ctx)
	if err != nil {
		h.logger.Error("list movies failed", "error", err)
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"movies": movies,
	})
}

// Show renders a movie with its average score and an empty review form
// GET /movie/:id
func (h *MovieHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		notFound(c, "Movie not found.")
		return
	}
	h.renderMovie(c, id, http.StatusOK, dto.NewReviewFormView())
}

// SubmitReview validates and stores a review, then redirects back to the movie
// POST /movie/:id
func (h *MovieHandler) SubmitReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		notFound(c, "Movie not found.")
		return
	}

	var form dto.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		errs := dto.TranslateBindError(err)
		h.renderMovie(c, id, http.StatusBadRequest, dto.ReviewFormViewWithErrors(form, errs))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if _, err := h.reviews.CreateReview(ctx, id, form); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			notFound(c, "Movie not found.")
			return
		}
		h.logger.Error("create review failed", "movie_id", id, "error", err)
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/movie/%d", id))
}

func (h *MovieHandler) renderMovie(c *gin.Context, id int64, status int, form dto.ReviewFormView) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	detail, err := h.movies.GetMovieDetail(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			notFound(c, "Movie not found.")
			return
		}
		h.logger.Error("load movie failed", "movie_id", id, "error", err)
		serverError(c)
		return
	}

	c.HTML(status, "movie.html", gin.H{
		"movie":     dto.FromModelToDetailResponse(detail.Movie),
		"avg_score": detail.AvgScore,
		"form":      form,
	})
}

// NewForm renders the empty add-movie form
// GET /add_movie
func (h *MovieHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_movie.html", gin.H{
		"form": dto.NewMovieFormView(),
	})
}

// Create validates the form, stores the poster and the movie, then redirects to it
// POST /add_movie
func (h *MovieHandler) Create(c *gin.Context) {
	var form dto.MovieForm
	errs := dto.FieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = dto.TranslateBindError(err)
	}

	image := h.formFile(c, "image")
	dto.ValidateFile(errs, "image", image, dto.MovieImageRules(h.maxImage)...)

	if errs.Any() {
		c.HTML(http.StatusBadRequest, "add_movie.html", gin.H{
			"form": dto.MovieFormViewWithErrors(form, errs),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	movie, err := h.movies.CreateMovie(ctx, form.WithImage(image))
	if err != nil {
		h.logger.Error("create movie failed", "title", form.Title, "error", err)
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/movie/%d", movie.ID))
}

// formFile returns the uploaded file or nil when the field is absent.
func (h *MovieHandler) formFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			h.logger.Debug("reading upload failed", "field", field, "error", err)
		}
		return nil
	}
	return fh
}
