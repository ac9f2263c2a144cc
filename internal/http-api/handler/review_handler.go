package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews service.ReviewService
	timeout time.Duration
	logger  *slog.Logger
}

func NewReviewHandler(reviews service.ReviewService, timeout time.Duration, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		timeout: timeout,
		logger:  logger,
	}
}

func (h *ReviewHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/reviews", h.List)
	r.POST("/delete_review/:id", h.Delete)
	// plain links from older pages still use GET
	r.GET("/delete_review/:id", h.Delete)
}

// List renders all reviews, most recent first
// GET /reviews
func (h *ReviewHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviews.ListReviews(ctx)
	if err != nil {
		h.logger.Error("list reviews failed", "error", err)
		serverError(c)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, dto.FromModelToReviewResponse(r))
	}

	c.HTML(http.StatusOK, "reviews.html", gin.H{
		"reviews": resp,
	})
}

// Delete removes a review and redirects to the review list
// POST /delete_review/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		notFound(c, "Review not found.")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.reviews.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			notFound(c, "Review not found.")
			return
		}
		h.logger.Error("delete review failed", "review_id", id, "error", err)
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/reviews")
}
