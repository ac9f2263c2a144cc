package repository

import (
	"context"
	"fmt"

	"moviereviews/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	Delete(ctx context.Context, id int64) error
	ScoresByMovie(ctx context.Context, movieID int64) ([]int, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// FindByID retrieves a review by its ID
func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

// ListAll retrieves every review, most recent first, with its movie
func (r *reviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Order("created_date DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review by its ID
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ScoresByMovie returns the scores of a movie's reviews in insertion order
func (r *reviewRepository) ScoresByMovie(ctx context.Context, movieID int64) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("movie_id = ?", movieID).
		Order("id ASC").
		Pluck("score", &scores).Error
	if err != nil {
		return nil, fmt.Errorf("scores for movie %d: %w", movieID, err)
	}
	return scores, nil
}
