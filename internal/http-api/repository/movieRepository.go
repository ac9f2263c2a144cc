package repository

import (
	"context"
	"errors"
	"fmt"

	"moviereviews/internal/http-api/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every lookup whose row does not exist.
var ErrNotFound = errors.New("record not found")

type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	FindByID(ctx context.Context, id int64) (*models.Movie, error)
	FindByIDWithReviews(ctx context.Context, id int64) (*models.Movie, error)
	ListAll(ctx context.Context) ([]models.Movie, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	// GORM populates movie.ID
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// FindByIDWithReviews loads the movie together with its reviews in insertion order.
func (r *movieRepository) FindByIDWithReviews(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("review.id ASC")
		}).
		First(&m, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// ListAll returns every movie, newest first.
func (r *movieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return list, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
