package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"moviereviews/internal/cache"
	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/models"
	"moviereviews/internal/http-api/repository"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewService interface {
	CreateReview(ctx context.Context, movieID int64, form dto.ReviewForm) (*models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	DeleteReview(ctx context.Context, reviewID int64) error
	AverageScore(ctx context.Context, movieID int64) (float64, error)
}

type reviewService struct {
	uow     repository.UnitOfWork
	reviews repository.ReviewRepository
	scores  cache.ScoreCache
	logger  *slog.Logger
}

func NewReviewService(uow repository.UnitOfWork, reviews repository.ReviewRepository, scores cache.ScoreCache, logger *slog.Logger) ReviewService {
	return &reviewService{
		uow:     uow,
		reviews: reviews,
		scores:  scores,
		logger:  logger,
	}
}

// CreateReview stores a validated review for an existing movie
func (s *reviewService) CreateReview(ctx context.Context, movieID int64, form dto.ReviewForm) (*models.Review, error) {
	review, err := form.ToModel(movieID)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Movies.FindByID(ctx, movieID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrMovieNotFound
			}
			return err
		}
		return repos.Reviews.Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	s.scores.Invalidate(ctx, movieID)
	s.logger.Info("review created", "review_id", review.ID, "movie_id", movieID, "score", review.Score)
	return review, nil
}

// ListReviews returns all reviews, most recent first
func (s *reviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListAll(ctx)
}

// DeleteReview removes one review; the movie's other reviews are untouched
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64) error {
	var movieID int64
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		review, err := repos.Reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		movieID = review.MovieID

		if err := repos.Reviews.Delete(ctx, reviewID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.scores.Invalidate(ctx, movieID)
	s.logger.Info("review deleted", "review_id", reviewID, "movie_id", movieID)
	return nil
}

// AverageScore returns the movie's rounded average, served from cache when possible
func (s *reviewService) AverageScore(ctx context.Context, movieID int64) (float64, error) {
	if avg, ok := s.scores.Get(ctx, movieID); ok {
		return avg, nil
	}

	scores, err := s.reviews.ScoresByMovie(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	avg := AverageScore(scores)
	s.scores.Set(ctx, movieID, avg)
	return avg, nil
}
