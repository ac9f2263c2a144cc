package service

import (
	"context"
	"errors"
	"testing"

	"moviereviews/internal/cache"
	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/models"
	"moviereviews/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewServiceWithMocks() (*reviewService, *MockMovieRepository, *MockReviewRepository, *MockScoreCache, *fakeUnitOfWork) {
	movieRepo := new(MockMovieRepository)
	reviewRepo := new(MockReviewRepository)
	scores := new(MockScoreCache)
	uow := &fakeUnitOfWork{repos: repository.Repositories{Movies: movieRepo, Reviews: reviewRepo}}
	svc := NewReviewService(uow, reviewRepo, scores, discardLogger()).(*reviewService)
	return svc, movieRepo, reviewRepo, scores, uow
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{9}, 9},
		{"whole mean", []int{8, 9, 10}, 9.0},
		{"half", []int{7, 8}, 7.5},
		{"repeating", []int{1, 2, 2}, 1.67},
		{"two thirds", []int{10, 10, 9}, 9.67},
		{"exact half rounds to even", []int{8, 8, 8, 8, 8, 8, 8, 9}, 8.12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageScore(tt.scores))
		})
	}
}

func TestCreateReview_Success(t *testing.T) {
	svc, movieRepo, reviewRepo, scores, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	movieRepo.On("FindByID", ctx, int64(1)).Return(&models.Movie{ID: 1, Title: "Dune"}, nil)
	reviewRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.Name == "Ann" && r.Text == "Great film" && r.Score == 9 && r.MovieID == 1
	})).Return(nil)
	scores.On("Invalidate", ctx, int64(1)).Return()

	review, err := svc.CreateReview(ctx, 1, dto.ReviewForm{Name: "Ann", Text: "Great film", Score: "9"})

	require.NoError(t, err)
	assert.Equal(t, 9, review.Score)
	movieRepo.AssertExpectations(t)
	reviewRepo.AssertExpectations(t)
	scores.AssertExpectations(t)
}

func TestCreateReview_MovieNotFound(t *testing.T) {
	svc, movieRepo, reviewRepo, scores, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	movieRepo.On("FindByID", ctx, int64(999)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateReview(ctx, 999, dto.ReviewForm{Name: "Ann", Text: "Great film", Score: "9"})

	assert.ErrorIs(t, err, ErrMovieNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	scores.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCreateReview_CommitFailure(t *testing.T) {
	svc, movieRepo, reviewRepo, scores, uow := newReviewServiceWithMocks()
	ctx := context.Background()
	uow.commitErr = errors.New("commit failed")

	movieRepo.On("FindByID", ctx, int64(1)).Return(&models.Movie{ID: 1}, nil)
	reviewRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateReview(ctx, 1, dto.ReviewForm{Name: "Ann", Text: "Great film", Score: "9"})

	assert.EqualError(t, err, "commit failed")
	scores.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDeleteReview_Success(t *testing.T) {
	svc, _, reviewRepo, scores, uow := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("FindByID", ctx, int64(5)).Return(&models.Review{ID: 5, MovieID: 2}, nil)
	reviewRepo.On("Delete", ctx, int64(5)).Return(nil)
	scores.On("Invalidate", ctx, int64(2)).Return()

	err := svc.DeleteReview(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, 1, uow.calls)
	reviewRepo.AssertExpectations(t)
	scores.AssertExpectations(t)
}

func TestDeleteReview_NotFound(t *testing.T) {
	svc, _, reviewRepo, _, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("FindByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)

	err := svc.DeleteReview(ctx, 5)

	assert.ErrorIs(t, err, ErrReviewNotFound)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReview_CommitFailure(t *testing.T) {
	svc, _, reviewRepo, scores, uow := newReviewServiceWithMocks()
	ctx := context.Background()
	uow.commitErr = errors.New("commit failed")

	reviewRepo.On("FindByID", ctx, int64(5)).Return(&models.Review{ID: 5, MovieID: 2}, nil)
	reviewRepo.On("Delete", ctx, int64(5)).Return(nil)

	err := svc.DeleteReview(ctx, 5)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrReviewNotFound)
	scores.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestAverageScore_CacheHit(t *testing.T) {
	svc, _, reviewRepo, scores, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	scores.On("Get", ctx, int64(1)).Return(8.5, true)

	avg, err := svc.AverageScore(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 8.5, avg)
	reviewRepo.AssertNotCalled(t, "ScoresByMovie", mock.Anything, mock.Anything)
}

func TestAverageScore_CacheMiss(t *testing.T) {
	svc, _, reviewRepo, scores, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	scores.On("Get", ctx, int64(1)).Return(0.0, false)
	reviewRepo.On("ScoresByMovie", ctx, int64(1)).Return([]int{8, 9, 10}, nil)
	scores.On("Set", ctx, int64(1), 9.0).Return()

	avg, err := svc.AverageScore(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 9.0, avg)
	scores.AssertExpectations(t)
}

func TestAverageScore_NoopCache(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(&fakeUnitOfWork{}, reviewRepo, cache.NoopScoreCache{}, discardLogger())
	ctx := context.Background()

	reviewRepo.On("ScoresByMovie", ctx, int64(3)).Return([]int{}, nil)

	avg, err := svc.AverageScore(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}
