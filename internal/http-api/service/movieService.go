package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"moviereviews/internal/http-api/dto"
	"moviereviews/internal/http-api/models"
	"moviereviews/internal/http-api/repository"
	"moviereviews/internal/storage/posters"
)

// MovieDetail is a movie with its reviews and average score.
type MovieDetail struct {
	Movie    models.Movie
	AvgScore float64
}

type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovieDetail(ctx context.Context, id int64) (*MovieDetail, error)
	CreateMovie(ctx context.Context, in dto.NewMovie) (*models.Movie, error)
}

// AverageScorer is the part of ReviewService the movie page needs.
type AverageScorer interface {
	AverageScore(ctx context.Context, movieID int64) (float64, error)
}

type movieService struct {
	uow     repository.UnitOfWork
	movies  repository.MovieRepository
	posters posters.Store
	scorer  AverageScorer
	logger  *slog.Logger
}

func NewMovieService(uow repository.UnitOfWork, movies repository.MovieRepository, store posters.Store, scorer AverageScorer, logger *slog.Logger) MovieService {
	return &movieService{
		uow:     uow,
		movies:  movies,
		posters: store,
		scorer:  scorer,
		logger:  logger,
	}
}

func (s *movieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.movies.ListAll(ctx)
}

func (s *movieService) GetMovieDetail(ctx context.Context, id int64) (*MovieDetail, error) {
	m, err := s.movies.FindByIDWithReviews(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	avg, err := s.scorer.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MovieDetail{Movie: *m, AvgScore: avg}, nil
}

// CreateMovie stores the poster and inserts the movie as one unit: the poster
// is written inside the insert transaction and removed again if the insert or
// the commit fails.
func (s *movieService) CreateMovie(ctx context.Context, in dto.NewMovie) (*models.Movie, error) {
	if in.Image == nil {
		return nil, errors.New("poster is required")
	}

	var (
		movie  models.Movie
		stored string
	)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		f, err := in.Image.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		name, err := s.posters.Save(ctx, in.Image.Filename, f)
		if err != nil {
			return fmt.Errorf("store poster: %w", err)
		}
		stored = name

		movie = in.ToModel(name)
		return repos.Movies.Create(ctx, &movie)
	})
	if err != nil {
		if stored != "" {
			// the request context may already be done, cleanup must still run
			if rmErr := s.posters.Remove(context.WithoutCancel(ctx), stored); rmErr != nil {
				s.logger.Error("failed to remove orphaned poster", "image", stored, "error", rmErr)
			}
		}
		return nil, err
	}

	s.logger.Info("movie created", "movie_id", movie.ID, "image", movie.Image)
	return &movie, nil
}
