package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"

	"moviereviews/internal/http-api/models"
	"moviereviews/internal/http-api/repository"
	"moviereviews/internal/storage/posters"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMovieRepository mocks the MovieRepository interface
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindByIDWithReviews(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) ScoresByMovie(ctx context.Context, movieID int64) ([]int, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockPosterStore mocks posters.Store
type MockPosterStore struct {
	mock.Mock
}

func (m *MockPosterStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockPosterStore) Open(ctx context.Context, name string) (*posters.Object, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posters.Object), args.Error(1)
}

func (m *MockPosterStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockScoreCache mocks cache.ScoreCache
type MockScoreCache struct {
	mock.Mock
}

func (m *MockScoreCache) Get(ctx context.Context, movieID int64) (float64, bool) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(float64), args.Bool(1)
}

func (m *MockScoreCache) Set(ctx context.Context, movieID int64, avg float64) {
	m.Called(ctx, movieID, avg)
}

func (m *MockScoreCache) Invalidate(ctx context.Context, movieID int64) {
	m.Called(ctx, movieID)
}

// fakeUnitOfWork runs fn against the given repositories and returns
// commitErr afterwards when fn succeeded, standing in for a failed commit.
type fakeUnitOfWork struct {
	repos     repository.Repositories
	commitErr error
	calls     int
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	u.calls++
	if err := fn(u.repos); err != nil {
		return err
	}
	return u.commitErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fileHeader builds a real multipart.FileHeader for an upload named filename.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}
