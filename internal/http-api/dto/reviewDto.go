package dto

import (
	"fmt"
	"strconv"
	"time"

	"moviereviews/internal/http-api/models"
)

// DefaultScore is preselected on an empty review form.
const DefaultScore = "10"

// ReviewForm is the review submission schema on the movie page.
type ReviewForm struct {
	Name  string `form:"name" binding:"required,notblank,max=255"`
	Text  string `form:"text" binding:"required,notblank"`
	Score string `form:"score" binding:"required,oneof=1 2 3 4 5 6 7 8 9 10"`
}

// ToModel builds the review for movieID from a validated form
func (f ReviewForm) ToModel(movieID int64) (*models.Review, error) {
	score, err := strconv.Atoi(f.Score)
	if err != nil {
		return nil, fmt.Errorf("score %q: %w", f.Score, err)
	}
	return &models.Review{
		Name:    f.Name,
		Text:    f.Text,
		Score:   score,
		MovieID: movieID,
	}, nil
}

// ReviewFormView is what movie.html receives as "form".
type ReviewFormView struct {
	ReviewForm
	Errors       FieldErrors
	ScoreChoices []string
}

func scoreChoices() []string {
	choices := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		choices = append(choices, strconv.Itoa(i))
	}
	return choices
}

// NewReviewFormView returns an empty form with the default score selected
func NewReviewFormView() ReviewFormView {
	return ReviewFormView{
		ReviewForm:   ReviewForm{Score: DefaultScore},
		Errors:       FieldErrors{},
		ScoreChoices: scoreChoices(),
	}
}

// ReviewFormViewWithErrors re-renders submitted values next to their errors
func ReviewFormViewWithErrors(f ReviewForm, errs FieldErrors) ReviewFormView {
	if f.Score == "" {
		f.Score = DefaultScore
	}
	return ReviewFormView{ReviewForm: f, Errors: errs, ScoreChoices: scoreChoices()}
}

// ReviewResponse is a review row on the reviews page
type ReviewResponse struct {
	ID          int64
	Name        string
	Text        string
	Score       int
	CreatedDate time.Time
	MovieID     int64
	MovieTitle  string
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(r models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:          r.ID,
		Name:        r.Name,
		Text:        r.Text,
		Score:       r.Score,
		CreatedDate: r.CreatedDate,
		MovieID:     r.MovieID,
	}
	if r.Movie != nil {
		resp.MovieTitle = r.Movie.Title
	}
	return resp
}
