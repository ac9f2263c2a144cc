package dto

import (
	"mime/multipart"

	"moviereviews/internal/http-api/models"
)

// MovieForm is the text part of the add-movie schema; the poster is checked
// with MovieImageRules since it arrives as a multipart file.
type MovieForm struct {
	Title       string `form:"title" binding:"required,notblank,max=255"`
	Description string `form:"description" binding:"required,notblank"`
}

// MovieImageRules are the constraints on the "image" upload.
func MovieImageRules(maxBytes int64) []FileRule {
	return []FileRule{
		FileRequired(),
		FileAllowed(AllowedImageExtensions...),
		FileMaxSize(maxBytes),
	}
}

// NewMovie is a validated add-movie submission handed to the service.
type NewMovie struct {
	Title       string
	Description string
	Image       *multipart.FileHeader
}

func (f MovieForm) WithImage(fh *multipart.FileHeader) NewMovie {
	return NewMovie{Title: f.Title, Description: f.Description, Image: fh}
}

// ToModel builds the movie row once the poster has been stored as imageName
func (n NewMovie) ToModel(imageName string) models.Movie {
	return models.Movie{
		Title:       n.Title,
		Description: n.Description,
		Image:       imageName,
	}
}

// MovieFormView is what add_movie.html receives as "form".
type MovieFormView struct {
	MovieForm
	Errors FieldErrors
}

func NewMovieFormView() MovieFormView {
	return MovieFormView{Errors: FieldErrors{}}
}

func MovieFormViewWithErrors(f MovieForm, errs FieldErrors) MovieFormView {
	return MovieFormView{MovieForm: f, Errors: errs}
}

// MovieDetailResponse is the movie shown on movie.html
type MovieDetailResponse struct {
	ID          int64
	Title       string
	Description string
	Image       string
	Reviews     []ReviewResponse
}

// FromModelToDetailResponse converts a Movie model, reviews included
func FromModelToDetailResponse(m models.Movie) MovieDetailResponse {
	reviews := make([]ReviewResponse, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		resp := FromModelToReviewResponse(r)
		resp.MovieTitle = m.Title
		reviews = append(reviews, resp)
	}
	return MovieDetailResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		Reviews:     reviews,
	}
}
