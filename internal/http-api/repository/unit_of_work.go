package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one database handle.
type Repositories struct {
	Movies  MovieRepository
	Reviews ReviewRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Movies:  NewMovieRepository(db),
		Reviews: NewReviewRepository(db),
	}
}

// UnitOfWork runs fn against repositories scoped to a single transaction.
// A non-nil error from fn, or a failed commit, rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
