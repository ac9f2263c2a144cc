package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CreatedDate time.Time `json:"created_date" gorm:"column:created_date;not null;index"`
	Score       int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	MovieID     int64     `json:"movie_id" gorm:"not null;index"`

	// Associations
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (Review) TableName() string {
	return "review"
}

// BeforeCreate stamps CreatedDate in UTC when the caller left it empty.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedDate.IsZero() {
		r.CreatedDate = time.Now().UTC()
	}
	return nil
}
