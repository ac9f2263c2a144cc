package models

type Movie struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Image       string `json:"image" gorm:"size:255;not null"`

	// association, ordered by insertion when preloaded
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movie"
}
