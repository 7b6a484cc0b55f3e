package models

import "time"

type Movie struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	MainCast    string     `json:"main_cast"`
	Duration    int        `json:"duration"` // минуты
	Genre       string     `json:"genre"`
	Rating      float64    `json:"rating"`
	PosterURL   string     `json:"poster_url"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	MainCast    string  `json:"main_cast" validate:"max=500"`
	Duration    int     `json:"duration" validate:"required,gte=1,lte=600"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10"`
	PosterURL   string  `json:"poster_url" validate:"omitempty,url"`
	ReleaseDate string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
}
