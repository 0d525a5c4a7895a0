package models

import (
	"cinerate/proj/internal/domain/fields"
	"time"
)

type Movie struct {
	ID            int64                `json:"id" db:"id"`
	Title         string               `json:"title" db:"title"`
	Year          int32                `json:"year,omitempty" db:"year"`
	Runtime       fields.MovieRuntime  `json:"runtime,omitempty" db:"runtime"`
	Genres        []string             `json:"genres,omitempty" db:"genres"`
	Version       int32                `json:"version" db:"version"`
	AverageRating fields.AverageRating `json:"averageRating" db:"average_rating"` // written only by the aggregator
	TotalReviews  int64                `json:"totalReviews" db:"total_reviews"`   // written only by the aggregator
	CreatedAt     time.Time            `json:"createdAt" db:"created_at"`
}

// MovieAggregate is the part of a movie derived from its reviews.
type MovieAggregate struct {
	MovieID       int64                `json:"movieId"`
	AverageRating fields.AverageRating `json:"averageRating"`
	TotalReviews  int64                `json:"totalReviews"`
}

type Review struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	MovieID    int64     `json:"movieId" db:"movie_id"`
	Rating     int       `json:"rating" db:"rating"`
	ReviewText string    `json:"reviewText" db:"review_text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type WatchlistEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	MovieID   int64     `json:"movieId" db:"movie_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// WatchlistItem is a movie as it appears on somebody's watchlist.
type WatchlistItem struct {
	Movie
	AddedAt time.Time `json:"addedToWatchlistAt" db:"added_at"`
}

type WatchlistStatus struct {
	IsInWatchlist bool       `json:"isInWatchlist"`
	AddedAt       *time.Time `json:"addedAt"`
}

type UserStats struct {
	TotalReviews    int64                `json:"totalReviews"`
	WatchlistCount  int64                `json:"watchlistCount"`
	AverageRating   fields.AverageRating `json:"averageRating"`
	ReviewsByRating map[int]int64        `json:"reviewsByRating"`
}

// User is the authenticated principal attached to a request.
type User struct {
	ID        int64
	Username  string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}
