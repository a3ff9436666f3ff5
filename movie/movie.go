package movie

import (
	"strings"
	"time"

	"cinelog/errs"
)

var (
	ErrUnauthenticated = errs.Errorf(errs.EUNAUTHORIZED, "movie: user not authenticated")
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie: movie not found")
	ErrInvalidTitle    = errs.Errorf(errs.EINVALID, "movie: invalid title")
)

// Movie is a single record in a user's collection. Profit and SuccessRate
// are computed once at write time and stored, never recomputed on read.
type Movie struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"originalTitle"`
	Description   string    `json:"description"`
	Tagline       string    `json:"tagline"`
	Budget        float64   `json:"budget"`
	Revenue       float64   `json:"revenue"`
	Popularity    float64   `json:"popularity"`
	VoteCount     int       `json:"voteCount"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	ReleaseDate   time.Time `json:"releaseDate"`
	Duration      int       `json:"duration"`
	Genre         string    `json:"genre"`
	YoutubeURL    string    `json:"youtubeUrl"`
	ImageURL      *string   `json:"imageUrl"`
	Profit        float64   `json:"profit"`
	SuccessRate   float64   `json:"successRate"`
	UserID        int64     `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// ComputeDerived fills the stored derived fields from the raw metrics.
func (m *Movie) ComputeDerived() {
	m.Profit = m.Revenue - m.Budget
	m.SuccessRate = m.Popularity * float64(m.VoteCount) / 1000
}
