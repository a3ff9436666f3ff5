package httpserver

import (
	"time"

	"cinelog/errs"
	"cinelog/movie"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,notblank,min=9,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,notblank,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,notblank"`
}

// ListMoviesRequest carries the query-string filters of the list endpoint.
// Dates use the YYYY-MM-DD layout.
type ListMoviesRequest struct {
	Title     string `query:"title"`
	Page      int    `query:"page"`
	Duration  int    `query:"duration" validate:"omitempty,min=1"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Genre     string `query:"genre"`
}

func (r ListMoviesRequest) ToListQuery() (movie.ListQuery, error) {
	q := movie.ListQuery{
		Search:      r.Title,
		Page:        r.Page,
		MaxDuration: r.Duration,
		Genre:       r.Genre,
	}

	if r.StartDate != "" {
		start, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return movie.ListQuery{}, errs.Errorf(errs.EINVALID, "invalid startDate: expected YYYY-MM-DD")
		}
		q.StartDate = &start
	}
	if r.EndDate != "" {
		end, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return movie.ListQuery{}, errs.Errorf(errs.EINVALID, "invalid endDate: expected YYYY-MM-DD")
		}
		q.EndDate = &end
	}

	return q, nil
}

// SaveMovieRequest is the multipart form of the upsert endpoint. A non-zero
// id updates that record; the optional image file is read separately from
// the multipart payload.
type SaveMovieRequest struct {
	ID            int64   `form:"id"`
	Title         string  `form:"title" validate:"required,notblank,max=255"`
	OriginalTitle string  `form:"originalTitle" validate:"max=255"`
	Description   string  `form:"description"`
	Tagline       string  `form:"tagline" validate:"max=255"`
	Budget        float64 `form:"budget" validate:"min=0"`
	Revenue       float64 `form:"revenue" validate:"min=0"`
	Popularity    float64 `form:"popularity" validate:"min=0"`
	VoteCount     int     `form:"voteCount" validate:"min=0"`
	Language      string  `form:"language" validate:"max=50"`
	Status        string  `form:"status" validate:"max=50"`
	ReleaseDate   string  `form:"releaseDate"`
	Duration      int     `form:"duration" validate:"min=0"`
	Genre         string  `form:"genre" validate:"max=255"`
	YoutubeURL    string  `form:"youtubeUrl" validate:"omitempty,url"`
	ImageURL      string  `form:"imageUrl" validate:"omitempty,url"`
}

func (r SaveMovieRequest) ToSaveInput(image *movie.Upload) (movie.SaveInput, error) {
	in := movie.SaveInput{
		ID:            r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Description:   r.Description,
		Tagline:       r.Tagline,
		Budget:        r.Budget,
		Revenue:       r.Revenue,
		Popularity:    r.Popularity,
		VoteCount:     r.VoteCount,
		Language:      r.Language,
		Status:        r.Status,
		Duration:      r.Duration,
		Genre:         r.Genre,
		YoutubeURL:    r.YoutubeURL,
		ImageURL:      r.ImageURL,
		Image:         image,
	}

	if r.ReleaseDate != "" {
		released, err := time.Parse(dateLayout, r.ReleaseDate)
		if err != nil {
			return movie.SaveInput{}, errs.Errorf(errs.EINVALID, "invalid releaseDate: expected YYYY-MM-DD")
		}
		in.ReleaseDate = released
	}

	return in, nil
}
