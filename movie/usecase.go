package movie

import (
	"context"
	"fmt"
	"io"
	"time"
)

type Service interface {
	List(ctx context.Context, userID int64, q ListQuery) (Page, error)
	Save(ctx context.Context, userID int64, in SaveInput) (Movie, error)
	Get(ctx context.Context, userID, id int64) (Movie, error)
	Delete(ctx context.Context, userID, id int64) error
}

type Repository interface {
	FindPage(ctx context.Context, clauses []Clause, offset, limit int) ([]Movie, error)
	Count(ctx context.Context, clauses []Clause) (int64, error)
	FindByID(ctx context.Context, id, userID int64) (Movie, error)
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id int64) error
}

// BlobStore uploads binary objects and returns a stable retrieval URL.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Upload is a binary file attached to a save request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// SaveInput is the full field set of an upsert. A zero ID creates a new
// record; a non-zero ID updates that record in place.
type SaveInput struct {
	ID            int64
	Title         string
	OriginalTitle string
	Description   string
	Tagline       string
	Budget        float64
	Revenue       float64
	Popularity    float64
	VoteCount     int
	Language      string
	Status        string
	ReleaseDate   time.Time
	Duration      int
	Genre         string
	YoutubeURL    string
	ImageURL      string
	Image         *Upload
}

// Page is one page of list results.
type Page struct {
	Movies      []Movie `json:"movies"`
	TotalMovies int64   `json:"totalMovies"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}

type Usecase struct {
	r    Repository
	blob BlobStore
	now  func() time.Time
}

func NewUsecase(r Repository, blob BlobStore) *Usecase {
	return &Usecase{
		r:    r,
		blob: blob,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (uc *Usecase) List(ctx context.Context, userID int64, q ListQuery) (Page, error) {
	if userID <= 0 {
		return Page{}, ErrUnauthenticated
	}

	clauses := q.Clauses(userID)

	movies, err := uc.r.FindPage(ctx, clauses, q.Offset(), PageSize)
	if err != nil {
		return Page{}, err
	}

	total, err := uc.r.Count(ctx, clauses)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Movies:      movies,
		TotalMovies: total,
		TotalPages:  int((total + PageSize - 1) / PageSize),
		CurrentPage: q.CurrentPage(),
	}, nil
}

func (uc *Usecase) Save(ctx context.Context, userID int64, in SaveInput) (Movie, error) {
	if userID <= 0 {
		return Movie{}, ErrUnauthenticated
	}

	m := Movie{
		ID:            in.ID,
		Title:         in.Title,
		OriginalTitle: in.OriginalTitle,
		Description:   in.Description,
		Tagline:       in.Tagline,
		Budget:        in.Budget,
		Revenue:       in.Revenue,
		Popularity:    in.Popularity,
		VoteCount:     in.VoteCount,
		Language:      in.Language,
		Status:        in.Status,
		ReleaseDate:   in.ReleaseDate,
		Duration:      in.Duration,
		Genre:         in.Genre,
		YoutubeURL:    in.YoutubeURL,
		UserID:        userID,
	}
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	// Precedence: attached file wins over a direct URL. An upload that
	// succeeds before a failing write is left behind; the store offers no
	// cleanup hook.
	switch {
	case in.Image != nil:
		url, err := uc.blob.Upload(ctx, uc.uploadKey(in.Image.Filename), in.Image.ContentType, in.Image.Body)
		if err != nil {
			return Movie{}, err
		}
		m.ImageURL = &url
	case in.ImageURL != "":
		url := in.ImageURL
		m.ImageURL = &url
	}

	m.ComputeDerived()

	// Updates write by id alone and re-assign UserID to the caller without
	// checking the record's prior owner, matching the upstream contract.
	if in.ID > 0 {
		if err := uc.r.Update(ctx, &m); err != nil {
			return Movie{}, err
		}
		return m, nil
	}

	if err := uc.r.Create(ctx, &m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (uc *Usecase) Get(ctx context.Context, userID, id int64) (Movie, error) {
	if userID <= 0 {
		return Movie{}, ErrUnauthenticated
	}
	return uc.r.FindByID(ctx, id, userID)
}

func (uc *Usecase) Delete(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return ErrUnauthenticated
	}

	// Existence and ownership are checked first; a record owned by someone
	// else is indistinguishable from a missing one.
	if _, err := uc.r.FindByID(ctx, id, userID); err != nil {
		return err
	}

	return uc.r.Delete(ctx, id)
}

// uploadKey namespaces blob keys by upload time and original filename.
func (uc *Usecase) uploadKey(filename string) string {
	return fmt.Sprintf("movies/%d_%s", uc.now().UnixMilli(), filename)
}
