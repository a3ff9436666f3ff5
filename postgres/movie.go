package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinelog/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies.
type MovieModel struct {
	ID            int64  `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
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
	YoutubeURL    string `gorm:"column:youtube_url"`
	ImageURL      *string
	Profit        float64
	SuccessRate   float64
	UserID        int64     `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindPage(ctx context.Context, clauses []movie.Clause, offset, limit int) ([]movie.Movie, error) {
	var models []MovieModel

	q, err := applyClauses(r.db.WithContext(ctx).Model(&MovieModel{}), clauses)
	if err != nil {
		return nil, err
	}

	if err := q.Order("id").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, clauses []movie.Clause) (int64, error) {
	q, err := applyClauses(r.db.WithContext(ctx).Model(&MovieModel{}), clauses)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id, userID int64) (movie.Movie, error) {
	var model MovieModel

	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return toDomainMovie(model), nil
}

func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	model := toModelMovie(*m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*m = toDomainMovie(model)
	return nil
}

// Update writes every column of the record matched by id alone. Ownership is
// not part of the predicate; the caller's user id is written as-is.
func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	model := toModelMovie(*m)

	result := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"title":          model.Title,
		"original_title": model.OriginalTitle,
		"description":    model.Description,
		"tagline":        model.Tagline,
		"budget":         model.Budget,
		"revenue":        model.Revenue,
		"popularity":     model.Popularity,
		"vote_count":     model.VoteCount,
		"language":       model.Language,
		"status":         model.Status,
		"release_date":   model.ReleaseDate,
		"duration":       model.Duration,
		"genre":          model.Genre,
		"youtube_url":    model.YoutubeURL,
		"image_url":      model.ImageURL,
		"profit":         model.Profit,
		"success_rate":   model.SuccessRate,
		"user_id":        model.UserID,
		"updated_at":     time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Matches the upstream store, which raises on a missing update
		// target rather than reporting not-found.
		return fmt.Errorf("postgres: update movie %d: no rows affected", m.ID)
	}

	updated, err := r.findByIDOnly(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = updated
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&MovieModel{}, id).Error
}

func (r *MovieRepository) findByIDOnly(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// applyClauses translates the domain filter clauses into gorm predicates.
func applyClauses(q *gorm.DB, clauses []movie.Clause) (*gorm.DB, error) {
	for _, clause := range clauses {
		switch c := clause.(type) {
		case movie.OwnedBy:
			q = q.Where("user_id = ?", c.UserID)
		case movie.TitleContains:
			pattern := "%" + c.Query + "%"
			q = q.Where("title ILIKE ? OR original_title ILIKE ?", pattern, pattern)
		case movie.MaxDuration:
			q = q.Where("duration <= ?", c.Minutes)
		case movie.ReleasedBetween:
			q = q.Where("release_date BETWEEN ? AND ?", c.From, c.To)
		case movie.GenreContains:
			q = q.Where("genre ILIKE ?", "%"+c.Genre+"%")
		default:
			return nil, fmt.Errorf("postgres: unsupported filter clause %T", clause)
		}
	}
	return q, nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:            model.ID,
		Title:         model.Title,
		OriginalTitle: model.OriginalTitle,
		Description:   model.Description,
		Tagline:       model.Tagline,
		Budget:        model.Budget,
		Revenue:       model.Revenue,
		Popularity:    model.Popularity,
		VoteCount:     model.VoteCount,
		Language:      model.Language,
		Status:        model.Status,
		ReleaseDate:   model.ReleaseDate,
		Duration:      model.Duration,
		Genre:         model.Genre,
		YoutubeURL:    model.YoutubeURL,
		ImageURL:      model.ImageURL,
		Profit:        model.Profit,
		SuccessRate:   model.SuccessRate,
		UserID:        model.UserID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Description:   m.Description,
		Tagline:       m.Tagline,
		Budget:        m.Budget,
		Revenue:       m.Revenue,
		Popularity:    m.Popularity,
		VoteCount:     m.VoteCount,
		Language:      m.Language,
		Status:        m.Status,
		ReleaseDate:   m.ReleaseDate,
		Duration:      m.Duration,
		Genre:         m.Genre,
		YoutubeURL:    m.YoutubeURL,
		ImageURL:      m.ImageURL,
		Profit:        m.Profit,
		SuccessRate:   m.SuccessRate,
		UserID:        m.UserID,
	}
}
