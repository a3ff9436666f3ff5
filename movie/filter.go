package movie

import "time"

// PageSize is the fixed number of records per list page.
const PageSize = 10

// Clause is one predicate of a list filter. Clauses combine as a
// conjunction; persistence adapters translate each clause into their own
// query syntax.
type Clause interface {
	isClause()
}

// OwnedBy restricts records to a single owner. Every query carries it.
type OwnedBy struct {
	UserID int64
}

// TitleContains matches a case-insensitive substring against the title OR
// the original title.
type TitleContains struct {
	Query string
}

// MaxDuration keeps records whose duration does not exceed the threshold.
type MaxDuration struct {
	Minutes int
}

// ReleasedBetween keeps records released within the inclusive range.
type ReleasedBetween struct {
	From time.Time
	To   time.Time
}

// GenreContains matches a case-insensitive substring against the genre.
type GenreContains struct {
	Genre string
}

func (OwnedBy) isClause()         {}
func (TitleContains) isClause()   {}
func (MaxDuration) isClause()     {}
func (ReleasedBetween) isClause() {}
func (GenreContains) isClause()   {}

// ListQuery carries the caller-supplied list filters. Zero values mean
// "not provided".
type ListQuery struct {
	Search      string
	Page        int
	MaxDuration int
	StartDate   *time.Time
	EndDate     *time.Time
	Genre       string
}

// Clauses builds the filter conjunction for the given owner. The release
// date clause is only emitted when both bounds are present.
func (q ListQuery) Clauses(userID int64) []Clause {
	clauses := []Clause{OwnedBy{UserID: userID}}

	if q.Search != "" {
		clauses = append(clauses, TitleContains{Query: q.Search})
	}
	if q.MaxDuration > 0 {
		clauses = append(clauses, MaxDuration{Minutes: q.MaxDuration})
	}
	if q.StartDate != nil && q.EndDate != nil {
		clauses = append(clauses, ReleasedBetween{From: *q.StartDate, To: *q.EndDate})
	}
	if q.Genre != "" {
		clauses = append(clauses, GenreContains{Genre: q.Genre})
	}

	return clauses
}

// Offset returns the record offset for the query's 1-based page.
func (q ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// CurrentPage returns the effective 1-based page number.
func (q ListQuery) CurrentPage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}
