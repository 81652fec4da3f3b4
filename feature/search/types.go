package search

import (
	"context"
	"errors"
	"fmt"

	"card-catalog/feature/cards/models"
)

// ErrInvalidQuery rejects unknown sort fields, inverted price ranges and similar input.
var ErrInvalidQuery = errors.New("invalid search query")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filters constrain the indexed records. Zero values do not filter.
type Filters struct {
	Game      models.Game `json:"game,omitempty"`
	Rarity    string      `json:"rarity,omitempty"`
	Set       string      `json:"set,omitempty"`
	MinPrice  *float64    `json:"min_price,omitempty"`
	MaxPrice  *float64    `json:"max_price,omitempty"`
	Condition string      `json:"condition,omitempty"`
}

type SortField string

const (
	SortName   SortField = "name"
	SortPrice  SortField = "price"
	SortRarity SortField = "rarity"
	SortDate   SortField = "date"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type Sort struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// Pagination is 1-based.
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Query is a full-text search request.
type Query struct {
	Text       string     `json:"text"`
	Filters    Filters    `json:"filters"`
	Sort       Sort       `json:"sort"`
	Pagination Pagination `json:"pagination"`
}

// Normalize fills defaults and validates the query.
func (q Query) Normalize() (Query, error) {
	switch q.Sort.Field {
	case "":
		q.Sort.Field = SortName
	case SortName, SortPrice, SortRarity, SortDate:
	default:
		return q, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, q.Sort.Field)
	}
	switch q.Sort.Order {
	case "":
		q.Sort.Order = Asc
	case Asc, Desc:
	default:
		return q, fmt.Errorf("%w: unknown sort order %q", ErrInvalidQuery, q.Sort.Order)
	}
	if f := q.Filters; f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return q, fmt.Errorf("%w: min_price exceeds max_price", ErrInvalidQuery)
	}
	if q.Pagination.Page <= 0 {
		q.Pagination.Page = 1
	}
	if q.Pagination.Size <= 0 {
		q.Pagination.Size = DefaultPageSize
	}
	if q.Pagination.Size > MaxPageSize {
		q.Pagination.Size = MaxPageSize
	}
	return q, nil
}

// Facets count matching records per refinement value.
type Facets struct {
	Game        map[string]int64 `json:"game"`
	Rarity      map[string]int64 `json:"rarity"`
	Set         map[string]int64 `json:"set"`
	PriceBucket map[string]int64 `json:"price_bucket"`
}

// Result is one page of matches plus facets over every match.
type Result struct {
	Records []models.Card `json:"records"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Size    int           `json:"size"`
	Facets  Facets        `json:"facets"`
}

type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusDegraded    Status = "degraded"
	StatusUnavailable Status = "unavailable"
)

type Health struct {
	Status  Status         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Engine is the read side of a full-text card index.
type Engine interface {
	Search(ctx context.Context, q Query) (*Result, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	Health(ctx context.Context) Health
}

// Index is an Engine that also accepts documents.
type Index interface {
	Engine
	IndexCards(ctx context.Context, cards []models.Card) error
}
