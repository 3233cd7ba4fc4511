package search

import (
	"context"
	"errors"

	"carapi/internal/model"
)

// ErrNotFound is returned when the engine reports a missing document or index.
var ErrNotFound = errors.New("document not found")

// Gateway is the access layer to the backing search engine. Every method is one
// round-trip to the engine (CreateIndex may make two); nothing is cached or retried.
type Gateway interface {
	// CreateIndex creates the catalog index with its fixed mapping. It returns
	// {"message": "Index already exists"} without a create call when the index is present.
	CreateIndex(ctx context.Context) (map[string]any, error)

	// IndexExists reports whether the catalog index exists.
	IndexExists(ctx context.Context) (bool, error)

	// IndexCar upserts car at car.ID, or lets the engine assign an id and writes it back.
	IndexCar(ctx context.Context, car *model.Car) (*IndexResult, error)

	// Search runs query (nil or empty means match_all) with size/from pagination.
	Search(ctx context.Context, query map[string]any, size, from int) (*SearchResult, error)

	// GetByID returns the document source, or ErrNotFound.
	GetByID(ctx context.Context, id string) (map[string]any, error)

	// DeleteByID removes a document and returns the engine response body.
	DeleteByID(ctx context.Context, id string) (map[string]any, error)

	// Ping checks that the engine is reachable.
	Ping(ctx context.Context) error

	// IndexName returns the catalog index name.
	IndexName() string
}

// IndexResult is the engine acknowledgement of an index call.
type IndexResult struct {
	ID      string `json:"_id"`
	Result  string `json:"result"`
	Version int64  `json:"_version"`
}

// Hit is one search result entry.
type Hit struct {
	ID     string
	Source map[string]any
}

// SearchResult is a page of hits plus the total match count.
type SearchResult struct {
	Total int
	Hits  []Hit
}

// IndexAlreadyExists is the CreateIndex result when nothing had to be created.
func IndexAlreadyExists() map[string]any {
	return map[string]any{"message": "Index already exists"}
}

// MatchAll returns the query used when the caller supplies none.
func MatchAll() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}
