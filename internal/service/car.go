package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carapi/internal/model"
	"carapi/internal/search"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("car not found")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// searchFields are the fields a free-text search matches against.
var searchFields = []string{"make", "model", "description"}

// ListQuery is a page request with an optional free-text search.
type ListQuery struct {
	Search string
	Size   int
	From   int
}

// CarListResult is the service-level DTO for a page of cars.
type CarListResult struct {
	Total int              `json:"total"`
	Cars  []map[string]any `json:"cars"`
}

// CreateResult is returned after a car has been indexed.
type CreateResult struct {
	ID  string         `json:"id"`
	Car map[string]any `json:"car"`
}

// HealthStatus reports engine connectivity and index presence.
type HealthStatus struct {
	Status      string `json:"status"`
	IndexExists bool   `json:"index_exists"`
	IndexName   string `json:"index_name"`
}

// CarService defines the use cases for the cars catalog.
type CarService interface {
	// List returns a page of cars, filtered by a multi-field match when q.Search is set.
	List(ctx context.Context, q ListQuery) (*CarListResult, error)

	// Create parses a raw JSON payload, stamps created_at and indexes it.
	// Input errors are returned as *model.ValidationError.
	Create(ctx context.Context, raw []byte) (*CreateResult, error)

	// Get returns a single car by its document id.
	Get(ctx context.Context, id string) (map[string]any, error)

	// Delete removes a car and returns the engine acknowledgement.
	Delete(ctx context.Context, id string) (map[string]any, error)

	CreateIndex(ctx context.Context) (map[string]any, error)
	Health(ctx context.Context) (*HealthStatus, error)
	Ping(ctx context.Context) error
}

// Options tunes a CarService.
type Options struct {
	// AutoCreateIndex creates the index before the first write when it is missing.
	AutoCreateIndex bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// carService is a concrete implementation of CarService.
type carService struct {
	gw              search.Gateway
	autoCreateIndex bool
	now             func() time.Time
}

// NewCarService constructs a new CarService.
func NewCarService(gw search.Gateway, opts Options) CarService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &carService{gw: gw, autoCreateIndex: opts.AutoCreateIndex, now: now}
}

func (s *carService) List(ctx context.Context, q ListQuery) (*CarListResult, error) {
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	from := q.From
	if from < 0 {
		from = 0
	}

	query := search.MatchAll()
	if q.Search != "" {
		query = map[string]any{
			"multi_match": map[string]any{
				"query":  q.Search,
				"fields": searchFields,
			},
		}
	}

	res, err := s.gw.Search(ctx, query, size, from)
	if err != nil {
		return nil, err
	}

	cars := make([]map[string]any, 0, len(res.Hits))
	for _, h := range res.Hits {
		cars = append(cars, model.FromSearchHit(h.ID, h.Source))
	}
	return &CarListResult{Total: res.Total, Cars: cars}, nil
}

func (s *carService) Create(ctx context.Context, raw []byte) (*CreateResult, error) {
	car, err := model.ParseCar(raw, s.now())
	if err != nil {
		return nil, err
	}

	if s.autoCreateIndex {
		exists, err := s.gw.IndexExists(ctx)
		if err != nil {
			return nil, err
		}
		if !exists {
			if _, err := s.gw.CreateIndex(ctx); err != nil {
				return nil, err
			}
		}
	}

	res, err := s.gw.IndexCar(ctx, car)
	if err != nil {
		return nil, err
	}
	if car.ID == "" {
		car.ID = res.ID
	}
	return &CreateResult{ID: car.ID, Car: car.Response()}, nil
}

func (s *carService) Get(ctx context.Context, id string) (map[string]any, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	src, err := s.gw.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.FromSearchHit(id, src), nil
}

func (s *carService) Delete(ctx context.Context, id string) (map[string]any, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	res, err := s.gw.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *carService) CreateIndex(ctx context.Context) (map[string]any, error) {
	return s.gw.CreateIndex(ctx)
}

func (s *carService) Health(ctx context.Context) (*HealthStatus, error) {
	exists, err := s.gw.IndexExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &HealthStatus{
		Status:      "connected",
		IndexExists: exists,
		IndexName:   s.gw.IndexName(),
	}, nil
}

func (s *carService) Ping(ctx context.Context) error {
	return s.gw.Ping(ctx)
}
