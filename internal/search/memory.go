package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"carapi/internal/model"
)

// Memory is an in-process Gateway for local development and tests. It supports match_all
// and multi_match (case-insensitive substring) queries and returns hits in insertion order.
// Thread-safe via sync.RWMutex.
type Memory struct {
	mu      sync.RWMutex
	index   string
	created bool
	docs    map[string]map[string]any
	order   []string

	// createCalls counts index creations that actually happened.
	createCalls int
}

var _ Gateway = (*Memory)(nil)

// NewMemory creates an empty in-memory engine. The index does not exist until CreateIndex
// or the first IndexCar call.
func NewMemory(index string) *Memory {
	if index == "" {
		index = DefaultIndexName
	}
	return &Memory{
		index: index,
		docs:  make(map[string]map[string]any),
	}
}

func (m *Memory) IndexName() string {
	return m.index
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) IndexExists(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created, nil
}

func (m *Memory) CreateIndex(_ context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.created {
		return IndexAlreadyExists(), nil
	}
	m.created = true
	m.createCalls++
	return map[string]any{
		"acknowledged":        true,
		"shards_acknowledged": true,
		"index":               m.index,
	}, nil
}

func (m *Memory) IndexCar(_ context.Context, car *model.Car) (*IndexResult, error) {
	if car == nil {
		return nil, fmt.Errorf("failed to index car: car is nil")
	}
	src, err := toSource(car)
	if err != nil {
		return nil, fmt.Errorf("failed to index car: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Engines create indices implicitly on first write.
	m.created = true

	id := car.ID
	if id == "" {
		id = uuid.NewString()
	}
	result := "created"
	if _, ok := m.docs[id]; ok {
		result = "updated"
	} else {
		m.order = append(m.order, id)
	}
	m.docs[id] = src
	car.ID = id

	return &IndexResult{ID: id, Result: result, Version: 1}, nil
}

func (m *Memory) Search(_ context.Context, query map[string]any, size, from int) (*SearchResult, error) {
	match, err := compileQuery(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]Hit, 0)
	for _, id := range m.order {
		src := m.docs[id]
		if match(src) {
			matched = append(matched, Hit{ID: id, Source: copySource(src)})
		}
	}

	total := len(matched)
	if from < 0 {
		from = 0
	}
	if from > total {
		from = total
	}
	end := total
	if size >= 0 && from+size < end {
		end = from + size
	}

	return &SearchResult{Total: total, Hits: matched[from:end]}, nil
}

func (m *Memory) GetByID(_ context.Context, id string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySource(src), nil
}

func (m *Memory) DeleteByID(_ context.Context, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return nil, fmt.Errorf("failed to delete car: %w", ErrNotFound)
	}
	delete(m.docs, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return map[string]any{
		"_index": m.index,
		"_id":    id,
		"result": "deleted",
	}, nil
}

// toSource converts a car to its indexed JSON form so stored documents look like engine sources.
func toSource(car *model.Car) (map[string]any, error) {
	b, err := json.Marshal(car)
	if err != nil {
		return nil, err
	}
	var src map[string]any
	if err := json.Unmarshal(b, &src); err != nil {
		return nil, err
	}
	return src, nil
}

func copySource(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// compileQuery turns the supported query DSL subset into a predicate.
func compileQuery(query map[string]any) (func(map[string]any) bool, error) {
	if len(query) == 0 {
		return func(map[string]any) bool { return true }, nil
	}
	if _, ok := query["match_all"]; ok {
		return func(map[string]any) bool { return true }, nil
	}
	mm, ok := query["multi_match"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unsupported query")
	}

	text, _ := mm["query"].(string)
	needle := strings.ToLower(strings.TrimSpace(text))
	fields := stringList(mm["fields"])

	return func(src map[string]any) bool {
		if needle == "" {
			return false
		}
		for _, f := range fields {
			if v, ok := src[f]; ok && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
				return true
			}
		}
		return false
	}, nil
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
