package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"carapi/internal/config"
	"carapi/internal/model"
)

// response is the subset of an engine HTTP response the client needs. Both the
// OpenSearch and Elasticsearch SDK responses are converted into it.
type response struct {
	StatusCode int
	Status     string
	Body       io.ReadCloser
}

func (r *response) IsError() bool {
	return r.StatusCode > 299
}

func (r *response) Close() {
	if r.Body != nil {
		_ = r.Body.Close()
	}
}

// engineAPI is the set of REST calls the client makes. Implementations adapt an SDK client.
type engineAPI interface {
	indexExists(ctx context.Context, index string) (*response, error)
	createIndex(ctx context.Context, index string, body io.Reader) (*response, error)
	index(ctx context.Context, index, id string, body io.Reader, refresh string) (*response, error)
	search(ctx context.Context, index string, body io.Reader) (*response, error)
	get(ctx context.Context, index, id string) (*response, error)
	delete(ctx context.Context, index, id, refresh string) (*response, error)
	ping(ctx context.Context) (*response, error)
}

// EngineError is a non-2xx engine response.
type EngineError struct {
	StatusCode int
	Status     string
	Type       string
	Reason     string
}

func (e *EngineError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Reason)
	}
	if e.Reason != "" {
		return e.Reason
	}
	return "unexpected status " + e.Status
}

// Is makes engine 404s match ErrNotFound.
func (e *EngineError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is a Gateway over a remote OpenSearch or Elasticsearch cluster.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	api      engineAPI
	endpoint Endpoint
	index    string
	refresh  string
	timeout  time.Duration
	logger   *zap.Logger
}

var _ Gateway = (*Client)(nil)

func newClient(api engineAPI, ep Endpoint, cfg config.SearchConfig, logger *zap.Logger) *Client {
	index := cfg.Index
	if index == "" {
		index = DefaultIndexName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:      api,
		endpoint: ep,
		index:    index,
		refresh:  cfg.Refresh,
		timeout:  cfg.RequestTimeout,
		logger:   logger,
	}
}

// Endpoint returns the resolved connection descriptor.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

func (c *Client) IndexName() string {
	return c.index
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.indexExists(ctx, c.index)
	if err != nil {
		return false, fmt.Errorf("check index exists: %w", err)
	}
	defer res.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("check index exists: %w", decodeEngineError(res))
	}
}

func (c *Client) CreateIndex(ctx context.Context) (map[string]any, error) {
	exists, err := c.IndexExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	if exists {
		return IndexAlreadyExists(), nil
	}

	body, err := json.Marshal(indexDefinition())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: marshal mapping: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.createIndex(ctx, c.index, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Close()

	if res.IsError() {
		engErr := decodeEngineError(res)
		var ee *EngineError
		// Lost a race with a concurrent create.
		if errors.As(engErr, &ee) && ee.Type == "resource_already_exists_exception" {
			return IndexAlreadyExists(), nil
		}
		return nil, fmt.Errorf("failed to create index: %w", engErr)
	}

	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to create index: decode response: %w", err)
	}

	c.logger.Info("search index created", zap.String("index", c.index))
	return out, nil
}

func (c *Client) IndexCar(ctx context.Context, car *model.Car) (*IndexResult, error) {
	if car == nil {
		return nil, fmt.Errorf("failed to index car: car is nil")
	}
	body, err := json.Marshal(car)
	if err != nil {
		return nil, fmt.Errorf("failed to index car: marshal: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.index(ctx, c.index, car.ID, bytes.NewReader(body), c.refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to index car: %w", err)
	}
	defer res.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to index car: %w", decodeEngineError(res))
	}

	var out IndexResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to index car: decode response: %w", err)
	}
	if car.ID == "" && out.ID != "" {
		car.ID = out.ID
	}

	c.logger.Debug("indexed car", zap.String("id", car.ID), zap.String("result", out.Result))
	return &out, nil
}

// searchResponse is the part of a search response the client reads.
type searchResponse struct {
	Hits struct {
		Total totalHits `json:"total"`
		Hits  []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// totalHits accepts both {"value": n, "relation": ...} and a bare number.
type totalHits struct {
	Value int `json:"value"`
}

func (t *totalHits) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		t.Value = n
		return nil
	}
	var obj struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	t.Value = obj.Value
	return nil
}

func (c *Client) Search(ctx context.Context, query map[string]any, size, from int) (*SearchResult, error) {
	if len(query) == 0 {
		query = MatchAll()
	}
	body, err := json.Marshal(map[string]any{
		"query":            query,
		"size":             size,
		"from":             from,
		"track_total_hits": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: marshal query: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.search(ctx, c.index, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}
	defer res.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to search cars: %w", decodeEngineError(res))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to search cars: decode response: %w", err)
	}

	out := &SearchResult{
		Total: sr.Hits.Total.Value,
		Hits:  make([]Hit, 0, len(sr.Hits.Hits)),
	}
	for _, h := range sr.Hits.Hits {
		src := h.Source
		if src == nil {
			src = map[string]any{}
		}
		out.Hits = append(out.Hits, Hit{ID: h.ID, Source: src})
	}
	return out, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (map[string]any, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.get(ctx, c.index, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	defer res.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to get car: %w", decodeEngineError(res))
	}

	var doc struct {
		Found  bool           `json:"found"`
		Source map[string]any `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to get car: decode response: %w", err)
	}
	if !doc.Found {
		return nil, ErrNotFound
	}
	if doc.Source == nil {
		doc.Source = map[string]any{}
	}
	return doc.Source, nil
}

func (c *Client) DeleteByID(ctx context.Context, id string) (map[string]any, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.delete(ctx, c.index, id, c.refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to delete car: %w", err)
	}
	defer res.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to delete car: %w", decodeEngineError(res))
	}

	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to delete car: decode response: %w", err)
	}

	c.logger.Debug("deleted car", zap.String("id", id))
	return out, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.api.ping(ctx)
	if err != nil {
		return fmt.Errorf("ping search engine: %w", err)
	}
	defer res.Close()

	if res.IsError() {
		return fmt.Errorf("ping search engine: %w", decodeEngineError(res))
	}
	return nil
}

// decodeEngineError reads an error body of the form {"error": {"type", "reason"}} or
// {"error": "reason"}. Bodies that do not parse yield a status-only error.
func decodeEngineError(res *response) error {
	ee := &EngineError{StatusCode: res.StatusCode, Status: res.Status}
	if ee.Status == "" {
		ee.Status = fmt.Sprintf("%d %s", res.StatusCode, http.StatusText(res.StatusCode))
	}
	if res.Body == nil {
		return ee
	}

	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || len(body.Error) == 0 {
		return ee
	}

	var detail struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body.Error, &detail); err == nil {
		ee.Type = detail.Type
		ee.Reason = detail.Reason
		return ee
	}
	var reason string
	if err := json.Unmarshal(body.Error, &reason); err == nil {
		ee.Reason = reason
	}
	return ee
}
