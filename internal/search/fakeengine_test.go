package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"carapi/internal/config"
)

// fakeEngine is a minimal OpenSearch/Elasticsearch REST emulation for one index.
type fakeEngine struct {
	mu          sync.Mutex
	index       string
	created     bool
	createCalls int
	createBody  map[string]any
	docs        map[string]map[string]any
	order       []string
	nextID      int
	authHeaders []string
	requests    []string
	failStatus  int
}

func newFakeEngine(index string) *fakeEngine {
	return &fakeEngine{index: index, docs: make(map[string]map[string]any)}
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	// The Elasticsearch client refuses servers that do not identify as Elasticsearch.
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	if f.failStatus != 0 {
		f.write(w, f.failStatus, map[string]any{
			"error":  map[string]any{"type": "internal_error", "reason": "boom"},
			"status": f.failStatus,
		})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/":
		f.write(w, http.StatusOK, map[string]any{"version": map[string]any{"number": "2.11.0"}})
	case len(parts) == 1 && parts[0] == f.index:
		f.serveIndex(w, r)
	case len(parts) == 2 && parts[1] == "_search":
		f.serveSearch(w, r)
	case len(parts) >= 2 && parts[1] == "_doc":
		id := ""
		if len(parts) == 3 {
			id = parts[2]
		}
		f.serveDoc(w, r, id)
	default:
		f.write(w, http.StatusBadRequest, map[string]any{"error": "unsupported path " + r.URL.Path})
	}
}

func (f *fakeEngine) serveIndex(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodHead:
		if f.created {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case http.MethodPut:
		if f.created {
			f.write(w, http.StatusBadRequest, map[string]any{
				"error": map[string]any{
					"type":   "resource_already_exists_exception",
					"reason": fmt.Sprintf("index [%s/abc] already exists", f.index),
				},
				"status": 400,
			})
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.createBody = body
		f.created = true
		f.createCalls++
		f.write(w, http.StatusOK, map[string]any{"acknowledged": true, "shards_acknowledged": true, "index": f.index})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeEngine) serveDoc(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost, http.MethodPut:
		var src map[string]any
		if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
			f.write(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"type": "mapper_parsing_exception", "reason": err.Error()}})
			return
		}
		if id == "" {
			f.nextID++
			id = fmt.Sprintf("doc-%d", f.nextID)
		}
		f.created = true
		status, result := http.StatusCreated, "created"
		if _, ok := f.docs[id]; ok {
			status, result = http.StatusOK, "updated"
		} else {
			f.order = append(f.order, id)
		}
		f.docs[id] = src
		f.write(w, status, map[string]any{"_index": f.index, "_id": id, "_version": 1, "result": result})
	case http.MethodGet:
		src, ok := f.docs[id]
		if !ok {
			f.write(w, http.StatusNotFound, map[string]any{"_index": f.index, "_id": id, "found": false})
			return
		}
		f.write(w, http.StatusOK, map[string]any{"_index": f.index, "_id": id, "found": true, "_source": src})
	case http.MethodDelete:
		if _, ok := f.docs[id]; !ok {
			f.write(w, http.StatusNotFound, map[string]any{"_index": f.index, "_id": id, "result": "not_found"})
			return
		}
		delete(f.docs, id)
		for i, v := range f.order {
			if v == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
		f.write(w, http.StatusOK, map[string]any{"_index": f.index, "_id": id, "result": "deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeEngine) serveSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query map[string]any `json:"query"`
		Size  int            `json:"size"`
		From  int            `json:"from"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.write(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"type": "parsing_exception", "reason": err.Error()}})
		return
	}
	match, err := compileQuery(body.Query)
	if err != nil {
		f.write(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"type": "parsing_exception", "reason": err.Error()}})
		return
	}

	hits := make([]map[string]any, 0)
	for _, id := range f.order {
		if match(f.docs[id]) {
			hits = append(hits, map[string]any{"_index": f.index, "_id": id, "_source": f.docs[id]})
		}
	}
	total := len(hits)
	from := min(body.From, total)
	end := min(from+body.Size, total)

	f.write(w, http.StatusOK, map[string]any{
		"took": 1,
		"hits": map[string]any{
			"total": map[string]any{"value": total, "relation": "eq"},
			"hits":  hits[from:end],
		},
	})
}

func (f *fakeEngine) write(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeEngine) lastAuthHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.authHeaders) == 0 {
		return ""
	}
	return f.authHeaders[len(f.authHeaders)-1]
}

func (f *fakeEngine) setFailStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

func (f *fakeEngine) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

func (f *fakeEngine) sawRequest(req string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r == req {
			return true
		}
	}
	return false
}

// engineClient pairs a client constructor with a name for table tests.
type engineClient struct {
	name string
	new  func(cfg config.SearchConfig) (*Client, error)
}

var engineClients = []engineClient{
	{name: "opensearch", new: func(cfg config.SearchConfig) (*Client, error) { return NewOpenSearch(cfg, nil) }},
	{name: "elasticsearch", new: func(cfg config.SearchConfig) (*Client, error) { return NewElasticsearch(cfg, nil) }},
}

// startFakeEngine starts a fake engine and returns it with a client config pointing at it.
func startFakeEngine(t *testing.T, username, password string) (*fakeEngine, config.SearchConfig) {
	t.Helper()

	fe := newFakeEngine(DefaultIndexName)
	srv := httptest.NewServer(fe)
	t.Cleanup(srv.Close)

	return fe, config.SearchConfig{
		Host:           srv.URL,
		Username:       username,
		Password:       password,
		Index:          DefaultIndexName,
		ConnectTimeout: 2 * time.Second,
		RequestTimeout: 5 * time.Second,
	}
}

// forEachEngine runs fn against a fresh fake engine for every SDK-backed client.
func forEachEngine(t *testing.T, fn func(t *testing.T, fe *fakeEngine, c *Client)) {
	for _, ec := range engineClients {
		t.Run(ec.name, func(t *testing.T) {
			fe, cfg := startFakeEngine(t, "", "")
			c, err := ec.new(cfg)
			require.NoError(t, err)
			fn(t, fe, c)
		})
	}
}
