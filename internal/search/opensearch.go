package search

import (
	"context"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"go.uber.org/zap"

	"carapi/internal/config"
)

// openSearchAPI adapts the OpenSearch SDK to engineAPI.
type openSearchAPI struct {
	client *opensearch.Client
}

// NewOpenSearch creates a Gateway backed by an OpenSearch cluster. The endpoint is resolved
// once from cfg.Host; no request is made until the first operation.
func NewOpenSearch(cfg config.SearchConfig, logger *zap.Logger) (*Client, error) {
	ep, err := ResolveEndpoint(cfg.Host, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("opensearch: %w", err)
	}

	osCfg := opensearch.Config{
		Addresses:    []string{ep.URL},
		Transport:    NewTransport(ep, cfg.ConnectTimeout, cfg.RequestTimeout),
		DisableRetry: true,
	}
	if ep.UseAuth {
		osCfg.Username = ep.Username
		osCfg.Password = ep.Password
	}

	client, err := opensearch.NewClient(osCfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch: failed to create client: %w", err)
	}

	if logger != nil {
		logger.Info("opensearch client configured",
			zap.String("url", ep.URL),
			zap.String("host_kind", ep.Kind.String()),
			zap.Bool("auth", ep.UseAuth),
			zap.Bool("tls_verify", !ep.InsecureSkipVerify),
		)
	}
	return newClient(&openSearchAPI{client: client}, ep, cfg, logger), nil
}

func fromOpenSearch(res *opensearchapi.Response, err error) (*response, error) {
	if err != nil {
		return nil, err
	}
	return &response{StatusCode: res.StatusCode, Status: res.Status(), Body: res.Body}, nil
}

func (a *openSearchAPI) indexExists(ctx context.Context, index string) (*response, error) {
	return fromOpenSearch(a.client.Indices.Exists(
		[]string{index},
		a.client.Indices.Exists.WithContext(ctx),
	))
}

func (a *openSearchAPI) createIndex(ctx context.Context, index string, body io.Reader) (*response, error) {
	return fromOpenSearch(a.client.Indices.Create(
		index,
		a.client.Indices.Create.WithBody(body),
		a.client.Indices.Create.WithContext(ctx),
	))
}

func (a *openSearchAPI) index(ctx context.Context, index, id string, body io.Reader, refresh string) (*response, error) {
	opts := []func(*opensearchapi.IndexRequest){a.client.Index.WithContext(ctx)}
	if id != "" {
		opts = append(opts, a.client.Index.WithDocumentID(id))
	}
	if refresh != "" {
		opts = append(opts, a.client.Index.WithRefresh(refresh))
	}
	return fromOpenSearch(a.client.Index(index, body, opts...))
}

func (a *openSearchAPI) search(ctx context.Context, index string, body io.Reader) (*response, error) {
	return fromOpenSearch(a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(index),
		a.client.Search.WithBody(body),
	))
}

func (a *openSearchAPI) get(ctx context.Context, index, id string) (*response, error) {
	return fromOpenSearch(a.client.Get(index, id, a.client.Get.WithContext(ctx)))
}

func (a *openSearchAPI) delete(ctx context.Context, index, id, refresh string) (*response, error) {
	opts := []func(*opensearchapi.DeleteRequest){a.client.Delete.WithContext(ctx)}
	if refresh != "" {
		opts = append(opts, a.client.Delete.WithRefresh(refresh))
	}
	return fromOpenSearch(a.client.Delete(index, id, opts...))
}

func (a *openSearchAPI) ping(ctx context.Context) (*response, error) {
	return fromOpenSearch(a.client.Ping(a.client.Ping.WithContext(ctx)))
}
