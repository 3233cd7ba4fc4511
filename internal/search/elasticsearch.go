package search

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"carapi/internal/config"
)

// elasticsearchAPI adapts the Elasticsearch SDK to engineAPI.
type elasticsearchAPI struct {
	client *elasticsearch.Client
}

// NewElasticsearch creates a Gateway backed by an Elasticsearch cluster, using the same
// endpoint resolution as NewOpenSearch.
func NewElasticsearch(cfg config.SearchConfig, logger *zap.Logger) (*Client, error) {
	ep, err := ResolveEndpoint(cfg.Host, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}

	esCfg := elasticsearch.Config{
		Addresses:    []string{ep.URL},
		Transport:    NewTransport(ep, cfg.ConnectTimeout, cfg.RequestTimeout),
		DisableRetry: true,
	}
	if ep.UseAuth {
		esCfg.Username = ep.Username
		esCfg.Password = ep.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	if logger != nil {
		logger.Info("elasticsearch client configured",
			zap.String("url", ep.URL),
			zap.String("host_kind", ep.Kind.String()),
			zap.Bool("auth", ep.UseAuth),
			zap.Bool("tls_verify", !ep.InsecureSkipVerify),
		)
	}
	return newClient(&elasticsearchAPI{client: client}, ep, cfg, logger), nil
}

func fromElasticsearch(res *esapi.Response, err error) (*response, error) {
	if err != nil {
		return nil, err
	}
	return &response{StatusCode: res.StatusCode, Status: res.Status(), Body: res.Body}, nil
}

func (a *elasticsearchAPI) indexExists(ctx context.Context, index string) (*response, error) {
	return fromElasticsearch(a.client.Indices.Exists(
		[]string{index},
		a.client.Indices.Exists.WithContext(ctx),
	))
}

func (a *elasticsearchAPI) createIndex(ctx context.Context, index string, body io.Reader) (*response, error) {
	return fromElasticsearch(a.client.Indices.Create(
		index,
		a.client.Indices.Create.WithBody(body),
		a.client.Indices.Create.WithContext(ctx),
	))
}

func (a *elasticsearchAPI) index(ctx context.Context, index, id string, body io.Reader, refresh string) (*response, error) {
	opts := []func(*esapi.IndexRequest){a.client.Index.WithContext(ctx)}
	if id != "" {
		opts = append(opts, a.client.Index.WithDocumentID(id))
	}
	if refresh != "" {
		opts = append(opts, a.client.Index.WithRefresh(refresh))
	}
	return fromElasticsearch(a.client.Index(index, body, opts...))
}

func (a *elasticsearchAPI) search(ctx context.Context, index string, body io.Reader) (*response, error) {
	return fromElasticsearch(a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(index),
		a.client.Search.WithBody(body),
	))
}

func (a *elasticsearchAPI) get(ctx context.Context, index, id string) (*response, error) {
	return fromElasticsearch(a.client.Get(index, id, a.client.Get.WithContext(ctx)))
}

func (a *elasticsearchAPI) delete(ctx context.Context, index, id, refresh string) (*response, error) {
	opts := []func(*esapi.DeleteRequest){a.client.Delete.WithContext(ctx)}
	if refresh != "" {
		opts = append(opts, a.client.Delete.WithRefresh(refresh))
	}
	return fromElasticsearch(a.client.Delete(index, id, opts...))
}

func (a *elasticsearchAPI) ping(ctx context.Context) (*response, error) {
	return fromElasticsearch(a.client.Ping(a.client.Ping.WithContext(ctx)))
}
