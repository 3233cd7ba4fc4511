package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("OPENSEARCH_HOST", "vpc-abc123.es.amazonaws.com")
	t.Setenv("OPENSEARCH_USERNAME", "admin")
	t.Setenv("OPENSEARCH_PASSWORD", "secret")
	t.Setenv("OPENSEARCH_REQUEST_TIMEOUT", "45s")
	t.Setenv("EXPOSE_ENGINE_ERRORS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vpc-abc123.es.amazonaws.com", cfg.Search.Host)
	assert.Equal(t, "admin", cfg.Search.Username)
	assert.Equal(t, "secret", cfg.Search.Password)
	assert.Equal(t, 45*time.Second, cfg.Search.RequestTimeout)
	assert.False(t, cfg.ExposeEngineErrors)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, EngineOpenSearch, cfg.SearchEngine)
	assert.Equal(t, "cars", cfg.Search.Index)
	assert.Equal(t, 5*time.Second, cfg.Search.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Search.RequestTimeout)
	assert.True(t, cfg.Search.AutoCreateIndex)
	assert.True(t, cfg.ExposeEngineErrors)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown engine", env: map[string]string{"SEARCH_ENGINE": "solr"}},
		{name: "empty index", env: map[string]string{"OPENSEARCH_INDEX": " "}},
		{name: "zero timeout", env: map[string]string{"OPENSEARCH_CONNECT_TIMEOUT": "0s"}},
		{name: "malformed duration", env: map[string]string{"OPENSEARCH_REQUEST_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MemoryEngineNeedsNoHost(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", EngineMemory)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EngineMemory, cfg.SearchEngine)
	assert.True(t, cfg.IsProduction())
}
