package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carapi/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.SearchConfig{Host: "https://search.example.com", Index: "fleet"}

	tests := []struct {
		engine string
		check  func(t *testing.T, gw Gateway)
	}{
		{engine: config.EngineOpenSearch, check: func(t *testing.T, gw Gateway) {
			c, ok := gw.(*Client)
			require.True(t, ok)
			assert.IsType(t, &openSearchAPI{}, c.api)
		}},
		{engine: config.EngineElasticsearch, check: func(t *testing.T, gw Gateway) {
			c, ok := gw.(*Client)
			require.True(t, ok)
			assert.IsType(t, &elasticsearchAPI{}, c.api)
		}},
		{engine: config.EngineMemory, check: func(t *testing.T, gw Gateway) {
			assert.IsType(t, &Memory{}, gw)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			gw, err := New(tt.engine, cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, "fleet", gw.IndexName())
			tt.check(t, gw)
		})
	}

	_, err := New("solr", cfg, nil)
	assert.EqualError(t, err, `unknown search engine "solr"`)
}
