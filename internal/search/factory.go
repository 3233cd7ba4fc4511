package search

import (
	"fmt"

	"go.uber.org/zap"

	"carapi/internal/config"
)

// New returns the Gateway for engine (one of the config.Engine* values).
func New(engine string, cfg config.SearchConfig, logger *zap.Logger) (Gateway, error) {
	switch engine {
	case config.EngineOpenSearch:
		return NewOpenSearch(cfg, logger)
	case config.EngineElasticsearch:
		return NewElasticsearch(cfg, logger)
	case config.EngineMemory:
		if logger != nil {
			logger.Warn("using in-memory search engine; data is not persisted", zap.String("index", cfg.Index))
		}
		return NewMemory(cfg.Index), nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", engine)
	}
}
