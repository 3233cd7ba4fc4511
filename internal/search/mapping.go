package search

// DefaultIndexName is the index used for car documents.
const DefaultIndexName = "cars"

// indexDefinition returns the settings and mapping for the cars index.
func indexDefinition() map[string]any {
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"make":        map[string]any{"type": "keyword"},
				"model":       map[string]any{"type": "text"},
				"year":        map[string]any{"type": "integer"},
				"price":       map[string]any{"type": "float"},
				"color":       map[string]any{"type": "keyword"},
				"description": map[string]any{"type": "text"},
				"created_at":  map[string]any{"type": "date", "format": "yyyy-MM-dd HH:mm:ss"},
			},
		},
	}
}
