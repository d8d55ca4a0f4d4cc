package config

import (
	"fmt"
	"sort"

	"github.com/jpalmerr/drawstore"
)

// BuildShapes converts the declared features into shapes, in declaration order.
//
// Features without an id get a random UUID.
func BuildShapes(cfg *Config) ([]*drawstore.Shape, error) {
	shapes := make([]*drawstore.Shape, 0, len(cfg.Features))
	for i, fc := range cfg.Features {
		sh, err := buildShape(fc)
		if err != nil {
			return nil, fmt.Errorf("features[%d]: %w", i, err)
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

// buildShape converts a single FeatureConfig to a Shape.
func buildShape(fc FeatureConfig) (*drawstore.Shape, error) {
	var opts []drawstore.ShapeOption

	if fc.ID != "" {
		opts = append(opts, drawstore.WithID(fc.ID))
	}

	if len(fc.Properties) > 0 {
		opts = append(opts, drawstore.WithProperties(mapToKeyValuePairs(fc.Properties)...))
	}

	return drawstore.NewShape(drawstore.Kind(fc.Kind), opts...)
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
