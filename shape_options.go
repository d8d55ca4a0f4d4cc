package drawstore

import "errors"

// shapeConfig holds mutable state during shape construction.
type shapeConfig struct {
	id         string
	properties map[string]string
}

// ShapeOption is a function that configures a [Shape] during construction.
//
// Options return an error if validation fails.
//
// Built-in options: [WithID], [WithProperty], [WithProperties].
type ShapeOption func(*shapeConfig) error

// WithID sets the shape's id.
//
// Returns an error if the id is empty.
func WithID(id string) ShapeOption {
	return func(cfg *shapeConfig) error {
		if id == "" {
			return errors.New("shape id cannot be empty")
		}
		cfg.id = id
		return nil
	}
}

// WithProperty sets a single property.
//
// Returns an error if the key is empty.
func WithProperty(key, value string) ShapeOption {
	return func(cfg *shapeConfig) error {
		if key == "" {
			return errors.New("property key cannot be empty")
		}
		cfg.properties[key] = value
		return nil
	}
}

// WithProperties sets properties from key-value pairs.
//
// Example:
//
//	sh, err := drawstore.NewShape(drawstore.KindLine,
//	    drawstore.WithProperties("name", "Route 9", "lanes", "2"),
//	)
//
// Returns an error if an odd number of arguments is provided or a key is empty.
func WithProperties(keyValues ...string) ShapeOption {
	return func(cfg *shapeConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithProperties requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			if keyValues[i] == "" {
				return errors.New("property key cannot be empty")
			}
			cfg.properties[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}
