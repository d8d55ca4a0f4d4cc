package drawstore

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Shape is a drawable feature keyed by a string id.
//
// Shape implements [Feature] for [Store] instances keyed by string. It
// carries a [Kind] and free-form string properties; geometry is left to the
// caller. Properties are mutable through [Shape.SetProperty]. After changing
// a shape held by a store, report it with [Store.FeatureChanged].
//
// Shapes are created with [NewShape] and configured with [ShapeOption]
// functions such as [WithID] and [WithProperties].
type Shape struct {
	id         string
	kind       Kind
	properties map[string]string
}

// ID returns the shape's id.
func (s *Shape) ID() string {
	return s.id
}

// Kind returns the shape's geometry type.
func (s *Shape) Kind() Kind {
	return s.kind
}

// Properties returns a copy of the shape's properties.
// Returns nil if no properties are set.
func (s *Shape) Properties() map[string]string {
	return copyMap(s.properties)
}

// Property returns the value of a single property.
func (s *Shape) Property(key string) (string, bool) {
	v, ok := s.properties[key]
	return v, ok
}

// SetProperty sets a single property.
func (s *Shape) SetProperty(key, value string) {
	if s.properties == nil {
		s.properties = make(map[string]string)
	}
	s.properties[key] = value
}

// String returns "kind(id)".
func (s *Shape) String() string {
	return fmt.Sprintf("%s(%s)", s.kind, s.id)
}

// MarshalJSON implements json.Marshaler.
func (s *Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string            `json:"id"`
		Kind       Kind              `json:"kind"`
		Properties map[string]string `json:"properties,omitempty"`
	}{s.id, s.kind, s.properties})
}

// NewShape creates a [Shape] of the given kind.
//
// Without [WithID] the shape gets a random UUID as its id.
//
// Example:
//
//	pt, err := drawstore.NewShape(drawstore.KindPoint,
//	    drawstore.WithID("hq"),
//	    drawstore.WithProperties("name", "Head office"),
//	)
//
// Returns an error if the kind is unknown or any option is invalid.
func NewShape(kind Kind, opts ...ShapeOption) (*Shape, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown shape kind %q", kind)
	}

	cfg := &shapeConfig{
		properties: make(map[string]string),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	id := cfg.id
	if id == "" {
		id = uuid.NewString()
	}

	return &Shape{
		id:         id,
		kind:       kind,
		properties: cfg.properties,
	}, nil
}

// copyMap returns a shallow copy of the map.
func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
