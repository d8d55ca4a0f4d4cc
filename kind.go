package drawstore

// Kind is the geometry type of a [Shape].
//
// Kind is a string type that can hold one of three predefined values:
// [KindPoint], [KindLine], or [KindPolygon].
type Kind string

const (
	// KindPoint is a single position.
	KindPoint Kind = "point"

	// KindLine is an open path of positions.
	KindLine Kind = "line"

	// KindPolygon is a closed ring of positions.
	KindPolygon Kind = "polygon"
)

// String returns the string representation of the kind.
// This implements the fmt.Stringer interface.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the predefined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPoint, KindLine, KindPolygon:
		return true
	}
	return false
}
