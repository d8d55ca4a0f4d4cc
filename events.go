package drawstore

// Event names fired through [EventSink].
const (
	// EventDeleted is fired once per [Store.Delete] call that removed at
	// least one feature. The payload is a [DeletedEvent].
	EventDeleted = "draw.deleted"

	// EventRender is fired by [Store.Render]. The payload is a [RenderEvent].
	EventRender = "draw.render"
)

// EventSink receives events from a [Store].
//
// EventSink stands in for the map or render layer the store reports to.
// Fire is called synchronously on the goroutine that mutated the store and
// must not call back into the same store.
type EventSink interface {
	Fire(name string, payload any)
}

// EventSinkFunc adapts an ordinary function to [EventSink].
type EventSinkFunc func(name string, payload any)

// Fire calls f(name, payload).
func (f EventSinkFunc) Fire(name string, payload any) {
	f(name, payload)
}

// Context is the external context a [Store] is bound to for its lifetime.
type Context struct {
	// Map receives events fired by the store. Required.
	Map EventSink
}

// DeletedEvent is the payload of [EventDeleted].
//
// Features holds the removed feature objects (not just their ids), in the
// order they were passed to [Store.Delete].
type DeletedEvent[K comparable] struct {
	Features []Feature[K] `json:"featureIds"`
}

// RenderEvent is the payload of [EventRender].
type RenderEvent[K comparable] struct {
	// Hot holds the features that changed since the previous render.
	Hot []Feature[K] `json:"hot"`

	// Cold holds every other rendered feature.
	Cold []Feature[K] `json:"cold"`

	// ColdChanged reports whether the cold source differs from the previous render.
	ColdChanged bool `json:"cold_changed"`
}

// SelectionDelta holds the selection transitions accumulated between two
// calls to [Store.FlushSelected].
//
// Both slices are always non-nil.
type SelectionDelta[K comparable] struct {
	Selected   []K `json:"selected"`
	Deselected []K `json:"deselected"`
}

// Empty reports whether the delta records no transitions.
func (d SelectionDelta[K]) Empty() bool {
	return len(d.Selected) == 0 && len(d.Deselected) == 0
}

// Sources holds the render-batching classification of features.
type Sources[K comparable] struct {
	Hot  []Feature[K] `json:"hot"`
	Cold []Feature[K] `json:"cold"`
}
