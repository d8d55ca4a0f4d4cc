package drawstore

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/drawstore/internal/ordered"
)

// Feature is a drawable map feature tracked by a [Store].
//
// The store never constructs features; it only keeps references to the
// values passed to [Store.Add]. ID must be stable for the lifetime of the
// feature. [Shape] is a ready-made implementation keyed by string.
type Feature[K comparable] interface {
	ID() K
}

// Store tracks drawable features, which of them changed since the last
// render, and which of them are selected.
//
// Store is created with [New] and lives for one drawing session. It keeps:
//
//   - a feature table keyed by id, iterated in first-insertion order
//   - a set of changed ids, cleared by [Store.ClearChangedIDs] or [Store.Render]
//   - the ordered list of selected ids
//   - a buffer of selection transitions drained by [Store.FlushSelected]
//   - a dirty flag, set when a mutation requires a full re-render
//
// Store is not safe for concurrent use. All methods are synchronous and are
// expected to be called from the single goroutine driving the drawing session.
// Missing ids are never an error: lookups report not found and removals of
// absent ids are no-ops.
type Store[K comparable] struct {
	ctx    *Context
	logger *slog.Logger

	features *ordered.Map[K, Feature[K]]
	changed  *ordered.Set[K]
	selected *ordered.Set[K]

	// pending selection transitions since the last flush; an id is never in both
	newlySelected   *ordered.Set[K]
	newlyDeselected *ordered.Set[K]

	sources Sources[K]
	isDirty bool
}

// New creates an empty [Store] bound to ctx.
//
// ctx must be non-nil and carry a non-nil Map sink. The store reports
// deletions and renders to ctx.Map for its whole lifetime.
//
// Example:
//
//	h, _ := hub.New()
//	s, err := drawstore.New[string](&drawstore.Context{Map: h})
//	if err != nil {
//	    return err
//	}
//
// Returns an error if ctx is invalid or if any option fails.
func New[K comparable](ctx *Context, opts ...Option) (*Store[K], error) {
	if ctx == nil || ctx.Map == nil {
		return nil, errors.New("context map is required")
	}

	cfg := &storeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[K]{
		ctx:             ctx,
		logger:          logger,
		features:        ordered.NewMap[K, Feature[K]](),
		changed:         ordered.NewSet[K](),
		selected:        ordered.NewSet[K](),
		newlySelected:   ordered.NewSet[K](),
		newlyDeselected: ordered.NewSet[K](),
		sources: Sources[K]{
			Hot:  []Feature[K]{},
			Cold: []Feature[K]{},
		},
	}, nil
}

// Ctx returns the context the store was created with.
func (s *Store[K]) Ctx() *Context {
	return s.ctx
}

// IsDirty reports whether a full re-render is pending.
func (s *Store[K]) IsDirty() bool {
	return s.isDirty
}

// SetDirty marks the store as needing a full re-render.
//
// The flag stays set until [Store.Render] runs.
func (s *Store[K]) SetDirty() {
	s.isDirty = true
}

// Sources returns a copy of the current hot and cold render sources.
func (s *Store[K]) Sources() Sources[K] {
	return Sources[K]{
		Hot:  append([]Feature[K]{}, s.sources.Hot...),
		Cold: append([]Feature[K]{}, s.sources.Cold...),
	}
}

// FeatureChanged records that the feature with the given id needs
// re-rendering. Recording the same id twice has no further effect.
func (s *Store[K]) FeatureChanged(id K) {
	s.changed.Add(id)
}

// GetChangedIDs returns the changed ids in the order they were first recorded.
func (s *Store[K]) GetChangedIDs() []K {
	return s.changed.Items()
}

// ClearChangedIDs forgets every changed id.
func (s *Store[K]) ClearChangedIDs() {
	s.changed.Clear()
}

// Add stores f under f.ID().
//
// Adding a feature whose id is already present replaces the stored
// reference but keeps the id's original position in [Store.GetAll].
// A nil feature is ignored.
func (s *Store[K]) Add(f Feature[K]) {
	if f == nil {
		return
	}
	s.features.Set(f.ID(), f)
}

// Get returns the feature stored under id.
// The boolean is false if no such feature exists.
func (s *Store[K]) Get(id K) (Feature[K], bool) {
	return s.features.Get(id)
}

// GetAll returns every feature in first-insertion order.
//
// The returned slice is a copy; modifications do not affect the store.
func (s *Store[K]) GetAll() []Feature[K] {
	return s.features.Values()
}

// GetAllIDs returns every feature id, in the same order as [Store.GetAll].
func (s *Store[K]) GetAllIDs() []K {
	return s.features.Keys()
}

// Select appends each id that is not yet selected to the selection and
// records it as newly selected. Already selected ids are left in place.
//
// Ids do not have to belong to a stored feature.
func (s *Store[K]) Select(ids ...K) {
	for _, id := range ids {
		s.selectOne(id)
	}
}

// Deselect removes each selected id from the selection and records it as
// newly deselected. Ids that are not selected are ignored.
func (s *Store[K]) Deselect(ids ...K) {
	for _, id := range ids {
		s.deselectOne(id)
	}
}

// SetSelected replaces the selection with exactly ids.
//
// Only the difference is recorded: ids not previously selected become newly
// selected, previously selected ids missing from ids become newly deselected,
// and ids in both produce no transition. Afterwards the selection is ordered
// as ids. Calling SetSelected with no ids clears the selection.
func (s *Store[K]) SetSelected(ids ...K) {
	next := ordered.NewSet[K]()
	for _, id := range ids {
		next.Add(id)
	}

	for _, id := range s.selected.Items() {
		if !next.Has(id) {
			s.deselectOne(id)
		}
	}
	for _, id := range next.Items() {
		s.selectOne(id)
	}

	s.selected.Reset(next.Items())
}

// ClearSelected deselects every selected id.
func (s *Store[K]) ClearSelected() {
	s.SetSelected()
}

// GetSelectedIDs returns the selected ids in selection order.
//
// The returned slice is a copy; modifications do not affect the store.
func (s *Store[K]) GetSelectedIDs() []K {
	return s.selected.Items()
}

// IsSelected reports whether id is selected.
func (s *Store[K]) IsSelected(id K) bool {
	return s.selected.Has(id)
}

// FlushSelected returns the selection transitions recorded since the
// previous flush and clears them.
//
// An id selected and then deselected again between two flushes (or the
// other way around) produces no entry.
func (s *Store[K]) FlushSelected() SelectionDelta[K] {
	delta := SelectionDelta[K]{
		Selected:   s.newlySelected.Items(),
		Deselected: s.newlyDeselected.Items(),
	}
	s.newlySelected.Clear()
	s.newlyDeselected.Clear()
	return delta
}

// Delete removes the features with the given ids.
//
// Each removed id is also dropped from the selection and from the changed
// ids. Removal from the selection is not a deselection and records no
// transition. If at least one feature was removed, the store becomes dirty
// and fires [EventDeleted] once with every removed feature. Unknown ids are
// ignored; if none of the ids exist nothing is fired and the dirty flag is
// left alone.
func (s *Store[K]) Delete(ids ...K) {
	deleted := make([]Feature[K], 0, len(ids))
	for _, id := range ids {
		f, ok := s.features.Delete(id)
		if !ok {
			continue
		}
		deleted = append(deleted, f)

		if s.selected.Remove(id) {
			s.newlySelected.Remove(id)
		}
		s.changed.Remove(id)
	}

	if len(deleted) == 0 {
		return
	}

	s.isDirty = true
	s.logger.Debug("features deleted",
		"count", len(deleted),
		"remaining", s.features.Len(),
	)
	s.fire(EventDeleted, DeletedEvent[K]{Features: deleted})
}

func (s *Store[K]) selectOne(id K) {
	if !s.selected.Add(id) {
		return
	}
	if !s.newlyDeselected.Remove(id) {
		s.newlySelected.Add(id)
	}
}

func (s *Store[K]) deselectOne(id K) {
	if !s.selected.Remove(id) {
		return
	}
	if !s.newlySelected.Remove(id) {
		s.newlyDeselected.Add(id)
	}
}

// fire sends an event to the context sink.
// Panics in the sink are logged but do not propagate.
func (s *Store[K]) fire(name string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event sink panicked",
				"panic", r,
				"event", name,
			)
		}
	}()
	s.ctx.Map.Fire(name, payload)
}
