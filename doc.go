// Package drawstore provides an in-memory store for drawable map features.
//
// A [Store] tracks which features exist, which of them changed since the
// last render, and which of them are selected. It reports deletions and
// renders to an external map context through the [EventSink] capability,
// so it has no dependency on any particular map or rendering library.
//
// # Quick Start
//
// Bind a store to an event sink and add features:
//
//	h, _ := hub.New()
//	store, _ := drawstore.New[string](&drawstore.Context{Map: h})
//
//	pt, _ := drawstore.NewShape(drawstore.KindPoint, drawstore.WithID("p"))
//	store.Add(pt)
//
// # Selection
//
// Selection is an ordered list of ids. Every transition is buffered until
// the caller drains it with [Store.FlushSelected]:
//
//	store.Select("p", "l")
//	store.FlushSelected() // {Selected: [p l], Deselected: []}
//	store.SetSelected("l")
//	store.FlushSelected() // {Selected: [], Deselected: [p]}
//
// [Store.SetSelected] replaces the selection with the minimal set of
// transitions. Selecting and deselecting the same id between two flushes
// cancels out.
//
// # Changes and rendering
//
// Callers report edited features with [Store.FeatureChanged]. Deletions
// mark the whole store dirty. [Store.Render] sorts features into hot
// (changed) and cold (settled) sources, fires [EventRender], and clears
// both the changed ids and the dirty flag.
//
// # Events
//
// [EventDeleted] is fired once per [Store.Delete] call that removed
// anything, with the removed features as payload. The hub package provides
// sinks: a publish-subscribe [hub.Hub], a call [hub.Recorder], and [hub.Tee].
//
// # Concurrency
//
// A Store is meant to be driven from a single goroutine, like a UI event
// loop. It takes no locks. Sinks are called synchronously.
//
// # Architecture
//
//   - drawstore: the Store, events, and the [Shape] feature type
//   - hub: event sinks
//   - config: YAML session files for the CLI
//   - internal/ordered: insertion-ordered set and map
//   - internal/replay: drives a Store through a session file
//   - cmd/drawstore: the CLI (replay, validate, version)
package drawstore
