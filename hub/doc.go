// Package hub provides event sinks for a drawstore Store.
//
// A Store reports deletions and renders by calling Fire on the sink in its
// Context. This package supplies ready-made sinks:
//
//   - [Hub]: publish-subscribe fan-out of fired events to channel subscribers
//   - [Recorder]: records every call in order, for tests and transcripts
//   - [Tee]: forwards each call to several sinks in order
//
// Hub is designed for concurrent access. Subscribers receive events via
// buffered channels with non-blocking sends (slow subscribers miss events
// rather than block the store, and every miss is counted).
package hub
