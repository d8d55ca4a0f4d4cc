// Package replay drives a drawstore Store through a session script.
//
// [Run] builds the shapes declared in a session file, executes every step
// against a fresh Store, and returns a [Transcript] of what each step
// returned and which events it fired. Transcripts have a stable text form
// ([Transcript.WriteText]) used by the CLI and by golden-file tests, and
// marshal to JSON for tooling.
//
// This package is internal to the drawstore CLI.
package replay
