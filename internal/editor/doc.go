// Package editor owns a buffer and drives the mode machine from keys.
//
// An Editor holds the state, registers, key map and script runtime, and
// implements mode.Context for them. Keys arrive in notation form through
// Feed or one at a time through HandleKey; each translated batch runs to
// completion before the next key is read. Keys that start a longer
// binding are held until the binding completes or diverges.
//
// Editor is safe for concurrent use. Reload swaps the key map and script
// runtime between batches.
package editor
