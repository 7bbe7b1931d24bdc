// Package keymap translates key notation into micro-op batches.
//
// A Map holds one prefix tree of bindings per mode tag. Translate walks
// the tree with the keys typed so far and reports one of three results:
//
//   - Matched: a binding fired; its ops and the bytes it consumed are returned
//   - Prefix: the keys start a longer binding and more input is needed
//   - NoMatch: nothing is bound; the first key should be skipped
//
// Keys that are not bound fall back by tag. In Insert a plain character
// inserts itself; while Pending it is delivered as a Character op.
//
// Bindings may take an argument key. `"a` selects register a and `@q`
// replays register q; the argument rune fills the Rune field of the
// binding's register and replay ops.
//
// Default bindings are installed by Default. User bindings from the
// configuration are layered on top with Bind, which overrides any
// default for the same keys.
package keymap
