// Package key parses and formats key notation.
//
// Notation follows Vim: printable characters stand for themselves and
// special keys are written in angle brackets, optionally with modifiers:
//
//	a  G  $  <Esc>  <CR>  <BS>  <Del>  <Left>  <C-a>  <C-r>  <lt>  <Space>
//
// A sequence is keys written back to back, "gg" or "d<C-v>w". Parse
// reads one key, ParseSequence a whole sequence, and Next splits the first
// key off a string for incremental matching.
package key
