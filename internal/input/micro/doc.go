// Package micro defines micro-operations, the atomic instructions the modal
// core consumes, and the text notation used to write them down.
//
// An Op is an immutable value: a Kind plus the payload fields that kind
// uses. Constructors such as Move, InsertText and FindChar build valid ops;
// the zero value of an unused field carries no meaning.
//
// The notation is one op per term, terms separated by whitespace or ';':
//
//	enter(insert) insert(" world") escape
//	digit(2) operator(delete) digit(3) move(word-head)
//	find(forward, till) char(x)
//
// Parse and String round-trip: Parse(op.String()) yields op again.
package micro
