// Package buffer holds the editable text of a document.
//
// A Buffer stores UTF-8 content together with a line-start index and a
// revision counter that increases by one on every successful mutation.
// Positions are byte offsets (ByteOffset). Every mutation is validated
// against the current bounds before anything changes, so a failed Insert,
// Delete or Replace leaves the buffer exactly as it was.
//
// Readers take a Snapshot, an immutable view of the text at one revision.
// Motions and renderers work against snapshots, never against the live
// buffer.
//
//	buf := buffer.NewBufferFromString("hello")
//	res, err := buf.Insert(5, " world")
//	snap := buf.Snapshot()
//	snap.Text()     // "hello world"
//	snap.Revision() // 1
package buffer
