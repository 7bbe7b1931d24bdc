// Package lua runs editor scripts on gopher-lua.
//
// A Runtime owns one sandboxed State. Scripts are loaded from files or
// strings and register handlers by name:
//
//	editor.handler("wrap", function(view)
//	    editor.insert("(")
//	    editor.move("word-tail")
//	    editor.insert(")")
//	end)
//
// Scripts never touch the buffer. Handlers read the view passed to them
// (text, cursor, mode, count, selection) and emit micro-ops through the
// editor module; the ops are returned to the caller, which applies them.
// A string returned from a handler or an evaluated chunk is emitted as
// inserted text.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed. Every call runs under a
// timeout and an instruction budget that each editor module call draws
// from.
package lua
