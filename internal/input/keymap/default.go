package keymap

import (
	"strconv"

	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
)

// Default returns a map with the default bindings installed.
func Default() *Map {
	m := New()
	for _, l := range DefaultLayers() {
		if err := m.AddLayer(l); err != nil {
			// Default tables are static; a failure is a programming error.
			panic(err)
		}
	}
	return m
}

// DefaultLayers returns the default layer of every tag.
func DefaultLayers() []Layer {
	return []Layer{
		DefaultNormal(),
		DefaultVisual(),
		DefaultInsert(),
		DefaultPending(),
	}
}

func mv(m motion.Kind) micro.Op { return micro.Move(m, 1) }

// motionBindings are shared by Normal and Visual.
func motionBindings() []Binding {
	b := []Binding{
		Bind("h", mv(motion.Left)).WithDescription("Move left"),
		Bind("j", mv(motion.Down)).WithDescription("Move down"),
		Bind("k", mv(motion.Up)).WithDescription("Move up"),
		Bind("l", mv(motion.Right)).WithDescription("Move right"),
		Bind("<Left>", mv(motion.Left)),
		Bind("<Down>", mv(motion.Down)),
		Bind("<Up>", mv(motion.Up)),
		Bind("<Right>", mv(motion.Right)),
		Bind("w", mv(motion.WordHead)).WithDescription("Move to next word"),
		Bind("b", mv(motion.WordHeadBack)).WithDescription("Move to previous word"),
		Bind("e", mv(motion.WordTail)).WithDescription("Move to end of word"),
		Bind("ge", mv(motion.WordTailBack)).WithDescription("Move to end of previous word"),
		Bind("$", mv(motion.LineEnd)).WithDescription("Move to line end"),
		Bind("^", mv(motion.FirstNonBlank)).WithDescription("Move to first non-blank"),
		Bind("<Home>", mv(motion.LineStart)),
		Bind("<End>", mv(motion.LineEnd)),
		Bind("<C-a>", mv(motion.LineStart)).WithDescription("Move to line start"),
		Bind("<C-e>", mv(motion.LineEnd)).WithDescription("Move to line end"),
		Bind("gg", mv(motion.DocumentStart)).WithDescription("Go to document start"),
		Bind("G", mv(motion.DocumentEnd)).WithDescription("Go to last line"),
		Bind("{", mv(motion.ParagraphBack)).WithDescription("Move to previous paragraph"),
		Bind("}", mv(motion.ParagraphForward)).WithDescription("Move to next paragraph"),
		Bind("f", micro.FindChar(true, false)).WithDescription("Find char forward"),
		Bind("F", micro.FindChar(false, false)).WithDescription("Find char backward"),
		Bind("t", micro.FindChar(true, true)).WithDescription("Till char forward"),
		Bind("T", micro.FindChar(false, true)).WithDescription("Till char backward"),
	}
	// 0 is a count digit after another digit and line start otherwise.
	for d := range 10 {
		b = append(b, Bind(strconv.Itoa(d), micro.Digit(d)))
	}
	return b
}

// editBindings are shared by Normal and Visual.
func editBindings() []Binding {
	return []Binding{
		Bind("<Esc>", micro.Escape()).WithDescription("Cancel"),
		Bind("x", micro.Erase(false, 1)).WithDescription("Delete character"),
		Bind("X", micro.Erase(true, 1)).WithDescription("Delete character before"),
		Bind("d", micro.Operator(micro.OpDelete)).WithDescription("Delete"),
		Bind("c", micro.Operator(micro.OpChange)).WithDescription("Change"),
		Bind("y", micro.Operator(micro.OpYank)).WithDescription("Yank"),
		Bind("s", micro.Operator(micro.OpSurround)).WithDescription("Surround"),
		Bind("r", micro.ReplaceChar()).WithDescription("Replace character"),
		Bind(`"`, micro.SetRegister(0)).WithArg().WithDescription("Select register"),
		Bind("@", micro.Replay(0)).WithArg().WithDescription("Replay register"),
		Bind("p", micro.Put(false)).WithDescription("Put after"),
		Bind("P", micro.Put(true)).WithDescription("Put before"),
		Bind(":", micro.Eval()).WithDescription("Evaluate script"),
	}
}

// DefaultNormal returns the default Normal bindings.
func DefaultNormal() Layer {
	b := append(motionBindings(), editBindings()...)
	b = append(b,
		Bind("i", micro.EnterMode(micro.Insert)).WithDescription("Insert before cursor"),
		Bind("a", micro.EnterMode(micro.Insert), mv(motion.Right)).WithDescription("Insert after cursor"),
		Bind("I", mv(motion.FirstNonBlank), micro.EnterMode(micro.Insert)).WithDescription("Insert at line start"),
		Bind("A", micro.EnterMode(micro.Insert), mv(motion.LineEnd)).WithDescription("Insert at line end"),
		Bind("o", mv(motion.LineEnd), micro.EnterMode(micro.Insert), micro.InsertText("\n")).
			WithDescription("Open line below"),
		Bind("O", mv(motion.LineStart), micro.EnterMode(micro.Insert), micro.InsertText("\n"), mv(motion.Backward)).
			WithDescription("Open line above"),
		Bind("v", micro.EnterMode(micro.Visual)).WithDescription("Visual mode"),
		Bind("u", micro.Undo()).WithDescription("Undo"),
		Bind("<C-r>", micro.Redo()).WithDescription("Redo"),
	)
	return Layer{Tag: micro.Normal, Source: "default", Bindings: b}
}

// DefaultVisual returns the default Visual bindings.
func DefaultVisual() Layer {
	b := append(motionBindings(), editBindings()...)
	b = append(b,
		Bind("v", micro.Escape()).WithDescription("Leave visual mode"),
		Bind("u", micro.Undo()),
		Bind("<C-r>", micro.Redo()),
	)
	return Layer{Tag: micro.Visual, Source: "default", Bindings: b}
}

// DefaultInsert returns the default Insert bindings. Other characters
// insert themselves.
func DefaultInsert() Layer {
	return Layer{Tag: micro.Insert, Source: "default", Bindings: []Binding{
		Bind("<Esc>", micro.Escape()).WithDescription("Leave insert mode"),
		Bind("<BS>", micro.Erase(true, 1)).WithDescription("Delete before cursor"),
		Bind("<Del>", micro.Erase(false, 1)).WithDescription("Delete at cursor"),
		Bind("<CR>", micro.InsertText("\n")),
		Bind("<Tab>", micro.InsertText("\t")),
		Bind("<Left>", mv(motion.Left)),
		Bind("<Right>", mv(motion.Right)),
		Bind("<Up>", mv(motion.Up)),
		Bind("<Down>", mv(motion.Down)),
		Bind("<Home>", mv(motion.LineStart)),
		Bind("<End>", mv(motion.LineEnd)),
		Bind("<C-a>", mv(motion.LineStart)),
		Bind("<C-e>", mv(motion.LineEnd)),
	}}
}

// DefaultPending returns the bindings used while Mode waits for a
// character or query text. Other characters are delivered as Character ops.
func DefaultPending() Layer {
	return Layer{Tag: micro.Pending, Source: "default", Bindings: []Binding{
		Bind("<Esc>", micro.Escape()).WithDescription("Cancel"),
		Bind("<CR>", micro.Character('\n')).WithDescription("Submit"),
		Bind("<Tab>", micro.Character('\t')),
		Bind("<BS>", micro.Erase(true, 1)),
	}}
}
