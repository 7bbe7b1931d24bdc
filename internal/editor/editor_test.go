package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/six/internal/config"
	"github.com/dshills/six/internal/input/key"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/mode"
	"github.com/dshills/six/internal/input/register"
)

func feed(t *testing.T, e *Editor, keys string) Result {
	t.Helper()
	res, err := e.Feed(keys)
	require.NoError(t, err)
	return res
}

func TestInsertSession(t *testing.T) {
	e := New("")
	res := feed(t, e, "ihello<Esc>")
	require.Equal(t, "hello", e.Text())
	require.Equal(t, micro.Normal, e.Mode())
	require.Equal(t, 7, res.Batches)
	require.Empty(t, res.Errors)
	require.Empty(t, res.Pending)
}

func TestNormalEditing(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"delete word", "foo bar", "dw", "bar"},
		{"delete counted words", "a b c d e f g h", "2d3w", "g h"},
		{"delete line", "a\nb\n", "dd", "b\n"},
		{"erase char", "abc", "x", "bc"},
		{"change word", "foo bar", "cwbaz<Esc>", "baz bar"},
		{"append", "ab", "aX<Esc>", "aXb"},
		{"open below", "a\nc", "oX<Esc>", "a\nX\nc"},
		{"find and delete", "abc,def", "dfd", "ef"},
		{"undo", "abc", "xu", "abc"},
		{"redo", "abc", "xu<C-r>", "bc"},
		{"yank put", "ab", "ylp", "aab"},
		{"named register", "ab cd", `"ayww"aP`, "ab ab cd"},
		{"replace char", "abc", "rz", "zbc"},
		{"surround", "foo bar", "se()", "(foo) bar"},
		{"visual delete", "abcdef", "vlld", "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.text)
			res := feed(t, e, tt.keys)
			require.Empty(t, res.Errors)
			require.Equal(t, tt.want, e.Text())
		})
	}
}

func TestPrefixKeysAreHeld(t *testing.T) {
	e := New("one\ntwo\nthree", WithCursor(8))
	res := feed(t, e, "g")
	require.Equal(t, "g", res.Pending)
	require.Equal(t, 0, res.Batches)
	require.Contains(t, e.Status().String(), "[g]")

	res = feed(t, e, "g")
	require.Empty(t, res.Pending)
	require.EqualValues(t, 0, e.Cursor().Primary())
}

func TestRegisterArgumentSplitAcrossFeeds(t *testing.T) {
	e := New("ab")
	feed(t, e, `"`)
	feed(t, e, "b")
	feed(t, e, "yl")
	v, err := e.Register('b')
	require.NoError(t, err)
	require.Equal(t, "a", v.Text)
}

func TestHandleKey(t *testing.T) {
	e := New("")
	for _, ev := range []key.Event{key.Rune('i'), key.Rune('<'), key.Rune(' '), key.Special(key.KeyEscape, key.ModNone)} {
		_, err := e.HandleKey(ev)
		require.NoError(t, err)
	}
	require.Equal(t, "< ", e.Text())
	require.Equal(t, micro.Normal, e.Mode())
}

func TestSkippedKeys(t *testing.T) {
	e := New("abc")
	res := feed(t, e, "Qx")
	require.Equal(t, []string{"Q"}, res.Skipped)
	require.Equal(t, "bc", e.Text())
}

func TestRecoverableErrorsAreCollected(t *testing.T) {
	e := New("abc")
	res := feed(t, e, "fzx")
	require.Len(t, res.Errors, 1)
	require.Equal(t, mode.NotFound, res.Errors[0].Kind)
	require.Equal(t, "bc", e.Text())
}

func TestReplayRegister(t *testing.T) {
	e := New("abcd")
	require.NoError(t, e.ctx.regs.Set('q', register.Value{Text: "xihi<Esc>x"}))
	res := feed(t, e, "@q")
	require.Empty(t, res.Errors)
	require.Equal(t, "hicd", e.Text())
}

func TestExec(t *testing.T) {
	e := New("abc")
	res, err := e.Exec(`move(line-end) insert("!")`)
	require.NoError(t, err)
	require.Equal(t, 2, res.Consumed)
	require.Equal(t, "abc!", e.Text())

	_, err = e.Exec("fly(away)")
	require.ErrorIs(t, err, micro.ErrSyntax)
}

func TestCancel(t *testing.T) {
	e := New("abc")
	feed(t, e, "2d")
	_, pending := e.mode.Pending()
	require.True(t, pending)
	e.Cancel()
	st := e.Status()
	require.Equal(t, micro.Normal, st.Tag)
	require.Empty(t, st.Awaiting)
	require.Zero(t, st.Count)
}

func TestStatus(t *testing.T) {
	e := New("ab\ncd", WithCursor(4))
	feed(t, e, `3"a`)
	st := e.Status()
	require.Equal(t, 3, st.Count)
	require.Equal(t, 'a', st.Register)
	require.EqualValues(t, 1, st.Line)
	require.Equal(t, 1, st.Column)
	require.Equal(t, `NORMAL 3 "a 2:2`, st.String())

	feed(t, e, "<Esc>f")
	require.Contains(t, e.Status().String(), "PENDING FindTarget")
}

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestFromConfigScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "wrap.lua", `
editor.handler("wrap", function(v)
  editor.op("move(line-start)")
  editor.insert("[")
  editor.move("line-end")
  editor.insert("]")
end)
editor.handler("boom", function() error("boom") end)`)

	cfg := config.Default()
	cfg.Scripts.Paths = []string{dir}
	cfg.Keymap["normal"] = map[string]string{"W": "run(wrap)", "B": "run(boom)"}

	e, err := FromConfig("word", cfg)
	require.NoError(t, err)
	defer e.Close()

	feed(t, e, "W")
	require.Equal(t, "[word]", e.Text())

	res := feed(t, e, "B")
	require.Len(t, res.Errors, 1)
	require.Equal(t, mode.ScriptFailure, res.Errors[0].Kind)
	require.ErrorIs(t, res.Errors[0], mode.ErrScript)

	feed(t, e, `0:return "x" .. 2<CR>`)
	require.Equal(t, "x2[word]", e.Text())
	v, err := e.Register('=')
	require.NoError(t, err)
	require.Equal(t, `return "x" .. 2`, v.Text)
}

func TestScriptRunWithoutRuntime(t *testing.T) {
	e := New("abc", WithKeyMap(nil))
	res := e.Run([]micro.Op{micro.RunScript("wrap")})
	require.Len(t, res.Errors, 1)
	require.Equal(t, mode.ScriptFailure, res.Errors[0].Kind)
}

func TestFatalErrorStopsFeed(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Fatal = []string{"InapplicableInState"}
	cfg.Keymap["normal"] = map[string]string{"Z": "delete"}
	e, err := FromConfig("abc", cfg)
	require.NoError(t, err)
	defer e.Close()

	res, err := e.Feed("Zx")
	var me *mode.Error
	require.True(t, errors.As(err, &me))
	require.Equal(t, mode.InapplicableInState, me.Kind)
	require.Equal(t, 1, res.Batches)
	require.Equal(t, "abc", e.Text())
	require.Empty(t, e.Status().Pending)
}

func TestReload(t *testing.T) {
	e := New("abc")
	feed(t, e, "g")

	cfg := config.Default()
	cfg.Keymap["normal"] = map[string]string{"x": "move(right)"}
	require.NoError(t, e.Reload(cfg))
	require.Empty(t, e.Status().Pending)

	feed(t, e, "x")
	require.Equal(t, "abc", e.Text())
	require.EqualValues(t, 1, e.Cursor().Primary())

	bad := config.Default()
	bad.Scripts.Paths = []string{filepath.Join(t.TempDir(), "missing.lua")}
	require.Error(t, e.Reload(bad))
	feed(t, e, "x")
	require.EqualValues(t, 2, e.Cursor().Primary())
}

func TestConcurrentFeeds(t *testing.T) {
	e := New("")
	feed(t, e, "i")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				_, _ = e.Feed("a")
				_ = e.Status()
			}
		}()
	}
	wg.Wait()
	require.Len(t, e.Text(), 200)
}

func TestIDIsStable(t *testing.T) {
	e := New("")
	require.Equal(t, e.ID(), e.ID())
	require.NotEqual(t, e.ID(), New("").ID())
}

type debugLogger struct{ lines []string }

func (l *debugLogger) Debug(msg string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(msg, args...))
}
func (l *debugLogger) Info(string, ...any) {}
func (l *debugLogger) Warn(string, ...any) {}

func TestBufferCarriesSessionID(t *testing.T) {
	log := &debugLogger{}
	e := New("abc", WithLogger(log))
	require.Equal(t, e.ID(), e.ctx.Snapshot().BufferID())

	feed(t, e, "x")
	prefix := fmt.Sprintf("editor %s: batch [", e.ID())
	var found bool
	for _, line := range log.lines {
		if strings.HasPrefix(line, prefix) {
			found = true
			require.Contains(t, line, "revision 1")
		}
	}
	require.True(t, found, "no batch line in %q", log.lines)
}
