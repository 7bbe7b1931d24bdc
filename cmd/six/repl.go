package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/six/internal/app"
)

const replHelp = `Each input line is fed as keys. Lines starting with '.' are commands:
  .text           print the buffer
  .ops <batch>    run a batch in op notation
  .reload         reload the config file and scripts
  .cancel         drop held keys and any pending operation
  .help           show this help
  .quit           leave
`

type replFlags struct {
	src   textSource
	watch bool
}

func newReplCmd(g *globalFlags) *cobra.Command {
	var f replFlags

	cmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Edit a buffer interactively, one line of keys at a time",
		Long: `Edit a buffer interactively. Each line typed is fed as keys and the
status line is printed after it. Changes to the config file and script
paths are picked up while the session runs.

` + replHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, g, &f, args)
		},
	}

	f.src.bind(cmd)
	cmd.Flags().BoolVar(&f.watch, "watch", true, "reload when the config file or scripts change")
	return cmd
}

func runRepl(cmd *cobra.Command, g *globalFlags, f *replFlags, args []string) error {
	if len(args) > 0 && args[0] == "-" {
		return fmt.Errorf("repl reads keys from stdin; pass the text as a file or --text")
	}
	text, err := f.src.load(cmd, args)
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}

	a, err := g.open(cmd, text)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	if f.watch && len(a.WatchPaths()) > 0 {
		grp.Go(func() error { return a.Watch(ctx) })
	}
	r := &repl{app: a, in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
	grp.Go(func() error {
		defer cancel()
		return r.loop(ctx)
	})
	return grp.Wait()
}

type repl struct {
	app *app.Application
	in  io.Reader
	out io.Writer
}

// loop reads lines until EOF, .quit, or ctx is done.
func (r *repl) loop(ctx context.Context) error {
	input := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(input)
		sc := bufio.NewScanner(r.in)
		defer func() { readErr <- sc.Err() }()
		for sc.Scan() {
			select {
			case input <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	r.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-input:
			if !ok {
				return <-readErr
			}
			if quit := r.handle(line); quit {
				return nil
			}
			r.prompt()
		}
	}
}

func (r *repl) prompt() {
	fmt.Fprintf(r.out, "%s\n> ", r.app.Editor().Status())
}

// handle runs one input line and reports whether the session should end.
func (r *repl) handle(line string) bool {
	ed := r.app.Editor()
	if !strings.HasPrefix(line, ".") {
		res, err := ed.Feed(line)
		for _, e := range res.Errors {
			fmt.Fprintf(r.out, "error: %v\n", e)
		}
		if err != nil {
			fmt.Fprintf(r.out, "fatal: %v\n", err)
		}
		fmt.Fprintln(r.out, currentLine(ed.Text(), int(ed.Status().Line)))
		return false
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "."), " ")
	switch name {
	case "q", "quit":
		return true
	case "text":
		fmt.Fprintln(r.out, ed.Text())
	case "ops":
		res, err := ed.Exec(arg)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			break
		}
		for _, e := range res.Errors {
			fmt.Fprintf(r.out, "error: %v\n", e)
		}
		if res.Outcome.Err != nil {
			fmt.Fprintf(r.out, "fatal: %v\n", res.Outcome.Err)
		}
		fmt.Fprintln(r.out, currentLine(ed.Text(), int(ed.Status().Line)))
	case "reload":
		if err := r.app.Reload(); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			break
		}
		fmt.Fprintln(r.out, "reloaded")
	case "cancel":
		ed.Cancel()
	case "help":
		fmt.Fprint(r.out, replHelp)
	default:
		fmt.Fprintf(r.out, "unknown command %q (try .help)\n", name)
	}
	return false
}

func currentLine(text string, line int) string {
	ls := lines(text)
	if line < 0 || line >= len(ls) {
		return ""
	}
	return ls[line]
}
