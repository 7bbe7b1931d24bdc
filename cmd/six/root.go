package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/six/internal/app"
	"github.com/dshills/six/internal/editor"
	"github.com/dshills/six/internal/input/mode"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	config   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "six",
		Short: "A modal editing core driven by keys, ops and Lua",
		Long: `six applies vi-style modal editing to text without a screen.

Keys are written in key notation ("d2w", "ihi<Esc>", "<C-r>"). Ops are
written in op notation ("move(word-head, 2) delete"). Bindings and scripts
come from a TOML or YAML config file.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.config, "config", "c", os.Getenv("SIX_CONFIG"),
		"config file (TOML or YAML)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "",
		"log level: debug, info, warn or error (logs go to stderr)")

	root.AddCommand(newRunCmd(&g), newOpsCmd(&g), newReplCmd(&g))
	return root
}

// open starts an application holding text. Logs go to stderr only when
// a level is requested on the command line.
func (g *globalFlags) open(cmd *cobra.Command, text string) (*app.Application, error) {
	opts := app.Options{
		ConfigPath: g.config,
		LogLevel:   g.logLevel,
		Text:       text,
	}
	if g.logLevel != "" {
		opts.LogOutput = cmd.ErrOrStderr()
	}
	return app.New(opts)
}

// readText returns the content of path, or of the reader when path is "-".
// An empty path or a missing file gives empty text.
func readText(path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	return string(data), err
}

// report writes recoverable errors and the final status to w.
func report(w io.Writer, errs []*mode.Error, status editor.Status) {
	for _, err := range errs {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	fmt.Fprintln(w, status)
}

// textSource resolves the buffer source for run and ops. --text wins over
// a file argument.
type textSource struct {
	text  string
	isSet bool
	file  string
}

func (s *textSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.text, "text", "t", "", "initial buffer text")
}

func (s *textSource) load(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		s.file = args[0]
	}
	if cmd.Flags().Changed("text") {
		s.isSet = true
		return s.text, nil
	}
	return readText(s.file, cmd.InOrStdin())
}

// write saves text back to the file argument.
func (s *textSource) write(text string) error {
	if s.file == "" || s.file == "-" || s.isSet {
		return fmt.Errorf("--write needs a file argument")
	}
	return os.WriteFile(s.file, []byte(text), 0o644)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
