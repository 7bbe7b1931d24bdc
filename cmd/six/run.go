package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type runFlags struct {
	src      textSource
	keys     string
	keysFile string
	write    bool
	status   bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Feed keys to a buffer and print the result",
		Long: `Feed keys to a buffer and print the resulting text.

The buffer is read from the file argument ("-" for stdin) or --text.
Keys come from --keys, --keys-file, or stdin when the buffer does not.
Each line of a keys file is fed in turn; trailing newlines are ignored.

Examples:
  six run notes.txt --keys 'dd"ayyP'
  echo 'foo bar' | six run - --keys 'se()'
  six run --text 'abc' --keys 'A!<Esc>' --status`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd, g, &f, args)
		},
	}

	f.src.bind(cmd)
	cmd.Flags().StringVarP(&f.keys, "keys", "k", "", "keys in key notation")
	cmd.Flags().StringVar(&f.keysFile, "keys-file", "", "file holding keys, fed line by line")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVarP(&f.status, "status", "s", false, "print errors and the final status to stderr")
	cmd.MarkFlagsMutuallyExclusive("keys", "keys-file")
	return cmd
}

func runKeys(cmd *cobra.Command, g *globalFlags, f *runFlags, args []string) error {
	text, err := f.src.load(cmd, args)
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}
	input, err := f.input(cmd)
	if err != nil {
		return fmt.Errorf("reading keys: %w", err)
	}

	a, err := g.open(cmd, text)
	if err != nil {
		return err
	}
	defer a.Close()
	ed := a.Editor()

	for _, line := range input {
		res, err := ed.Feed(line)
		if f.status {
			report(cmd.ErrOrStderr(), res.Errors, ed.Status())
		}
		if err != nil {
			return err
		}
	}

	if f.write {
		return f.src.write(ed.Text())
	}
	_, err = io.WriteString(cmd.OutOrStdout(), ed.Text())
	return err
}

// input returns the key sequences to feed.
func (f *runFlags) input(cmd *cobra.Command) ([]string, error) {
	switch {
	case cmd.Flags().Changed("keys"):
		return []string{f.keys}, nil
	case f.keysFile != "":
		data, err := os.ReadFile(f.keysFile)
		if err != nil {
			return nil, err
		}
		return lines(string(data)), nil
	case f.src.file == "-":
		return nil, fmt.Errorf("stdin holds the text; use --keys or --keys-file")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return []string{strings.TrimRight(string(data), "\n")}, nil
}
