package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/six/internal/input/mode"
)

type opsFlags struct {
	src    textSource
	write  bool
	status bool
}

func newOpsCmd(g *globalFlags) *cobra.Command {
	var f opsFlags

	cmd := &cobra.Command{
		Use:   "ops <batch>...",
		Short: "Run op batches against a buffer",
		Long: `Run batches written in op notation and print the resulting text.

Each argument is one batch. A batch ends early on a halt or a fatal error.

Examples:
  six ops --text 'abc' 'move(line-end)' 'insert("!")'
  six ops --file notes.txt --write 'move(document-end) insert("\n-- \n")'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(cmd, g, &f, args)
		},
	}

	f.src.bind(cmd)
	cmd.Flags().StringVarP(&f.src.file, "file", "f", "", "read the buffer from a file (\"-\" for stdin)")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result back to --file")
	cmd.Flags().BoolVarP(&f.status, "status", "s", false, "print errors and the final status to stderr")
	return cmd
}

func runOps(cmd *cobra.Command, g *globalFlags, f *opsFlags, batches []string) error {
	text, err := f.src.load(cmd, nil)
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}

	a, err := g.open(cmd, text)
	if err != nil {
		return err
	}
	defer a.Close()
	ed := a.Editor()

	for _, batch := range batches {
		res, err := ed.Exec(batch)
		if err != nil {
			return err
		}
		if f.status {
			report(cmd.ErrOrStderr(), res.Errors, ed.Status())
		}
		if res.Outcome.Status == mode.StatusError {
			return res.Outcome.Err
		}
	}

	if f.write {
		return f.src.write(ed.Text())
	}
	_, err = io.WriteString(cmd.OutOrStdout(), ed.Text())
	return err
}
