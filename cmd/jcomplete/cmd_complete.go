package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jcomplete/format"
	"github.com/dhamidi/jcomplete/java/codebase"
)

func newCompleteCmd(opts *globalOptions) *cobra.Command {
	var line, column int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Complete at a position of a Java file",
		Long:  "Run the completion pipeline at --line (1-based) and --column (0-based, UTF-16 code units) of a file on disk.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrap(err, "resolve path")
			}

			cb := codebase.New(filepath.Dir(path), codebaseOptions(opts.cfg)...)
			if err := cb.ScanFile(path); err != nil {
				return err
			}

			items, _, err := cb.CompleteAt(cmd.Context(), path, line, column)
			if err != nil {
				return err
			}

			var enc format.Encoder = format.NewTableEncoder(os.Stdout)
			if asJSON {
				enc = format.NewJSONEncoder(os.Stdout)
			}
			return enc.EncodeSuggestions(items)
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "cursor line, 1-based")
	cmd.Flags().IntVar(&column, "column", 0, "cursor column, 0-based UTF-16 units")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagRequired("line")
	cmd.MarkFlagRequired("column")

	return cmd
}
