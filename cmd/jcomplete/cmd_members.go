package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jcomplete/format"
)

func newMembersCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "members <file>",
		Short: "List the members of the first type declared in a Java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return errors.Wrap(err, "read java file")
			}

			cu, err := newProvider(opts.cfg).Parse(cmd.Context(), data)
			if err != nil {
				return errors.Wrapf(err, "parse %s", filename)
			}
			cls, ok := cu.PrimaryType()
			if !ok {
				return errors.Newf("%s: no class-like type declaration", filename)
			}

			var enc format.Encoder = format.NewTableEncoder(os.Stdout)
			if asJSON {
				enc = format.NewJSONEncoder(os.Stdout)
			}
			return enc.EncodeClass(cls)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
