package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jcomplete/java/codebase"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			server := codebase.NewLSPServer(version, cfg.LSP.TriggerCharacters, codebaseOptions(cfg)...)
			return server.RunStdio()
		},
	}
}
