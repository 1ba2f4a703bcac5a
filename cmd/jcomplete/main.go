package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jcomplete/config"
)

const version = "0.1.0"

type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
	cfg        *config.Config
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "jcomplete",
		Short:        "Completion of this-members for Java sources",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a jcomplete.toml")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newCompleteCmd(opts))
	rootCmd.AddCommand(newMembersCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the configuration and configures logging. Flags override
// the configured values.
func (o *globalOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = o.verbose
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)

	o.cfg = cfg
	return nil
}
