package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	verbose    bool
	settings   settings
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "partwire",
		Short:         "partwire checks and simulates component manifests",
		Long:          `partwire loads a component manifest, orders the alternative implementations of each contract and the view-creation listeners, and simulates text view creation against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			flags.settings = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default: ./.partwire.yaml or ~/.config/partwire/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("duplicate-policy", "", "Duplicate implementation policy: strict or graceful (default depends on CI)")
	cmd.PersistentFlags().Bool("trace", false, "Export view creation spans to stderr")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newOrderCmd(flags))
	cmd.AddCommand(newNotifyCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
