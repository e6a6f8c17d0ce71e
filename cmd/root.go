package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel   string
	logHuman   bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Rotaclock switches between alarm, timer, stopwatch and weather as the device rotates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, launch the graphical widget
			if len(args) == 0 {
				return runGUI(cmd.Context(), flags)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the settings file")
	cmd.PersistentFlags().BoolVar(&flags.logHuman, "log-human", false, "Write human readable logs instead of JSON")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to settings.yaml")

	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
