package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/scribekit/pkg/config"
)

// settingsLoader resolves service settings for a command invocation. Commands
// receive it instead of calling the config package directly so tests can
// substitute a canned loader.
type settingsLoader func() (*config.Settings, error)

func newRootCommand() *cobra.Command {
	var envFiles []string

	loadSettings := func() (*config.Settings, error) {
		var opts []config.Option
		if len(envFiles) > 0 {
			opts = append(opts, config.WithEnvFiles(envFiles...))
		}
		return config.NewSettings(opts...)
	}

	rootCmd := &cobra.Command{
		Use:           "scribekit",
		Short:         "Inspect and validate the transcription service environment",
		Long:          "scribekit resolves the transcription service configuration from the environment and provides diagnostics for the runtime it would start with.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Additional env files to load before resolving settings")

	rootCmd.AddCommand(newConfigCommand(loadSettings))
	rootCmd.AddCommand(newDoctorCommand(loadSettings))

	return rootCmd
}
