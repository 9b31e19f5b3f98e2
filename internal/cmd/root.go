// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stamp-dev/stamp/internal/config"
	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
	"github.com/stamp-dev/stamp/internal/version"
)

var (
	// Global flags
	configFlag     string
	debugFlag      bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	stampConfig *config.Config
)

// NewRootCmd creates the root command for the stamp CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stamp",
		Short: "Generate files from project templates",
		Long: `stamp renders directory templates into new files.

A template is a directory whose file names and contents may contain
placeholders such as {{name}}. Templates are looked up in
.stamp/templates of the working directory and each of its parents, then
in the global templates directory. The first template found wins.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: STAMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return exitError(oerrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Run '%s --help' for usage.", c.CommandPath())))
	})

	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration, sets up logging and makes sure the
// global templates directory exists.
func initializeGlobals(cmd *cobra.Command) error {
	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return exitError(err)
	}
	stampConfig = loaded

	// Timestamps: flag (if explicitly set) > config > off
	logCfg := output.LogConfig{
		Debug:  debugFlag,
		Writer: cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if stampConfig.Log.Timestamps != nil {
		logCfg.Timestamps = stampConfig.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("stamp started",
		"version", info.Version,
		"config", configFlag,
		"templatesDir", stampConfig.TemplatesDir,
	)

	if err := config.EnsureGlobalTemplatesDir(stampConfig.TemplatesDir); err != nil {
		return exitError(err)
	}

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return stampConfig
}
