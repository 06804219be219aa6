package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/KatelynHaworth/ucode-sniffer/config"
	. "github.com/KatelynHaworth/ucode-sniffer/internal/cmd/globals"
	"github.com/KatelynHaworth/ucode-sniffer/internal/cmd/identify"
	"github.com/KatelynHaworth/ucode-sniffer/internal/cmd/inspect"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "ucode-sniffer.yaml"

var (
	rootCmd = cobra.Command{
		Use:               "ucode-sniffer [targets...]",
		Version:           "devel",
		Short:             "Identify Intel CPU microcode update files and describe the processor and release they target",
		SilenceUsage:      true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: preRun,
		RunE:              run,
	}

	verbose    *bool
	configFile *string
	mime       *bool
	compress   *bool
	workers    *int
	format     *string
)

func init() {
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		rootCmd.Version = buildInfo.Main.Version
	}

	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables logging of debug level logs by the utility")
	configFile = rootCmd.PersistentFlags().StringP("config", "c", defaultConfigFile, "Specifies the utility configuration file (JSON if the extension isn't .yaml or .yml)")
	mime = rootCmd.PersistentFlags().BoolP("mime", "i", false, "Report MIME types rather than descriptions")
	compress = rootCmd.PersistentFlags().BoolP("compress", "z", false, "Look inside gzip and zstd compressed targets")
	workers = rootCmd.PersistentFlags().IntP("workers", "w", 0, "Specifies how many targets are identified concurrently (overrides the configuration)")
	format = rootCmd.PersistentFlags().String("format", "", "Specifies the report format: text, json, yaml or plist (overrides the configuration)")

	rootCmd.AddCommand(identify.IdentifyCmd)
	rootCmd.AddCommand(inspect.InspectCmd)
}

func preRun(cmd *cobra.Command, _ []string) error {
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		return err
	}

	Logger.Debug().Str("file", *configFile).Msg("Loading utility configuration")

	// Only a configuration file that was
	// asked for explicitly has to exist
	missingOk := !cmd.Flags().Changed("config")

	var err error
	if Config, err = config.LoadConfigurationFromFile(*configFile, config.FormatForFile(*configFile), missingOk); err != nil {
		return fmt.Errorf("load config from file: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mime") {
		Config.MIME = *mime
	}

	if flags.Changed("compress") {
		Config.Compress = *compress
	}

	if flags.Changed("workers") {
		Config.Workers = *workers
	}

	if flags.Changed("format") {
		Config.Format = *format
	}

	if err = Config.Validate(); err != nil {
		return err
	}

	SourceOptions = Config.SourceOptions()
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	Logger.Debug().Msg("No sub-command supplied, defaulting to the `identify` sub-command")

	return identify.IdentifyCmd.RunE(cmd, args)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		Logger.Fatal().Err(err).Msg("Utility encountered a fatal error")
	}
}
