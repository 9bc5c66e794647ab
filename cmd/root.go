/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpapenbr/lapreport/log"
	"github.com/mpapenbr/lapreport/pkg/config"
	"github.com/mpapenbr/lapreport/pkg/service"
	"github.com/mpapenbr/lapreport/version"
)

const envPrefix = "LAPREPORT"

// annotation cobra uses for MarkFlagsMutuallyExclusive
const mutuallyExclusiveAnnotation = "cobra_annotation_mutually_exclusive"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // by design
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lapreport",
		Short: "Report of the best laps of a qualifying session",
		Long: `Reads the driver abbreviations and the start and end logs of a session
from the data directory and prints the drivers ordered by their lap time.`,
		Version:      version.FullVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.lapreport.yml)")

	cmd.Flags().StringVarP(&config.DataDir,
		"files",
		"f",
		config.DefaultDataDir,
		"path to the directory with the data files")
	cmd.Flags().BoolVar(&config.Ascending,
		"asc",
		false,
		"ascending order, fastest driver first (default)")
	cmd.Flags().BoolVar(&config.Descending,
		"desc",
		false,
		"descending order, slowest driver first")
	cmd.MarkFlagsMutuallyExclusive("asc", "desc")
	cmd.Flags().StringVarP(&config.Driver,
		"driver",
		"d",
		"",
		"show only the statistics of the driver with this name (or part of it)")
	cmd.Flags().StringVar(&config.OutputFormat,
		"format",
		string(config.FormatText),
		"report output format (text, json)")

	cmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"warn",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (text, json)")
	cmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules, e.g. \"*:roster,laptime\"")
	cmd.PersistentFlags().StringVar(&config.LogConfig,
		"log-config",
		"",
		"path to a log config file (overrides the other log flags)")

	return cmd
}

func runReport(cmd *cobra.Command) error {
	logger, err := setupLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log.ResetDefault(logger)
	//nolint:errcheck // nothing we can do about it
	defer logger.Sync()

	cfg, err := config.FromFlags()
	if err != nil {
		return err
	}
	log.Debug("Config:",
		log.String("dataDir", cfg.DataDir),
		log.String("order", string(cfg.Order)),
		log.String("driver", cfg.Driver),
		log.String("format", string(cfg.Format)))

	ctx := log.AddToContext(cmd.Context(), logger)
	out, err := service.NewReportService(cfg).BuildReport(ctx)
	if err != nil {
		log.Error("could not build report", log.ErrorField(err))
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func setupLogger(w io.Writer) (*log.Logger, error) {
	lc := &log.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		Filter: config.LogFilter,
	}
	if config.LogConfig != "" {
		var err error
		if lc, err = log.LoadConfig(config.LogConfig); err != nil {
			return nil, err
		}
	}
	return lc.Build(w, log.WarnLevel, log.WithCaller(true), log.AddCallerSkip(1))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		// Search config in home directory with name ".lapreport" (without extension).
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".lapreport")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("could not read config file: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	bindFlags(cmd, v)
	return nil
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to LAPREPORT_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value. A flag given on the command line wins over config values
		// for the other flags of its exclusive group.
		if !f.Changed && v.IsSet(f.Name) && !exclusiveFlagChanged(cmd.Flags(), f) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}

// exclusiveFlagChanged reports whether another flag of a mutually exclusive
// group of f was set on the command line.
func exclusiveFlagChanged(flags *pflag.FlagSet, f *pflag.Flag) bool {
	for _, group := range f.Annotations[mutuallyExclusiveAnnotation] {
		for _, name := range strings.Split(group, " ") {
			if other := flags.Lookup(name); other != nil && other != f && other.Changed {
				return true
			}
		}
	}
	return false
}
