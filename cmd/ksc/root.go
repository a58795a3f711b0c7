// Package main implements the command-line interface for ksc, the keepstack
// chart renderer. It renders the Kubernetes manifests for a keepstack
// installation directly from the chart's metadata and values, without
// evaluating Go templates.
//
// The main CLI commands are:
//   - render: Render the full manifest stream for a release
//   - inspect: Report the resolved names, labels, and images for a release
//   - validate: Check the rendered objects against Kubernetes naming rules
//
// Each command has various flags for configuration. See the help output for
// details.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/keepstack-chart/pkg/chart"
	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/fileutil"
	"github.com/example/keepstack-chart/pkg/log"
	"github.com/example/keepstack-chart/pkg/render"
	"github.com/example/keepstack-chart/pkg/values"
)

// Global flag variables
var (
	cfgFile      string
	debugEnabled bool
	logLevel     string
)

// AppFs defines the filesystem interface to use, allows mocking in tests.
var AppFs = afero.NewOsFs()

// SetFs replaces the current filesystem with the provided one and returns a
// function to restore it. This is primarily used for testing.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// chartSource consolidates the chart and release identity flags shared by
// every subcommand.
type chartSource struct {
	ChartPath   string
	ReleaseName string
	Namespace   string
	ValueFiles  []string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ksc",
	Short: "Renderer for the keepstack Helm chart",
	Long: `ksc renders the Kubernetes manifests of a keepstack installation from the
chart's metadata and values.

It composes resource names, labels, namespaces, and image references the same
way the chart's template helpers do, and can inspect or validate the result
without touching a cluster.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level := log.LevelInfo
		if debugEnabled {
			level = log.LevelDebug
		} else if logLevel != "" {
			parsedLevel, err := log.ParseLevel(logLevel)
			if err != nil {
				log.Warnf("Invalid log level specified: '%s'. Using default: %s. Error: %v", logLevel, level, err)
			} else {
				level = parsedLevel
			}
		}
		log.SetLevel(level)
		log.Debug("logging configured", "level", level.String())
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			log.Errorf("Error: a subcommand is required. Use 'ksc --help' for available commands.")
			return errors.New("a subcommand is required")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ksc.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in the config file if one is present.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Debug("cannot resolve home directory, skipping config file", "error", err)
			return
		}
		viper.SetConfigName(".ksc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("KSC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// addChartFlags registers the chart and release identity flags shared by the
// render, inspect, and validate commands.
func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("chart-path", "c", "", "Path to the keepstack chart directory or .tgz archive (required)")
	cmd.Flags().StringP("release-name", "r", DefaultReleaseName, "Release name used for name composition and labels")
	cmd.Flags().StringP("namespace", "n", DefaultNamespace, "Release namespace (overridden by the values namespace when set)")
	cmd.Flags().StringSliceP("values", "f", nil, "Additional values files, later files override earlier ones (can repeat)")
}

// sourceFromFlags extracts and validates the shared chart flags.
func sourceFromFlags(cmd *cobra.Command) (*chartSource, error) {
	chartPath, err := cmd.Flags().GetString("chart-path")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get chart-path flag: %w", err),
		}
	}
	if chartPath == "" {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredFlag,
			Err:  errors.New("required flag \"chart-path\" not set"),
		}
	}

	releaseName, err := cmd.Flags().GetString("release-name")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get release-name flag: %w", err),
		}
	}
	namespace, err := cmd.Flags().GetString("namespace")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get namespace flag: %w", err),
		}
	}
	valueFiles, err := cmd.Flags().GetStringSlice("values")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get values flag: %w", err),
		}
	}

	return &chartSource{
		ChartPath:   chartPath,
		ReleaseName: releaseName,
		Namespace:   namespace,
		ValueFiles:  valueFiles,
	}, nil
}

// buildState loads the chart and values named by src and assembles the
// render state every subcommand works from.
func buildState(src *chartSource) (*render.State, error) {
	loader := chart.NewLoader()
	loaded, err := loader.Load(src.ChartPath)
	if err != nil {
		var notFound *chart.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &exitcodes.ExitCodeError{
				Code: exitcodes.ExitChartNotFound,
				Err:  err,
			}
		}
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitChartLoadFailed,
			Err:  fmt.Errorf("failed to load chart from %s: %w", src.ChartPath, err),
		}
	}

	vals, err := values.LoadOver(AppFs, loaded.Values, src.ValueFiles)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitValuesFileError,
			Err:  err,
		}
	}

	state := render.NewState(chart.MetadataOf(loaded), src.ReleaseName, src.Namespace, vals)
	log.Debug("render state assembled",
		"chart", state.Chart.Name,
		"release", state.ReleaseName,
		"namespace", state.Namespace(),
		"fullName", state.FullName())
	return state, nil
}

// writeOutput writes data to outputFile through AppFs, or to the command's
// stdout when outputFile is empty.
func writeOutput(cmd *cobra.Command, outputFile string, data []byte) error {
	if outputFile == "" {
		_, err := cmd.OutOrStdout().Write(data)
		if err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitIOError,
				Err:  fmt.Errorf("failed to write output: %w", err),
			}
		}
		return nil
	}

	if err := fileutil.EnsureParentDir(AppFs, outputFile); err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  err,
		}
	}
	if err := afero.WriteFile(AppFs, outputFile, data, fileutil.ReadWriteUserPermission); err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  fmt.Errorf("failed to write output file %s: %w", outputFile, err),
		}
	}
	log.Info("wrote output", "path", outputFile, "bytes", len(data))
	return nil
}

// newVersionCmd reports the ksc version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ksc version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ksc version %s\n", BinaryVersion)
			return err
		},
	}
}

// Get the root command - useful for testing
func getRootCmd() *cobra.Command {
	return rootCmd
}

// executeCommand is a helper for testing Cobra commands
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}
