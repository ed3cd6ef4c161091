package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui"
)

var (
	cfgFile      string
	serverURL    string
	verbose      bool
	quiet        bool
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3clone-cli",
	Short: "A terminal client for the S3 Clone object storage server",
	Long: `s3clone-cli manages buckets and files on an S3 Clone server.
Without a subcommand it opens the interactive client; the subcommands
talk to the same REST API for scripting.

Example usage:
  s3clone-cli                          # Interactive client
  s3clone-cli buckets                  # List buckets
  s3clone-cli upload photos cat.png    # Upload a file
  s3clone-cli list photos              # List files of a bucket
  s3clone-cli url photos cat.png --copy`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.s3clone-cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "server base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	globalConfig, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if serverURL != "" {
		globalConfig.Server.BaseURL = serverURL
		if err := config.Validate(globalConfig); err != nil {
			return fmt.Errorf("invalid --server: %w", err)
		}
	}

	setupLogging()
	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Redirect all logs to file to prevent UI interference
	logFile := globalConfig.Log.File
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logrus.Warnf("Failed to create log directory for %s: %v", logFile, err)
	} else {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// newClient builds the transport from the loaded configuration
func newClient() (*api.Client, error) {
	client, err := api.NewClient(&GetConfig().Server)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// runInteractive launches the interactive client
func runInteractive() error {
	client, err := newClient()
	if err != nil {
		return err
	}

	model := tui.NewBrowserModel(client, GetConfig())

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Set program reference in model for upload progress messages
	model.SetProgram(program)

	_, err = program.Run()
	return err
}
