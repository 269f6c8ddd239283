// Package cmd provides the CLI commands for the Success application.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/success-cli/success/internal/adapters/notification"
	"github.com/success-cli/success/internal/adapters/proc"
	"github.com/success-cli/success/internal/adapters/storage"
	"github.com/success-cli/success/internal/adapters/tui"
	"github.com/success-cli/success/internal/config"
	"github.com/success-cli/success/internal/core"
	"github.com/success-cli/success/internal/ports"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"

	// Global flags
	archiveFlag string

	// Global dependencies
	storageAdapter ports.Storage
	appConfig      *config.Config
	logger         *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "success",
	Short: "Success - a goal and reward session timer",
	Long: `Success is an interactive terminal timer that alternates focused
work on goals with earned reward sessions. Every finished session is
archived per day, with optional quantities and per-goal notes.

Run "success" with no arguments to open the interactive view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&archiveFlag, "archive", "", "Archive directory (default: ~/.success)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Success\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(mcpCmd)
}

// initializeServices loads configuration and opens the archive.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}
	if archiveFlag != "" {
		appConfig.Storage.ArchiveDir = archiveFlag
	}

	archiveDir := config.ExpandArchiveDir(appConfig)

	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "success.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	} else {
		logger = log.New(logFile, "", log.LstdFlags)
	}

	storageAdapter, err = storage.New(archiveDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runInteractive wires the core state machine to its adapters and
// hands control to the TUI until the user quits.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	notifier := notification.New(&appConfig.Notifications)
	procs := proc.New(logger)

	app, err := core.New(ctx, core.Deps{
		Storage:    storageAdapter,
		Processes:  procs,
		Notifier:   notifier,
		Logger:     logger,
		ArchiveDir: config.ExpandArchiveDir(appConfig),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	// Shutdown is idempotent; the TUI calls it on a clean quit, this
	// covers signal-driven exits.
	defer app.Shutdown()

	if err := tui.Run(ctx, app, appConfig); err != nil {
		return err
	}
	return nil
}
