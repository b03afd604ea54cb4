package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/obstack/obstack/internal/cli"
)

var (
	configPath string
	verbose    bool
	scope      string
)

func main() {
	// A local .env can carry OBSTACK_* overrides; absence is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(cli.ExitInstallFailed)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obstack",
		Short: "Provision a monitoring stack as supervised services",
		Long: `obstack installs monitoring services (prometheus, node_exporter,
alertmanager, pushgateway, grafana) from upstream release archives:
- fetch and checksum-verify the release
- place binaries and seed default configs
- render a systemd unit, enable and start the service
Installs are idempotent and run either user-mode or system-wide.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&scope, "scope", "", "install scope: user or system (default: config)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.ScopeFlag = &scope

	// Add subcommands
	cmd.AddCommand(
		cli.NewPreflightCmd(),
		cli.NewBootstrapCmd(),
		cli.NewInstallCmd(),
		cli.NewUninstallCmd(),
		cli.NewStatusCmd(),
		cli.NewPackagesCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
