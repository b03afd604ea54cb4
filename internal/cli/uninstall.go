package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obstack/obstack/pkg/orchestrator"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "uninstall PACKAGE...",
		Short: "Uninstall monitoring services",
		Long: `Stop and disable the services, remove their unit files and binaries.
Config, data and log directories are preserved unless --purge is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, args, purge)
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also remove config, data and log directories")

	return cmd
}

func runUninstall(cmd *cobra.Command, packages []string, purge bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	descs, err := lookupAll(packages)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	orch, sd, err := buildOrchestrator(ctx, cfg, progressHooks())
	if err != nil {
		return &ExitError{Code: ExitInstallFailed, Err: err}
	}
	defer sd.Close()

	for _, desc := range descs {
		target, err := resolveTarget(cfg, desc, 0)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		if err := orch.Uninstall(ctx, desc, target, orchestrator.UninstallOptions{Purge: purge}); err != nil {
			return &ExitError{Code: ExitInstallFailed,
				Err: fmt.Errorf("failed to uninstall %s: %w", desc.Name, err)}
		}
		fmt.Printf("%s uninstalled\n", desc.Name)
	}
	return nil
}
