package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obstack/obstack/pkg/model"
	"github.com/obstack/obstack/pkg/preflight"
	"github.com/obstack/obstack/pkg/systemd"
)

// NewPreflightCmd creates the preflight command.
func NewPreflightCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "preflight [PACKAGE...]",
		Short: "Check host readiness before installing",
		Long: `Run readiness checks for the given packages (or the whole catalog):
target user, layout writability, lingering, port availability and supervisor
reachability. Nothing is modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreflight(cmd, args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runPreflight(cmd *cobra.Command, args []string, strict bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	descs, err := lookupAll(args)
	if err != nil {
		return err
	}

	desc := descs[0]
	target, err := resolveTarget(cfg, desc, 0)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	checker := &preflight.Checker{
		ConnectSupervisor: func(ctx context.Context) error {
			sd, err := systemd.New(ctx, model.Scope(cfg.Settings.Scope))
			if err != nil {
				return err
			}
			sd.Close()
			return nil
		},
	}

	checks := checker.Run(cmd.Context(), target, descs)
	for _, ch := range checks {
		fmt.Printf("[%s]\t%s: %s\n", ch.Status, ch.Name, ch.Detail)
	}

	if preflight.Failed(checks, preflight.StatusFail) ||
		(strict && preflight.Failed(checks, preflight.StatusWarn)) {
		return &ExitError{Code: ExitInstallFailed, Err: fmt.Errorf("preflight checks failed")}
	}
	return nil
}
