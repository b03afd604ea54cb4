package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/obstack/obstack/pkg/layout"
	"github.com/obstack/obstack/pkg/model"
)

// NewBootstrapCmd creates the bootstrap command.
func NewBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap [PACKAGE...]",
		Short: "Create the directory layout for installs",
		Long: `Create the config, data, log, bin and unit directories for the given
packages (or the whole catalog). For system-wide installs run this once as
root; afterwards installs run unprivileged.`,
		RunE: runBootstrap,
	}

	return cmd
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	descs, err := lookupAll(args)
	if err != nil {
		return err
	}

	lm := layout.NewManager()
	for _, desc := range descs {
		target, err := resolveTarget(cfg, desc, 0)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		if err := lm.Ensure(target); err != nil {
			return &ExitError{Code: ExitInstallFailed,
				Err: fmt.Errorf("failed to bootstrap %s: %w", desc.Name, err)}
		}
		fmt.Printf("%s: layout ready under %s\n", desc.Name, target.ConfigDir)
	}

	if model.Scope(cfg.Settings.Scope) == model.ScopeUser {
		u, err := resolveUser()
		if err == nil {
			if _, statErr := os.Stat(filepath.Join("/var/lib/systemd/linger", u.Name)); statErr != nil {
				fmt.Printf("hint: enable lingering so services survive logout: loginctl enable-linger %s\n", u.Name)
			}
		}
	}
	return nil
}
