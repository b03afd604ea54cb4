package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obstack/obstack/pkg/model"
	"github.com/obstack/obstack/pkg/orchestrator"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		version string
		port    int
		sha256  string
	)

	cmd := &cobra.Command{
		Use:   "install PACKAGE...",
		Short: "Install monitoring services",
		Long: `Install one or more monitoring packages as supervised services.
Each install fetches the release archive, verifies its checksum, places the
binaries, renders a unit file and starts the service. Re-running an install
converges to the same state; edited config files are never overwritten.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && (version != "" || port != 0 || sha256 != "") {
				return &ExitError{Code: ExitUsage,
					Err: fmt.Errorf("--version, --port and --sha256 apply to a single package")}
			}
			return runInstall(cmd, args, version, port, sha256)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Release version to install (defaults to the catalog version)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port override")
	cmd.Flags().StringVar(&sha256, "sha256", "", "Expected archive digest when the vendor publishes no manifest")

	return cmd
}

func runInstall(cmd *cobra.Command, packages []string, version string, port int, sha256 string) error {
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

	notRunning := 0
	for _, desc := range descs {
		target, err := resolveTarget(cfg, desc, port)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		ov := cfg.Override(desc.Name)

		opts := orchestrator.InstallOptions{
			Version:        version,
			InlineChecksum: sha256,
			ExtraFlags:     ov.ExtraFlags,
		}
		if opts.Version == "" {
			opts.Version = ov.Version
		}
		if opts.InlineChecksum == "" {
			opts.InlineChecksum = ov.SHA256
		}

		res, err := orch.Install(ctx, desc, target, opts)
		if err != nil {
			return &ExitError{Code: ExitInstallFailed,
				Err: fmt.Errorf("failed to install %s: %w", desc.Name, err)}
		}
		if res.Outcome == model.OutcomeInstalledNotRunning {
			fmt.Printf("%s %s installed, but the service is not running: %v\n",
				desc.Name, res.Version, res.StartErr)
			notRunning++
			continue
		}
		fmt.Printf("%s %s is installed and running (%s, checksum via %s)\n",
			desc.Name, res.Version, describeChange(res), res.Verification.Source)
	}

	if notRunning > 0 {
		return &ExitError{Code: ExitNotRunning,
			Err: fmt.Errorf("%d service(s) installed but not running", notRunning)}
	}
	return nil
}

// describeChange renders the install classification, including the prior
// version when one was replaced.
func describeChange(res *orchestrator.Result) string {
	switch res.Change {
	case orchestrator.ChangeUpgrade, orchestrator.ChangeDowngrade:
		return fmt.Sprintf("%s from %s", res.Change, res.PriorVersion)
	default:
		return string(res.Change)
	}
}
