package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [PACKAGE...]",
		Short: "Show install and service state",
		Long: `Report the state of the given packages, or of the whole catalog when
none are named. State is derived from the host: placed binaries, unit files
and the supervisor. There is no separate install database.`,
		RunE: runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	descs, err := lookupAll(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	orch, sd, err := buildOrchestrator(ctx, cfg, progressHooks())
	if err != nil {
		return &ExitError{Code: ExitInstallFailed, Err: err}
	}
	defer sd.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, TabWidth, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tVERSION\tBINARY\tUNIT\tENABLED\tACTIVE")
	for _, desc := range descs {
		target, err := resolveTarget(cfg, desc, 0)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		rec, err := orch.Status(ctx, desc, target)
		if err != nil {
			return &ExitError{Code: ExitInstallFailed, Err: err}
		}
		version := rec.InstalledVersion
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Package, version,
			yesNo(rec.BinaryPresent), yesNo(rec.UnitPresent),
			yesNo(rec.Enabled), yesNo(rec.Active))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
