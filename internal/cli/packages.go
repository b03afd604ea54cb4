package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/obstack/obstack/pkg/model"
)

// NewPackagesCmd creates the packages command.
func NewPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the supported packages",
		Long:  "Display the package catalog with default versions and ports.",
		RunE:  runPackages,
	}

	return cmd
}

func runPackages(*cobra.Command, []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, TabWidth, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tVERSION\tPORT\tBINARIES")
	for _, desc := range model.Catalog() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
			desc.Name, desc.DefaultVersion, desc.DefaultPort, len(desc.Binaries))
	}
	return w.Flush()
}
