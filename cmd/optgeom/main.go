// Command optgeom builds solid optical elements from a YAML prescription
// and reports their derived geometry. It is a diagnostics harness for
// checking a prescription before handing the solids to a host renderer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "optgeom",
		Short:         "Build CSG solids from an optical prescription",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
