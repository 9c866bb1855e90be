package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/serve"
	"github.com/praetorian-inc/macrolex/pkg/syntax"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the Macrolex build, the stream protocol version and the built-in syntax",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	def := syntax.Default()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Macrolex v%s (%s)\n", version, commit)
	fmt.Fprintf(out, "Built with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Serve protocol: %s\n", serve.Version)
	fmt.Fprintf(out, "Default syntax: start %q, end %q\n", def.MacroStartMarker, def.MacroEndIdent)
	return nil
}
