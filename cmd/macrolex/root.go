package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	// logMu serializes progress lines written from enumerator goroutines.
	logMu sync.Mutex
)

var rootCmd = &cobra.Command{
	Use:   "macrolex",
	Short: "Macrolex - location-aware macro source scanner",
	Long: `Macrolex splits macro source into comments and tokens and reports the exact
line, column and byte offset of each one.

Scan results for whole trees can be stored in a SQLite datastore and reported later.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logf writes a progress line to stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...interface{}) {
	if !verbose || quiet {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

// cmdLogger adapts logf to the DebugLogger interfaces of the library packages.
type cmdLogger struct {
	cmd *cobra.Command
}

func (l cmdLogger) Log(format string, args ...interface{}) {
	logf(l.cmd, format, args...)
}
