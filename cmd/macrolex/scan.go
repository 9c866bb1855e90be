package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/enum"
	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/store"
	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

var (
	scanOutputPath    string
	scanOutputFormat  string
	scanMaxFileSize   int64
	scanIncludeHidden bool
	scanIncremental   bool
	scanExtensions    []string
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Scan a file or directory and store the results",
	Long: `Scan every text file under a target, storing each file's comments and tokens in
a SQLite datastore. Files matched by the root .gitignore, hidden files and binary
files are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanOutputPath, "output", "macrolex.db", "Output database path")
	scanCmd.Flags().StringVar(&scanOutputFormat, "format", "human", "Output format: human, json")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to scan (bytes)")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "Skip already-scanned sources")
	scanCmd.Flags().StringSliceVar(&scanExtensions, "ext", nil, "Only scan files with these extensions (comma-separated)")
	addSyntaxFlags(scanCmd)
}

// scanStats counts scan work; the enumerator calls back from several goroutines.
type scanStats struct {
	sources  atomic.Int64
	skipped  atomic.Int64
	tokens   atomic.Int64
	comments atomic.Int64
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Validate target exists
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading syntax: %w", err)
	}

	s, err := store.New(store.Config{
		Path: scanOutputPath,
	})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	enumerator := enum.NewFilesystemEnumerator(enum.Config{
		Root:           target,
		IncludeHidden:  scanIncludeHidden,
		MaxFileSize:    scanMaxFileSize,
		FollowSymlinks: false,
		Extensions:     scanExtensions,
		Logger:         cmdLogger{cmd: cmd},
	})

	var stats scanStats
	err = enumerator.Enumerate(context.Background(), func(content []byte, id types.SourceID, prov types.Provenance) error {
		return scanSource(cmd, s, settings, &stats, content, id, prov)
	})
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	// Summary goes to stderr for json so stdout stays pure JSON
	summary := cmd.OutOrStdout()
	if scanOutputFormat == "json" {
		summary = cmd.ErrOrStderr()
	}
	if !quiet {
		if scanIncremental {
			fmt.Fprintf(summary, "Scan complete: %d sources, %d tokens, %d comments (%d sources skipped)\n",
				stats.sources.Load(), stats.tokens.Load(), stats.comments.Load(), stats.skipped.Load())
		} else {
			fmt.Fprintf(summary, "Scan complete: %d sources, %d tokens, %d comments\n",
				stats.sources.Load(), stats.tokens.Load(), stats.comments.Load())
		}
		fmt.Fprintf(summary, "Results stored in: %s\n", scanOutputPath)
	}

	switch scanOutputFormat {
	case "json":
		sources, err := s.GetSources()
		if err != nil {
			return fmt.Errorf("retrieving sources: %w", err)
		}
		if sources == nil {
			sources = []*store.Source{}
		}
		return writeJSON(cmd, sources)
	case "human":
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", scanOutputFormat)
	}
}

// scanSource scans one source and persists the results.
func scanSource(cmd *cobra.Command, s store.Store, settings syntax.Settings, stats *scanStats, content []byte, id types.SourceID, prov types.Provenance) error {
	if scanIncremental {
		exists, err := s.SourceExists(id)
		if err != nil {
			return fmt.Errorf("checking source: %w", err)
		}
		if exists {
			stats.skipped.Add(1)
			logf(cmd, "skipping %s: already scanned", prov.Path())
			return nil
		}
	}

	result := scanner.Scan(string(content), settings)

	if err := s.AddSource(id, prov, int64(len(content))); err != nil {
		return fmt.Errorf("storing source: %w", err)
	}
	if err := s.AddTokens(id, result.Tokens); err != nil {
		return fmt.Errorf("storing tokens: %w", err)
	}
	if err := s.AddComments(id, result.Comments); err != nil {
		return fmt.Errorf("storing comments: %w", err)
	}

	stats.sources.Add(1)
	stats.tokens.Add(int64(len(result.Tokens)))
	stats.comments.Add(int64(len(result.Comments)))
	logf(cmd, "scanned %s: %d tokens, %d comments", prov.Path(), len(result.Tokens), len(result.Comments))
	return nil
}
