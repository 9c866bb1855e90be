package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/store"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
	reportContents  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from scan results",
	Long:  "Read sources from a datastore and output a summary report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "macrolex.db", "Path to datastore file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
	reportCmd.Flags().BoolVar(&reportContents, "contents", false, "Include stored comments and tokens")
}

// sourceReport is one source in JSON output.
type sourceReport struct {
	*store.Source
	Comments []types.LocatedStr `json:"comments,omitempty"`
	Tokens   []types.Token      `json:"tokens,omitempty"`
}

func runReport(cmd *cobra.Command, args []string) error {
	storePath := reportDatastore

	// Check if it's :memory: (invalid for report)
	if storePath == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}

	// Opening a missing path would create an empty database
	if _, err := os.Stat(storePath); err != nil {
		return fmt.Errorf("datastore not found: %s", storePath)
	}

	s, err := store.New(store.Config{
		Path: storePath,
	})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	sources, err := s.GetSources()
	if err != nil {
		return fmt.Errorf("retrieving sources: %w", err)
	}

	reports := make([]sourceReport, 0, len(sources))
	for _, src := range sources {
		r := sourceReport{Source: src}
		if reportContents {
			if r.Comments, err = s.GetComments(src.ID); err != nil {
				return fmt.Errorf("retrieving comments: %w", err)
			}
			if r.Tokens, err = s.GetTokens(src.ID); err != nil {
				return fmt.Errorf("retrieving tokens: %w", err)
			}
		}
		reports = append(reports, r)
	}

	switch reportFormat {
	case "json":
		return writeJSON(cmd, reports)
	case "human":
		return outputReportHuman(cmd, reports, storePath)
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}
}

func outputReportHuman(cmd *cobra.Command, reports []sourceReport, datastorePath string) error {
	st, err := stylesFor(reportColor)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var tokens, comments, size int64
	for _, r := range reports {
		tokens += int64(r.TokenCount)
		comments += int64(r.CommentCount)
		size += r.Size
	}

	fmt.Fprintf(out, "%s\n", st.heading.Sprint("=== Macrolex Report ==="))
	fmt.Fprintf(out, "Datastore: %s\n", datastorePath)
	fmt.Fprintf(out, "Total sources: %s (%s)\n", humanize.Comma(int64(len(reports))), humanize.Bytes(uint64(size)))
	fmt.Fprintf(out, "Total tokens: %s\n", humanize.Comma(tokens))
	fmt.Fprintf(out, "Total comments: %s\n", humanize.Comma(comments))

	if len(reports) == 0 {
		fmt.Fprintf(out, "\nNo sources.\n")
		return nil
	}

	for i, r := range reports {
		fmt.Fprintf(out, "\n%s (%s %s)\n",
			st.heading.Sprintf("Source %d/%d", i+1, len(reports)),
			st.heading.Sprint("id"),
			st.id.Sprint(r.ID.Hex()))
		fmt.Fprintf(out, "    %s %s\n", st.heading.Sprint("Path:"), st.metadata.Sprint(r.Path))
		fmt.Fprintf(out, "    %s %s\n", st.heading.Sprint("Kind:"), r.Kind)
		fmt.Fprintf(out, "    %s %s\n", st.heading.Sprint("Size:"), humanize.Bytes(uint64(r.Size)))
		fmt.Fprintf(out, "    %s %d\n", st.heading.Sprint("Tokens:"), r.TokenCount)
		fmt.Fprintf(out, "    %s %d\n", st.heading.Sprint("Comments:"), r.CommentCount)

		for _, c := range r.Comments {
			fmt.Fprintf(out, "        %s %s\n", st.location.Sprintf("%-12s", c.Start), st.text.Sprintf("%q", c.Text))
		}
		for _, tok := range r.Tokens {
			fmt.Fprintf(out, "        %s %s %s\n",
				st.location.Sprintf("%-12s", tok.Location),
				st.kind(tok.Kind).Sprintf("%-12s", tok.Kind),
				st.text.Sprintf("%q", tok.Text.Text))
		}
	}

	return nil
}
