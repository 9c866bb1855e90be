package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/search"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

var findNeedles []string

var findCmd = &cobra.Command{
	Use:   "find <file>",
	Short: "Locate every occurrence of one or more strings",
	Long: `Print every non-overlapping occurrence of the given needles in a file (or "-"
for stdin). When several needles match at the same position the one given first wins.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringArrayVar(&findNeedles, "needle", nil, "String to search for (repeatable, in priority order)")
	addOutputFlags(findCmd)
}

// findMatch is one needle occurrence in JSON output.
type findMatch struct {
	Needle   string             `json:"needle"`
	Location types.TextLocation `json:"location"`
}

func runFind(cmd *cobra.Command, args []string) error {
	if len(findNeedles) == 0 {
		return fmt.Errorf("at least one --needle is required")
	}

	text, prov, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	searcher := search.NewSearcher(findNeedles...)
	matches := []findMatch{}
	if candidates := searcher.Narrow(text); candidates != nil {
		for _, m := range types.NewLocatedStr(text).FindAll(candidates) {
			matches = append(matches, findMatch{Needle: candidates[m.Needle], Location: m.Location})
		}
	}
	logf(cmd, "%s: %d matches", prov.Path(), len(matches))

	switch outputFormat {
	case "json":
		return writeJSON(cmd, matches)
	case "human":
		s, err := stylesFor(colorMode)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%s %s\n", s.location.Sprintf("%-12s", m.Location), s.text.Sprintf("%q", m.Needle))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}
