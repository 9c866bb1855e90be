package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/types"
)

var locateAt int

var locateCmd = &cobra.Command{
	Use:   "locate <file>",
	Short: "Resolve a byte offset to a line and column",
	Long: `Print the 0-based line, column and byte offset of --at within a file (or "-" for
stdin). An offset inside a multi-byte character resolves to the start of that character.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().IntVar(&locateAt, "at", -1, "Byte offset to resolve")
	addOutputFlags(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	text, _, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	if locateAt < 0 || locateAt > len(text) {
		return fmt.Errorf("offset %d out of range [0, %d]", locateAt, len(text))
	}

	loc := types.ComputeLocation(types.TextLocation{}, text, locateAt)

	switch outputFormat {
	case "json":
		return writeJSON(cmd, loc)
	case "human":
		s, err := stylesFor(colorMode)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Line:"), loc.Line)
		fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Column:"), loc.Column)
		fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Byte:"), loc.Byte)
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Position:"), s.location.Sprint(loc))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}
