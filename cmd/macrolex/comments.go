package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

var commentsCmd = &cobra.Command{
	Use:   "comments <file>",
	Short: "Print the leading line comments of a file",
	Long: `Print the bodies of the "//" comments at the start of a file (or "-" for stdin).
Scanning stops at the first line that is not a comment.`,
	Args: cobra.ExactArgs(1),
	RunE: runComments,
}

func init() {
	addSyntaxFlags(commentsCmd)
	addOutputFlags(commentsCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading syntax: %w", err)
	}

	text, prov, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	comments := scanner.Comments(scanner.NewCommentIterWithSyntax(types.NewLocatedStr(text), settings))
	logf(cmd, "%s: %d comments", prov.Path(), len(comments))

	switch outputFormat {
	case "json":
		if comments == nil {
			comments = []types.LocatedStr{}
		}
		return writeJSON(cmd, comments)
	case "human":
		s, err := stylesFor(colorMode)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range comments {
			fmt.Fprintf(out, "%s %s\n", s.location.Sprintf("%-12s", c.Start), s.text.Sprintf("%q", c.Text))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}
