package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the macro tokens of a file",
	Long: `Split a file (or "-" for stdin) into alphanumeric runs, single-character symbols
and macro terminators, printing each with its location.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	addSyntaxFlags(tokensCmd)
	addOutputFlags(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading syntax: %w", err)
	}

	text, prov, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	tokens := scanner.Tokens(scanner.NewTokenIterWithSyntax(types.NewLocatedStr(text), settings))
	logf(cmd, "%s: %d tokens", prov.Path(), len(tokens))

	switch outputFormat {
	case "json":
		if tokens == nil {
			tokens = []types.Token{}
		}
		return writeJSON(cmd, tokens)
	case "human":
		s, err := stylesFor(colorMode)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, tok := range tokens {
			text := tok.Text.Text
			if tok.Kind == types.Terminator {
				text = settings.MacroEndIdent
			}
			fmt.Fprintf(out, "%s %s %s\n",
				s.location.Sprintf("%-12s", tok.Location),
				s.kind(tok.Kind).Sprintf("%-12s", tok.Kind),
				s.text.Sprintf("%q", text))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}
