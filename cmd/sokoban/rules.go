package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed rules.md
var rulesMarkdown string

var flagRulesStyle string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show how to play",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&flagRulesStyle, "style", "auto", "Glamour style: auto, dark, light, pink, notty")
}

func runRules(_ *cobra.Command, _ []string) error {
	width, _ := terminalSize()
	fmt.Print(renderRules(flagRulesStyle, width))
	return nil
}

// renderRules renders the rules for a terminal of the given width. The raw
// markdown is returned if rendering fails.
func renderRules(style string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(min(width, 100) - 4)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		logger.Debug("cannot create markdown renderer", "err", err)
		return rulesMarkdown
	}
	out, err := r.Render(rulesMarkdown)
	if err != nil {
		logger.Debug("cannot render rules", "err", err)
		return rulesMarkdown
	}
	return out
}
