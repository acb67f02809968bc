package main

import (
	"encoding/json"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"jsfront/internal/rules"
)

type rulePayload struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all := rules.All()
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		payload := make([]rulePayload, 0, len(all))
		for _, r := range all {
			p := rulePayload{ID: r.ID(), Description: r.Description()}
			for _, sel := range r.Kinds() {
				p.Kinds = append(p.Kinds, fmt.Sprint(sel))
			}
			payload = append(payload, p)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		width := 0
		for _, r := range all {
			width = max(width, runewidth.StringWidth(r.ID()))
		}
		for _, r := range all {
			fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(r.ID(), width), r.Description())
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
