package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/devopstile/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Print the assistant reply and FAQ set for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, assistant.MatchResponse(q))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Related questions:")
	for _, f := range assistant.SelectFAQ(q) {
		fmt.Fprintf(out, "  - %s\n", f.Question)
	}
	return nil
}
