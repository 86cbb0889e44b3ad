package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/devopstile/internal/translator"
)

var (
	fromFlag     string
	toFlag       string
	snippetsFlag string
)

var translateCmd = &cobra.Command{
	Use:   "translate --from FORMAT --to FORMAT [file]",
	Short: "Translate IaC source between formats (reads stdin without a file)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	src, err := translator.ParseFormat(fromFlag)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	dst, err := translator.ParseFormat(toFlag)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	code, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	path := snippetsFlag
	if path == "" {
		path = cfg.SnippetsFile
	}
	overlay, err := overlayTable(path)
	if err != nil {
		return err
	}
	table := translator.DefaultTable()
	table.Merge(overlay)

	fmt.Fprintln(cmd.OutOrStdout(), table.Translate(code, src, dst))
	return nil
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
