package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestMax int

func getSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "List i+N sentences",
		Long: `List sentences with at most N unknown words, easiest first.
A sentence with zero unknown words is fully known.`,
		RunE: runSuggest,
	}

	cmd.Flags().IntVarP(&suggestMax, "max-unknown", "n", 1,
		"maximum unknown words per sentence")

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	session, db, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	suggestions, err := session.Suggest(suggestMax)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Println("(none)")
		return nil
	}

	for _, sug := range suggestions {
		if len(sug.Unknown) == 0 {
			fmt.Printf("i+0  %s\n", sug.Sentence.Text)
			continue
		}
		fmt.Printf("i+%d  %s (unknown: %s)\n",
			len(sug.Unknown), sug.Sentence.Text, strings.Join(sug.Unknown, ", "))
	}
	return nil
}
