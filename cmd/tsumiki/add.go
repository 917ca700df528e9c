package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/corpus"
)

var addFile string

func getAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [sentence]...",
		Short: "Ingest sentences",
		Long: `Ingest sentences given as arguments, or split from a plain
text file with --file. Each sentence is tokenized and every new word
gets a fresh review card.

Examples:
  tsumiki add "猫が好きです。"
  tsumiki add --file chapter1.txt`,
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addFile, "file", "", "plain text file to split into sentences")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	sentences := args
	if addFile != "" {
		fromFile, err := corpus.LoadText(addFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", addFile, err)
		}
		sentences = append(sentences, fromFile...)
	}
	if len(sentences) == 0 {
		return fmt.Errorf("nothing to add: pass sentences or --file")
	}

	session, db, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := session.AddMaterial(sentences); err != nil {
		return err
	}
	fmt.Printf("Added %d sentences\n", len(sentences))
	return nil
}
