package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/article"
	"github.com/tsumiki/tsumiki/pkg/corpus"
)

var (
	importURL    string
	importCSV    string
	importColumn string
)

func getImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Ingest a web article or a CSV corpus",
		Long: `Ingest material in bulk.

With --url the page is fetched, its readable content extracted
(furigana stripped) and split into sentences. With --csv a Core-style
CSV export is read; --column selects the sentence column.

Examples:
  tsumiki import --url https://example.com/article
  tsumiki import --csv core6k.csv
  tsumiki import --csv export.csv --column sentence_expression`,
		RunE: runImport,
	}

	cmd.Flags().StringVar(&importURL, "url", "", "article URL to fetch")
	cmd.Flags().StringVar(&importCSV, "csv", "", "CSV corpus file")
	cmd.Flags().StringVar(&importColumn, "column", corpus.SentenceColumn,
		"CSV column holding the sentence")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	var sentences []string

	switch {
	case importURL != "":
		art, err := article.Fetch(cmd.Context(), importURL)
		if err != nil {
			return err
		}
		fmt.Printf("Fetched %q (%d chars)\n", art.Title, len(art.Text))
		sentences = art.Sentences()
	case importCSV != "":
		var err error
		sentences, err = corpus.LoadCSV(importCSV, importColumn)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("pass --url or --csv")
	}

	if len(sentences) == 0 {
		return fmt.Errorf("no sentences found")
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
