package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/srs"
	"github.com/tsumiki/tsumiki/pkg/store"
)

func getStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show card counts",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	defer db.Close()

	st, err := store.NewWords(db).CollectStats(srs.NextMidnight(time.Now()))
	if err != nil {
		return err
	}

	fmt.Printf("Words:          %d\n", st.Words)
	fmt.Printf("Sentences:      %d\n", st.Sentences)
	fmt.Printf("Unlearned:      %d\n", st.NewCards)
	fmt.Printf("Due today:      %d\n", st.DueCards)
	return nil
}
