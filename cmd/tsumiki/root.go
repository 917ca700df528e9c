package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/config"
	"github.com/tsumiki/tsumiki/pkg/srs"
	"github.com/tsumiki/tsumiki/pkg/store"
	"github.com/tsumiki/tsumiki/pkg/tokenize"
)

var (
	cfgFile string
	dbPath  string
	cfg     config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tsumiki",
		Short: "Tsumiki schedules spaced-repetition review of mined sentences",
		Long: `Tsumiki is a sentence-mining spaced-repetition scheduler.

Sentences are segmented into words; every word carries a review card.
Reviewing a sentence advances every word in it, and new material is
ordered so the next sentence is always the one closest to fully known
(i+1 preference).

Commands:
  init      write a default config file
  add       ingest sentences from arguments or a text file
  import    ingest a web article or a Core-style CSV export
  review    interactive review loop
  suggest   list i+N sentences
  stats     show card counts
  simulate  replay N days of reviews with randomized answers

Configuration is read from --config, ./tsumiki.yaml, TSUMIKI_*
environment variables, then built-in defaults.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./tsumiki.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"sqlite database path (overrides config)")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getAddCmd())
	rootCmd.AddCommand(getImportCmd())
	rootCmd.AddCommand(getReviewCmd())
	rootCmd.AddCommand(getSuggestCmd())
	rootCmd.AddCommand(getStatsCmd())
	rootCmd.AddCommand(getSimulateCmd())

	return rootCmd
}

// openSession opens the configured database and builds a session over
// the configured algorithm. The caller closes the returned DB.
func openSession(c config.Config) (*srs.Session, *sql.DB, error) {
	db, err := store.Open(c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", c.DBPath, err)
	}

	algo, err := buildAlgorithm(c, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return srs.NewSession(algo, c.DailyNewLimit, c.MaxLearningCards), db, nil
}

func buildAlgorithm(c config.Config, db *sql.DB) (srs.Algorithm, error) {
	switch c.Algorithm {
	case config.AlgorithmWords:
		analyzer, err := tokenize.NewAnalyzer()
		if err != nil {
			return nil, fmt.Errorf("create analyzer: %w", err)
		}
		return srs.NewWordScheduler(store.NewWords(db), analyzer), nil
	case config.AlgorithmSentences:
		return srs.NewSentenceScheduler(store.NewSentences(db)), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", c.Algorithm)
}
