package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/corpus"
	"github.com/tsumiki/tsumiki/pkg/simulate"
)

var (
	simCSV  string
	simDays int
	simSeed int64
	simOut  string
)

func getSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay N days of reviews with randomized answers",
		Long: `Load a CSV corpus into a throwaway in-memory database and
replay a number of days, answering every review at random (mostly
Good). Writes day,learnt,reviewed rows for plotting scheduler
behavior.

Example:
  tsumiki simulate --csv core6k.csv --days 100 --out out.csv`,
		RunE: runSimulate,
	}

	cmd.Flags().StringVar(&simCSV, "csv", "", "CSV corpus file (required)")
	cmd.Flags().IntVar(&simDays, "days", 100, "days to simulate")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&simOut, "out", "out.csv", "output CSV path")
	cmd.MarkFlagRequired("csv")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sentences, err := corpus.LoadCSV(simCSV, corpus.SentenceColumn)
	if err != nil {
		return err
	}

	// Simulation never touches the real database.
	simCfg := cfg
	simCfg.DBPath = ":memory:"
	session, db, err := openSession(simCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := session.AddMaterial(sentences); err != nil {
		return err
	}

	out, err := os.Create(simOut)
	if err != nil {
		return err
	}
	defer out.Close()

	results, err := simulate.Run(session, simDays, simSeed, out)
	if err != nil {
		return err
	}

	var learned, reviewed int
	for _, r := range results {
		learned += r.Learned
		reviewed += r.Reviewed
	}
	fmt.Printf("Simulated %d days with %q: %d learned, %d reviewed (%s)\n",
		len(results), simCfg.Algorithm, learned, reviewed, simOut)
	return nil
}
