package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

func getReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Run an interactive review session",
		Long: `Present reviews one at a time until nothing is left today.

Answer each sentence with 1 (Again), 2 (Hard), 3 (Good) or 4 (Easy),
or q to stop. A new sentence with more unknown words than
max_new_per_sentence is held back; the available i+N sentences are
listed instead.`,
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	session, db, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	in := bufio.NewScanner(os.Stdin)

	for {
		review, err := session.NextReview()
		if err != nil {
			return err
		}
		if review == nil {
			fmt.Println("No more reviews")
			break
		}

		if review.Kind == srs.ReviewNew && review.UnknownWords > cfg.MaxNewPerSentence {
			fmt.Printf("No more reviews (next sentence is i+%d, above the i+%d limit)\n",
				review.UnknownWords, cfg.MaxNewPerSentence)
			printSuggestions(session, review.UnknownWords)
			break
		}

		switch review.Kind {
		case srs.ReviewNew:
			fmt.Printf("\nNew sentence (i+%d)\n", review.UnknownWords)
		case srs.ReviewDue:
			fmt.Printf("\nDue sentence (%d words due)\n", review.WordsDue)
		}
		fmt.Println(review.Sentence.Text)

		d, quit := promptDifficulty(in)
		if quit {
			break
		}
		if err := session.SubmitReview(d); err != nil {
			return err
		}
	}

	fmt.Printf("%d cards learned today, %d cards reviewed today\n",
		session.CardsLearnedToday(), session.CardsReviewedToday())
	return nil
}

func promptDifficulty(in *bufio.Scanner) (srs.Difficulty, bool) {
	for {
		fmt.Print("[1] Again  [2] Hard  [3] Good  [4] Easy  [q] Quit > ")
		if !in.Scan() {
			return 0, true
		}
		answer := strings.TrimSpace(in.Text())

		switch answer {
		case "q", "Q":
			return 0, true
		case "1":
			return srs.Again, false
		case "2":
			return srs.Hard, false
		case "3":
			return srs.Good, false
		case "4":
			return srs.Easy, false
		}

		if d, err := srs.ParseDifficulty(answer); err == nil {
			return d, false
		}
	}
}

func printSuggestions(session *srs.Session, maxUnknown int) {
	suggestions, err := session.Suggest(maxUnknown)
	if err != nil || len(suggestions) == 0 {
		fmt.Println("Available i+N sentences: (none)")
		return
	}

	fmt.Printf("Available i+%d sentences:\n", maxUnknown)
	shown := 0
	for _, sug := range suggestions {
		if len(sug.Unknown) == 0 {
			continue
		}
		fmt.Printf("  %s (unknown words: %s)\n",
			sug.Sentence.Text, strings.Join(sug.Unknown, ", "))
		shown++
		if shown >= cfg.MaxSuggestions {
			break
		}
	}
	if shown == 0 {
		fmt.Println("  (none)")
	}
}
