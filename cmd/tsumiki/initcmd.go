package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsumiki/tsumiki/pkg/config"
)

func getInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default tsumiki.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			const path = "tsumiki.yaml"
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
