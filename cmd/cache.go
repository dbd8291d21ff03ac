package cmd

import (
	"fmt"

	"github.com/GabRoyer/icanhasical/pkg/config"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local course document cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached course document",
	Long:  `Remove every cached course document. The next export will re-download them from Polytechnique.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		if err := loader.ClearCache(); err != nil {
			return err
		}
		fmt.Println("Course cache cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
