package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd groups cache maintenance commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the card cache",
}

// cacheClearCmd represents the cache clear command
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached payload",
	Long:  `Removes all cached search results and cards, including the stale copies used as fallback when a provider fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := loadApplication(ctx)
		if err != nil {
			return err
		}

		removed, err := a.cards.ClearCache(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached payloads from %s\n", removed, a.cfg.Cache.Backend)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	RootCmd.AddCommand(cacheCmd)
}
