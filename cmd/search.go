package cmd

import (
	"fmt"
	"time"

	"card-catalog/feature/cards"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <game> <query>",
	Short: "Search cards of a game",
	Long:  `Searches the provider serving the game. Fresh cached results are served without contacting the provider; stale ones are used when it fails.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		game, err := cards.ParseGame(args[0])
		if err != nil {
			return err
		}

		a, err := loadApplication(ctx)
		if err != nil {
			return err
		}

		found, err := a.cards.SearchCards(ctx, game, args[1], limit, offset)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		a.logger.Debug("Search completed",
			zap.String("game", game.String()),
			zap.Int("count", len(found)),
			zap.Duration("execution_time", time.Since(startTime)),
		)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, cards.SearchResponse{Game: game, Query: args[1], Count: len(found), Data: found})
		}

		fmt.Fprintf(out, "=== %s: %q (%d) ===\n", game, args[1], len(found))
		for _, c := range found {
			writeCard(out, c)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", cards.DefaultLimit, "Page size (max 100)")
	searchCmd.Flags().Int("offset", 0, "Number of results to skip")
	searchCmd.Flags().Bool("json", false, "Print the response as JSON")
	RootCmd.AddCommand(searchCmd)
}
