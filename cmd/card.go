package cmd

import (
	"fmt"

	"card-catalog/feature/cards"

	"github.com/spf13/cobra"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:   "card <game> <id>",
	Short: "Fetch one card by its provider id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		game, err := cards.ParseGame(args[0])
		if err != nil {
			return err
		}

		a, err := loadApplication(ctx)
		if err != nil {
			return err
		}

		card, err := a.cards.GetCardByID(ctx, game, args[1])
		if err != nil {
			return fmt.Errorf("card lookup failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, card)
		}
		writeCard(out, *card)
		if card.Image != "" {
			fmt.Fprintf(out, "Image: %s\n", card.Image)
		}
		return nil
	},
}

func init() {
	cardCmd.Flags().Bool("json", false, "Print the card as JSON")
	RootCmd.AddCommand(cardCmd)
}
