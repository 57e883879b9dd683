package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/wire"
)

var giftCmd = &cobra.Command{
	Use:   "gift",
	Short: "Manage gifts",
	Long:  "Seed, list, and inspect the gifts of the event",
}

var giftSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create one unclaimed gift per imported person",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		resp, err := wire.GiftService().SeedGifts(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed gifts: %w", err)
		}

		fmt.Printf("✓ Created %d gift(s), skipped %d existing\n", resp.Created, resp.Skipped)
		return nil
	},
}

var giftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		unclaimed, _ := cmd.Flags().GetBool("unclaimed")
		owner, _ := cmd.Flags().GetString("owner")

		gifts, err := wire.GiftService().ListGifts(ctx, primary.GiftFilters{
			OwnerID:   owner,
			Unclaimed: unclaimed,
		})
		if err != nil {
			return fmt.Errorf("failed to list gifts: %w", err)
		}

		if len(gifts) == 0 {
			fmt.Println("No gifts found")
			return nil
		}

		claimed := color.New(color.FgYellow)
		free := color.New(color.FgGreen)
		fmt.Printf("Found %d gift(s):\n\n", len(gifts))
		for _, g := range gifts {
			if g.ApplicantID != "" {
				fmt.Printf("%-14s owner %-14s %s\n", g.PublicID, g.OwnerID,
					claimed.Sprintf("claimed by %s (order %s)", g.ApplicantID, g.OrderID))
			} else {
				fmt.Printf("%-14s owner %-14s %s\n", g.PublicID, g.OwnerID, free.Sprint("unclaimed"))
			}
		}
		return nil
	},
}

var giftUnclaimedCmd = &cobra.Command{
	Use:   "unclaimed [ownerPublicId]",
	Short: "Find the owner's first unclaimed gift",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		g, err := wire.GiftService().FindUnclaimedGift(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to look up gifts: %w", err)
		}
		if g == nil {
			fmt.Printf("No unclaimed gift for %s\n", args[0])
			return nil
		}

		fmt.Printf("%s (owner %s)\n", g.PublicID, g.OwnerID)
		return nil
	},
}

func init() {
	giftListCmd.Flags().Bool("unclaimed", false, "Only unclaimed gifts")
	giftListCmd.Flags().String("owner", "", "Filter by owner publicId")

	giftCmd.AddCommand(giftSeedCmd)
	giftCmd.AddCommand(giftListCmd)
	giftCmd.AddCommand(giftUnclaimedCmd)
}

// GiftCmd returns the gift command
func GiftCmd() *cobra.Command {
	return giftCmd
}
