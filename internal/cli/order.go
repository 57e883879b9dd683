package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/core/order"
	"github.com/example/giftdesk/internal/flow"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/wire"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage gift orders",
	Long:  "Create, confirm, and inspect gift orders",
}

var orderMakeCmd = &cobra.Command{
	Use:   "make",
	Short: "Create a PENDING order from an applicant and a gift bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		applicantID, _ := cmd.Flags().GetString("applicant")
		giftIDs, _ := cmd.Flags().GetStringSlice("gift")
		orderCode, _ := cmd.Flags().GetString("code")
		if orderCode == "" {
			orderCode = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
		}
		confirmationCode := "RQ-" + strings.ToUpper(uuid.NewString()[:8])

		// The selection runs through the flow slices, so the same
		// local checks apply here as in the interactive UI. The
		// service re-validates everything regardless.
		session := wire.Session()
		persons, err := wire.PersonService().ListPersons(ctx)
		if err != nil {
			return fmt.Errorf("failed to list persons: %w", err)
		}
		candidates := make([]models.Person, 0, len(persons))
		for _, p := range persons {
			candidates = append(candidates, models.Person{PublicID: p.PublicID, FirstName: p.FirstName, LastName: p.LastName})
		}
		session.Applicant.Dispatch(flow.SetApplicantCandidates{Candidates: candidates})
		if r := session.Applicant.Dispatch(flow.SelectApplicant{PublicID: applicantID}); r.IsErr() {
			return r.Err()
		}

		gifts, err := wire.GiftService().ListGifts(ctx, primary.GiftFilters{})
		if err != nil {
			return fmt.Errorf("failed to list gifts: %w", err)
		}
		giftList := make([]models.Gift, 0, len(gifts))
		for _, g := range gifts {
			giftList = append(giftList, models.Gift{PublicID: g.PublicID, OwnerID: g.OwnerID, ApplicantID: g.ApplicantID, OrderID: g.OrderID})
		}
		session.Bundle.Dispatch(flow.SetGiftList{Gifts: giftList})
		for _, id := range giftIDs {
			if r := session.Bundle.Dispatch(flow.AddGift{PublicID: id}); r.IsErr() {
				return r.Err()
			}
		}

		orderID, err := session.Submit(ctx, orderCode, confirmationCode)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		fmt.Printf("✓ Created order %s (code %s) with %d gift(s)\n", orderID, orderCode, len(giftIDs))
		fmt.Printf("  Confirmation code: %s\n", confirmationCode)
		return nil
	},
}

var orderConfirmCmd = &cobra.Command{
	Use:   "confirm [publicId]",
	Short: "Confirm a PENDING order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		approverID, _ := cmd.Flags().GetString("approver")
		if approverID == "" {
			return errors.New("--approver is required")
		}

		o, err := wire.OrderService().ConfirmOrder(ctx, args[0], approverID)
		if err != nil {
			var pcf *order.PartialClaimFailure
			if errors.As(err, &pcf) {
				warn := color.New(color.FgRed, color.Bold)
				warn.Printf("✗ Order %s is COMPLETE but %d gift(s) could not be claimed:\n", pcf.OrderID, len(pcf.Failed))
				for _, id := range pcf.Failed {
					fmt.Printf("  - %s\n", id)
				}
				fmt.Println("Run 'giftdesk order reconcile' to list claims needing manual correction.")
				return err
			}
			return fmt.Errorf("failed to confirm order: %w", err)
		}

		fmt.Printf("✓ Order %s confirmed by %s at %s\n", o.PublicID, o.ConfirmedByID, o.ConfirmedAt)
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show [publicId]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		byCode, _ := cmd.Flags().GetBool("by-code")

		var o *primary.Order
		var err error
		if byCode {
			o, err = wire.OrderService().GetOrderByCode(ctx, args[0])
		} else {
			o, err = wire.OrderService().GetOrder(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("order not found: %w", err)
		}

		fmt.Printf("Order: %s (code %s)\n", o.PublicID, o.OrderCode)
		fmt.Printf("Status: %s\n", colorStatus(o.Status))
		fmt.Printf("Applicant: %s\n", o.ApplicantID)
		fmt.Printf("Gifts: %s\n", strings.Join(o.GiftIDs, ", "))
		if o.ConfirmedByID != "" {
			fmt.Printf("Confirmed by %s at %s\n", o.ConfirmedByID, o.ConfirmedAt)
		}
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		status, _ := cmd.Flags().GetString("status")

		orders, err := wire.OrderService().ListOrders(ctx, primary.OrderFilters{Status: status})
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}

		if len(orders) == 0 {
			fmt.Println("No orders found")
			return nil
		}

		fmt.Printf("Found %d order(s):\n\n", len(orders))
		for _, o := range orders {
			fmt.Printf("%-14s %-12s %s  applicant %s  %d gift(s)\n",
				o.PublicID, o.OrderCode, colorStatus(o.Status), o.ApplicantID, len(o.GiftIDs))
		}
		return nil
	},
}

var orderReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "List gift claims that contradict a confirmed order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rows, err := wire.OrderService().Reconcile(ctx)
		if err != nil {
			return fmt.Errorf("failed to reconcile: %w", err)
		}

		if len(rows) == 0 {
			fmt.Println("All confirmed orders are consistent")
			return nil
		}

		warn := color.New(color.FgRed)
		warn.Printf("%d claim(s) need manual correction:\n\n", len(rows))
		for _, row := range rows {
			fmt.Printf("order %s gift %s: want applicant %s, gift belongs to %s (order %s)\n",
				row.OrderPublicID, row.GiftPublicID, row.WantApplicantID, row.GotApplicantID, row.GotOrderID)
		}
		return nil
	},
}

func colorStatus(status string) string {
	switch status {
	case models.OrderStatusComplete:
		return color.New(color.FgGreen).Sprint(status)
	case models.OrderStatusPending:
		return color.New(color.FgYellow).Sprint(status)
	}
	return status
}

func init() {
	orderMakeCmd.Flags().String("applicant", "", "Applicant publicId (required)")
	orderMakeCmd.Flags().StringSlice("gift", nil, "Gift publicId to bundle (repeatable)")
	orderMakeCmd.Flags().String("code", "", "Order code (generated when omitted)")
	orderConfirmCmd.Flags().String("approver", "", "Approver publicId (required)")
	orderShowCmd.Flags().Bool("by-code", false, "Look up by order code instead of publicId")
	orderListCmd.Flags().String("status", "", "Filter by status (PENDING or COMPLETE)")

	orderCmd.AddCommand(orderMakeCmd)
	orderCmd.AddCommand(orderConfirmCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderReconcileCmd)
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	return orderCmd
}
