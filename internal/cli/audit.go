package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/wire"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the workflow audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		entity, _ := cmd.Flags().GetString("entity")
		flagged, _ := cmd.Flags().GetBool("flagged")
		limit, _ := cmd.Flags().GetInt("limit")

		events, err := wire.AuditService().ListEvents(ctx, primary.AuditFilters{
			EntityID:            entity,
			NeedsReconciliation: flagged,
			Limit:               limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events found")
			return nil
		}

		warn := color.New(color.FgRed, color.Bold)
		for _, ev := range events {
			marker := ""
			if ev.NeedsReconciliation {
				marker = warn.Sprint(" [needs reconciliation]")
			}
			fmt.Printf("%s  %s %s  %s%s\n", ev.CreatedAt, ev.EntityType, ev.EntityID, ev.Message, marker)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().String("entity", "", "Filter by entity publicId")
	auditCmd.Flags().Bool("flagged", false, "Only events needing reconciliation")
	auditCmd.Flags().Int("limit", 50, "Maximum number of events")
}

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	return auditCmd
}
