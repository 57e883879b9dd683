package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/cli"
	"github.com/example/giftdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "giftdesk",
		Short:   "giftdesk - gift claim and order confirmation desk",
		Version: version.String(),
		Long: `giftdesk manages a gift event: import participants, seed one gift
per owner, bundle unclaimed gifts into orders, and confirm orders with
an independent approver.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PersonCmd())
	rootCmd.AddCommand(cli.GiftCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.AuditCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
