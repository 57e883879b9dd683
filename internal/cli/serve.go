package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/api"
	"github.com/example/giftdesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the giftdesk HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = wire.Config().ListenAddr
			}

			server := api.NewServer(wire.OrderService(), wire.GiftService())
			fmt.Printf("giftdesk api listening on %s\n", addr)
			return http.ListenAndServe(addr, server.Routes())
		},
	}
	cmd.Flags().String("addr", "", "Listen address (defaults to config listen_addr)")
	return cmd
}
