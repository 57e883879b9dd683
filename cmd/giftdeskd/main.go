// giftdeskd runs the HTTP API without the CLI surface, for deployments
// where the order endpoints are served continuously.
package main

import (
	"log"
	"net/http"

	"github.com/example/giftdesk/internal/api"
	"github.com/example/giftdesk/internal/wire"
)

func main() {
	addr := wire.Config().ListenAddr

	server := api.NewServer(wire.OrderService(), wire.GiftService())
	log.Printf("giftdesk api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, server.Routes()))
}
