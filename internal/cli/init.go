package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/config"
	"github.com/example/giftdesk/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the giftdesk database",
		Long:  `Initialize the giftdesk database at ~/.giftdesk/giftdesk.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing giftdesk database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("failed to resolve config dir: %w", err)
			}
			if _, err := config.LoadConfig(dir); err != nil {
				eventName, _ := cmd.Flags().GetString("event")
				cfg := &config.Config{
					Version:    config.CurrentVersion,
					EventName:  eventName,
					ListenAddr: config.DefaultListenAddr,
				}
				if err := config.SaveConfig(dir, cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Println("✓ Config file created at ~/.giftdesk/config.json")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  giftdesk person import participants.csv")
			fmt.Println("  giftdesk gift seed")

			return nil
		},
	}
	cmd.Flags().String("event", "", "Event display name")
	return cmd
}
