package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/giftdesk/internal/wire"
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage event participants",
	Long:  "Import, list, and show the participants of the gift event",
}

var personImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import participants from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		resp, err := wire.PersonService().ImportPersons(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to import persons: %w", err)
		}

		fmt.Printf("✓ Imported %d person(s)\n", resp.Imported)
		return nil
	},
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		persons, err := wire.PersonService().ListPersons(ctx)
		if err != nil {
			return fmt.Errorf("failed to list persons: %w", err)
		}

		if len(persons) == 0 {
			fmt.Println("No persons found")
			return nil
		}

		fmt.Printf("Found %d person(s):\n\n", len(persons))
		for _, p := range persons {
			fmt.Printf("%-14s %s\n", p.PublicID, displayName(p.FirstName, p.LastName, p.EmployeeID, p.PersonID, p.PublicID))
		}
		return nil
	},
}

var personShowCmd = &cobra.Command{
	Use:   "show [publicId]",
	Short: "Show participant details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		p, err := wire.PersonService().GetPerson(ctx, args[0])
		if err != nil {
			return fmt.Errorf("person not found: %w", err)
		}

		fmt.Printf("Person: %s\n", p.PublicID)
		if p.FirstName != "" || p.LastName != "" {
			fmt.Printf("Name: %s %s\n", p.FirstName, p.LastName)
		}
		if p.EmployeeID != "" {
			fmt.Printf("Employee ID: %s\n", p.EmployeeID)
		}
		if p.PersonID != "" {
			fmt.Printf("Person ID: %s\n", p.PersonID)
		}
		fmt.Printf("Source format: %s\n", p.SourceFormat)
		return nil
	},
}

func displayName(first, last, employeeID, personID, publicID string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	case employeeID != "":
		return employeeID
	case personID != "":
		return personID
	}
	return publicID
}

func init() {
	personCmd.AddCommand(personImportCmd)
	personCmd.AddCommand(personListCmd)
	personCmd.AddCommand(personShowCmd)
}

// PersonCmd returns the person command
func PersonCmd() *cobra.Command {
	return personCmd
}
