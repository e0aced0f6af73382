// ABOUTME: Location list and add commands
// ABOUTME: Shows monitored locations and registers new ones with default readings

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/ui"
	"github.com/spf13/cobra"
)

var locationsCmd = &cobra.Command{
	Use:     "locations",
	Aliases: []string{"loc"},
	Short:   "Manage monitored locations",
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all monitored locations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := store.ListLocations(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list locations: %w", err)
		}

		if len(locations) == 0 {
			fmt.Println("No locations yet. Use 'aquaguard locations add' to add one.")
			return nil
		}

		for _, loc := range locations {
			fmt.Println(ui.FormatLocation(loc))
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a"},
	Short:   "Start monitoring a new location",
	Long: `Add a location. It starts Safe at 45% humidity, dry, and 20°C.

Examples:
  aquaguard locations add Garage
  aquaguard locations add Upstairs Bathroom`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if err := models.ValidateName(name); err != nil {
			return err
		}

		loc := models.NewLocation(name)
		if err := store.CreateLocation(cmd.Context(), loc); err != nil {
			return fmt.Errorf("failed to add location: %w", err)
		}

		color.Green("✓ Added %s", name)
		fmt.Printf("  %s\n", ui.FormatLocation(loc))
		return nil
	},
}

func init() {
	locationsCmd.AddCommand(listCmd)
	locationsCmd.AddCommand(addCmd)

	rootCmd.AddCommand(locationsCmd)
}
