// ABOUTME: Simulate command
// ABOUTME: Overwrites a location's readings with the leak or safe preset

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/harper/aquaguard/internal/ui"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <id>",
	Short: "Simulate a leak at a location, or clear one",
	Long: `Set a location to the leak preset (Leaking, 85% humidity, water present)
or the safe preset (Safe, 45% humidity, dry). Temperature is kept unless --temperature is given.

Examples:
  aquaguard simulate 1 --leak
  aquaguard simulate 1 --safe --temperature 19.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid location id %q", args[0])
		}

		leak, _ := cmd.Flags().GetBool("leak")
		safe, _ := cmd.Flags().GetBool("safe")
		if leak == safe {
			return errors.New("specify exactly one of --leak or --safe")
		}

		loc, err := store.GetLocation(cmd.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("location %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get location: %w", err)
		}

		temperature := loc.Temperature
		if cmd.Flags().Changed("temperature") {
			temperature, _ = cmd.Flags().GetFloat64("temperature")
		}

		state := models.SafeState(temperature)
		if leak {
			state = models.LeakState(temperature)
		}
		if _, err := store.UpdateSensorState(cmd.Context(), id, state); err != nil {
			return fmt.Errorf("failed to simulate: %w", err)
		}
		loc.Apply(state)

		if leak {
			color.Red("⚠ Simulated leak at %s", loc.Name)
		} else {
			color.Green("✓ %s is safe", loc.Name)
		}
		fmt.Printf("  %s\n", ui.FormatLocation(loc))
		return nil
	},
}

func init() {
	simulateCmd.Flags().Bool("leak", false, "apply the leak preset")
	simulateCmd.Flags().Bool("safe", false, "apply the safe preset")
	simulateCmd.Flags().Float64("temperature", 0, "temperature in °C (defaults to the current value)")

	rootCmd.AddCommand(simulateCmd)
}
