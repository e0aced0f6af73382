// ABOUTME: Assess command
// ABOUTME: Prints a generated water damage assessment for one location

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/harper/aquaguard/internal/storage"
	"github.com/harper/aquaguard/internal/ui"
	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess <id>",
	Short: "Get an AI assessment of a location's readings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid location id %q", args[0])
		}

		loc, err := store.GetLocation(cmd.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("location %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get location: %w", err)
		}

		assessor, closeAssessor, err := buildAssessor(cmd.Context())
		if err != nil {
			return err
		}
		defer closeAssessor()

		fmt.Println(ui.FormatLocation(loc))
		fmt.Println()
		fmt.Print(ui.FormatAssessment(loc.Name, assessor.Assess(cmd.Context(), loc.Reading())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}
