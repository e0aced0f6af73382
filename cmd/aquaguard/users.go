// ABOUTME: User management commands
// ABOUTME: Adds login accounts with bcrypt-hashed passwords

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/aquaguard/internal/auth"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage login accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username> <password>",
	Short: "Create a login account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password := args[0], args[1]
		if err := models.ValidateUsername(username); err != nil {
			return err
		}
		if password == "" {
			return errors.New("password cannot be empty")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		err = store.CreateUser(cmd.Context(), &models.User{Username: username, Password: hash})
		if errors.Is(err, storage.ErrDuplicateUser) {
			return fmt.Errorf("user '%s' already exists", username)
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		color.Green("✓ Added user %s", username)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersAddCmd)

	rootCmd.AddCommand(usersCmd)
}
