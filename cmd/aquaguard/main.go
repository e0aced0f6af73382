// ABOUTME: Entry point for the aquaguard binary
// ABOUTME: Runs the root Cobra command and maps errors to exit status

package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
