// Command engine is the local job board engine: it serves feed views, the
// live board and logos to the desktop UI and offers a few one-shot commands
// for poking the backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "Local job board engine",
	Long:          "Runs the job board engine that sits between the desktop UI and the job board backend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
