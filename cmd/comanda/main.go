package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marespinozac/comanda/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "comanda",
	Short: "Comanda — restaurant point-of-sale terminal",
	Long:  "Comanda is the staff-facing terminal for the restaurant POS: order entry for waiters, kitchen and bar displays, and catalog management.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Auth
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Development
	rootCmd.AddCommand(sandboxCmd)
}
