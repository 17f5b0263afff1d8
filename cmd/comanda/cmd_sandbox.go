package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marespinozac/comanda/config"
	"github.com/marespinozac/comanda/internal/sandbox"
)

var (
	sandboxPort string
	sandboxSeed bool
)

// comanda sandbox — run a local demo backend.
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local demo backend (SQLite)",
	Long:  "Starts a small POS backend on localhost so the terminal can be tried without a real server. With --seed it loads demo accounts (password \"secret\"), categories and a menu.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, err := sandbox.New(sandbox.Options{DSN: config.SandboxDSN(), Seed: sandboxSeed})
		if err != nil {
			return err
		}

		port := sandboxPort
		if port == "" {
			port = config.SandboxPort()
		}
		return srv.Run(ctx, ":"+port)
	},
}

func init() {
	sandboxCmd.Flags().StringVar(&sandboxPort, "port", "", "port to listen on (default from SANDBOX_PORT)")
	sandboxCmd.Flags().BoolVar(&sandboxSeed, "seed", false, "load demo data on startup")
}
