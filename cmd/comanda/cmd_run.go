package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marespinozac/comanda/app/screens"
	"github.com/marespinozac/comanda/config"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/internal/session"
	"github.com/marespinozac/comanda/pkg/event"
	"github.com/marespinozac/comanda/pkg/logger"
	"github.com/marespinozac/comanda/pkg/term"
)

// comanda run — start the interactive terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, gw, io := wire()

		// A session persisted by an earlier run is only trusted after the
		// server confirms it. Any failure just drops us to the login screen.
		if store.Token() != "" {
			if err := store.Verify(ctx); err != nil {
				logger.Debug("stored session rejected", "error", err)
			}
		}

		if !store.Authenticated() {
			login := screens.NewLogin(store, io)
			ok, err := login.Run(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		shell := screens.NewShell(store, gw, io)
		if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// wire builds the client object graph: the event bus connects the gateway's
// unauthorized signal back to the session store.
func wire() (*session.Store, *api.Client, *term.IO) {
	bus := event.NewBus()
	store := session.New(config.SessionFile(), bus)
	gw := api.New(config.APIBaseURL(), store, bus)
	store.Attach(gw)
	return store, gw, term.NewIO(os.Stdin, os.Stdout)
}
