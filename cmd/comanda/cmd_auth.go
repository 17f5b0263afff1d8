package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// comanda login — sign in and persist the session.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, _ := wire()

		in := bufio.NewReader(os.Stdin)
		fmt.Print("Username: ")
		username, err := in.ReadString('\n')
		if err != nil {
			return err
		}
		fmt.Print("Password: ")
		password, err := in.ReadString('\n')
		if err != nil {
			return err
		}

		err = store.Login(context.Background(), strings.TrimSpace(username), strings.TrimSpace(password))
		if err != nil {
			return err
		}

		u := store.User()
		fmt.Printf("Signed in as %s (%s)\n", u.Username, u.Role)
		return nil
	},
}

// comanda logout — discard the stored session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, _ := wire()
		store.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

// comanda whoami — show the user behind the stored session.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, _ := wire()
		if store.Token() == "" {
			fmt.Println("Not signed in.")
			return nil
		}

		if err := store.Verify(context.Background()); err != nil {
			return err
		}

		u := store.User()
		fmt.Printf("%s — %s (%s)\n", u.Username, u.FullName, u.Role)
		return nil
	},
}
