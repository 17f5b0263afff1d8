// Package main provides the comanda CLI.
//
// Install:
//
//	go install github.com/marespinozac/comanda/cmd/comanda@latest
//
// Then:
//
//	comanda run            # start the interactive terminal
//	comanda login          # sign in and store the session
//	comanda logout         # discard the stored session
//	comanda whoami         # show the signed-in user
//	comanda sandbox --seed # run a local demo backend
//
// The client talks to the backend named by API_BASE_URL (default
// http://localhost:8080/api). Settings come from config/app.json and .env
// in the working directory; .env wins where both name a key.
package main
