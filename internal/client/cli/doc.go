// Package cli provides the interactive Traffic Hub command-line client.
//
// It wires configuration, the local session database, the HTTP API client and
// the evidence sink, then runs a REPL where every view of the application is
// a command. Each navigation goes through the gate first, so protected views
// send a signed-out user to the login view and the landing and login views
// send a signed-in user to the dashboard.
//
// Views run their own requests; redirects they raise (after a successful
// registration, or when the backend rejects the credential) arrive on a
// buffered channel that the shell consumes between commands.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
