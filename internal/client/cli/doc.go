// Package cli provides the interactive product-catalog terminal client.
//
// It wires configuration, local storage, the catalog API client and the
// session and catalog stores behind a REPL. Each command is bound to a
// client location and checked by the route guard before it runs: catalog
// commands need a session, login is for guests only.
//
// Commands:
//   - login / logout / whoami
//   - list, search <query>, show <id>
//   - add, update <id>, delete <id>
//   - categories, stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
