// Package cli provides the zkvault command-line client.
//
// It wires configuration, the local session database, the gRPC API client
// and the vault session, then runs either a single command or an
// interactive REPL. Typical flow: signup or login, unlock with the master
// password, then add, get, list, update and delete entries.
//
// Commands that need the encryption key prompt for the master password when
// the vault is locked. In the REPL the key stays in memory until lock,
// logout or exit; a one-shot command forgets it when the process ends.
//
// SIGINT, SIGTERM and SIGQUIT zero the key before the process exits.
package cli
