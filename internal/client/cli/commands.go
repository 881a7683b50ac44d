package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/zkvault/internal/client/services"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/common"
)

var (
	errUsage            = errors.New("usage")
	errUnknownCommand   = errors.New("unknown command")
	errPasswordMismatch = errors.New("passwords do not match")
)

type command struct {
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"signup":  {"signup", "create an account and set the master password", (*App).signup},
	"login":   {"login", "log in to an existing account", (*App).login},
	"unlock":  {"unlock", "check the master password and unlock the vault", (*App).unlock},
	"lock":    {"lock", "forget the encryption key", (*App).lock},
	"add":     {"add <label>", "add an entry", (*App).add},
	"get":     {"get <label> [-copy]", "show an entry, or copy its secret", (*App).get},
	"list":    {"list", "list entry labels and dates", (*App).list},
	"update":  {"update <label>", "change an entry", (*App).update},
	"delete":  {"delete <label> [-y]", "delete an entry", (*App).delete},
	"export":  {"export [dir]", "download an encrypted export of the vault", (*App).export},
	"status":  {"status", "show session and server status", (*App).status},
	"logout":  {"logout", "log out and clear the local session", (*App).logout},
	"config":  {"config", "show the effective configuration", (*App).showConfig},
	"version": {"version", "show build information", (*App).version},
}

// helpText lists every command with its usage.
func (a *App) helpText() string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Available commands:")
	for _, n := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", commands[n].usage, commands[n].help)
	}
	if a.interactive {
		fmt.Fprintf(tw, "  %s\t%s\n", "exit", "leave the program")
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

// execute runs a single command and reports its error to the user.
func (a *App) execute(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		if name == "help" {
			fmt.Fprintln(a.out, a.helpText())
			return nil
		}
		failure(a.out, fmt.Errorf("%w: %s", errUnknownCommand, name))
		hint(a.out, "Type 'help' for commands.")
		return errUnknownCommand
	}

	err := cmd.run(a, ctx, args)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(a.out, "Usage: "+cmd.usage)
	default:
		a.logger.Debug(ctx, "command failed", "command", name, "error", err)
		failure(a.out, err)
		explain(a, err)
	}
	return err
}

// explain adds a hint for errors the user can act on.
func explain(a *App, err error) {
	switch {
	case errors.Is(err, vault.ErrNotLoggedIn), errors.Is(err, vault.ErrSessionExpired):
		hint(a.out, "Run 'login' first.")
	case errors.Is(err, services.ErrWeakMasterPassword):
		hint(a.out, "Use a longer passphrase of unrelated words.")
	case errors.Is(err, vault.ErrIncorrectMasterPassword):
		hint(a.out, "The master password cannot be reset; entries are only readable with the original one.")
	}
}

// ensureUnlocked prompts for the master password when the vault is locked.
func (a *App) ensureUnlocked(ctx context.Context) error {
	switch a.authService.Status().State {
	case vault.StateUnlocked:
		return nil
	case vault.StateLoggedOut:
		return vault.ErrNotLoggedIn
	}
	pw, err := getPassword(a.out, "Master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	return a.authService.Unlock(ctx, pw)
}
