package cli

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/common"
)

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.out, "Account password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.authService.Login(ctx, email, pw); err != nil {
		return err
	}
	success(a.out, "Logged in.")

	if a.interactive {
		return a.unlock(ctx, nil)
	}
	hint(a.out, "The vault is locked; commands that need it will ask for the master password.")
	return nil
}

func (a *App) unlock(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if a.authService.Status().State == vault.StateUnlocked {
		hint(a.out, "Vault is already unlocked.")
		return nil
	}
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	success(a.out, "Vault unlocked.")
	return nil
}

func (a *App) lock(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	a.authService.Lock()
	success(a.out, "Vault locked.")
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	success(a.out, "Logged out.")
	return nil
}
