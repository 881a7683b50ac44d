package cli

import (
	"bytes"
	"context"

	"github.com/dmitrijs2005/zkvault/internal/common"
)

func (a *App) signup(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	accountPw, err := getPassword(a.out, "Account password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(accountPw)

	hint(a.out, "The master password encrypts your entries. It never leaves this device and cannot be recovered.")
	master, err := getPassword(a.out, "Master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(master)
	repeat, err := getPassword(a.out, "Repeat master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)
	if !bytes.Equal(master, repeat) {
		return errPasswordMismatch
	}

	if err := a.authService.Signup(ctx, email, username, accountPw, master); err != nil {
		return err
	}
	success(a.out, "Account created. Vault unlocked.")
	return nil
}
