package cli

import (
	"context"
)

func (a *App) export(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	dir := a.config.ExportDir
	if len(args) == 1 {
		dir = args[0]
	}

	res, err := a.entryService.Export(ctx, dir)
	if err != nil {
		return err
	}
	success(a.out, "Exported %d entries to %s", res.Count, res.Path)
	hint(a.out, "The file contains ciphertext only; the master password is needed to read it.")
	return nil
}
