package cli

import (
	"context"
)

func (a *App) list(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	items, err := a.entryService.List(ctx)
	if err != nil {
		return err
	}
	renderList(a.out, items)
	return nil
}
