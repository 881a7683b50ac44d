package cli

import (
	"context"
)

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}

	e, err := a.entryService.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.readEntryFields(e); err != nil {
		return err
	}
	if _, err := a.entryService.Update(ctx, e); err != nil {
		return err
	}
	success(a.out, "Entry %q updated.", e.Label)
	return nil
}
