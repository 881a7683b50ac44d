package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) delete(ctx context.Context, args []string) error {
	var label string
	force := false
	for _, arg := range args {
		switch {
		case arg == "-y" || arg == "--yes":
			force = true
		case label == "" && !strings.HasPrefix(arg, "-"):
			label = arg
		default:
			return errUsage
		}
	}
	if label == "" {
		return errUsage
	}

	if !force {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete entry %q? This cannot be undone.", label), a.out)
		if err != nil {
			return err
		}
		if !ok {
			hint(a.out, "Cancelled.")
			return nil
		}
	}

	if err := a.entryService.Delete(ctx, label); err != nil {
		return err
	}
	success(a.out, "Entry %q deleted.", label)
	return nil
}
