package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// parseGetArgs accepts the label and -copy in any order.
func parseGetArgs(args []string) (label string, copySecret bool, err error) {
	for _, arg := range args {
		switch arg {
		case "-copy", "--copy", "-c":
			copySecret = true
		default:
			if label != "" || strings.HasPrefix(arg, "-") {
				return "", false, errUsage
			}
			label = arg
		}
	}
	if label == "" {
		return "", false, errUsage
	}
	return label, copySecret, nil
}

func (a *App) get(ctx context.Context, args []string) error {
	label, copySecret, err := parseGetArgs(args)
	if err != nil {
		return err
	}
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}

	e, err := a.entryService.Get(ctx, label)
	if err != nil {
		return err
	}
	renderEntry(a.out, e, copySecret)

	if !copySecret {
		return nil
	}

	delay := a.config.ClipboardClearDelay
	done, err := copyWithAutoClear(e.Secret, delay)
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if delay <= 0 {
		success(a.out, "Secret copied to clipboard.")
		return nil
	}
	success(a.out, "Secret copied to clipboard. Clearing in %s.", delay.Round(time.Second))

	// a one-shot process has to stay alive for the clear to happen
	if !a.interactive {
		select {
		case <-done:
			hint(a.out, "Clipboard cleared.")
		case <-ctx.Done():
		}
	}
	return nil
}
