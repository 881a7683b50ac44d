package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/common"
)

// readEntryFields prompts for everything but the label. Empty answers keep
// the values already in e.
func (a *App) readEntryFields(e *models.Entry) error {
	keep := ""
	if e.Secret != "" {
		keep = " (empty keeps current)"
	}

	username, err := getSimpleText(a.reader, "Username"+current(e.Username), a.out)
	if err != nil {
		return err
	}
	if username != "" {
		e.Username = username
	}

	secret, err := getPassword(a.out, "Secret"+keep)
	if err != nil {
		return err
	}
	if len(secret) > 0 {
		e.Secret = string(secret)
	}
	common.WipeByteArray(secret)

	url, err := getSimpleText(a.reader, "URL"+current(e.URL), a.out)
	if err != nil {
		return err
	}
	if url != "" {
		e.URL = url
	}

	replace := true
	if e.Notes != "" || len(e.Metadata) > 0 {
		if replace, err = Confirm(a.reader, "Replace notes and metadata?", a.out); err != nil {
			return err
		}
	}
	if !replace {
		return nil
	}

	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}
	e.Notes = notes

	lines, err := GetMetadata(a.reader, a.out)
	if err != nil {
		return err
	}
	md, err := models.MetadataFromString(lines)
	if err != nil {
		return err
	}
	e.Metadata = md
	return nil
}

func current(v string) string {
	if v == "" {
		return ""
	}
	return fmt.Sprintf(" [%s]", v)
}

func (a *App) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	label := args[0]
	if err := models.ValidateLabel(label); err != nil {
		return err
	}
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}

	e := &models.Entry{Label: label}
	if err := a.readEntryFields(e); err != nil {
		return err
	}
	if _, err := a.entryService.Add(ctx, e); err != nil {
		return err
	}
	success(a.out, "Entry %q added.", label)
	return nil
}
