package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/zkvault/internal/buildinfo"
)

func (a *App) status(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	st := a.authService.Status()
	a.checkOnline(ctx)

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	fmt.Fprintln(a.out, keyStyle.Render("Logged in")+yesNo(st.LoggedIn))
	fmt.Fprintln(a.out, keyStyle.Render("Vault")+st.State.String())
	fmt.Fprintln(a.out, keyStyle.Render("Verifier")+yesNo(st.HasVerifier))
	fmt.Fprintln(a.out, keyStyle.Render("Server")+fmt.Sprintf("%s (%s)", a.config.ServerEndpointAddr, a.currentMode()))
	return nil
}

func (a *App) showConfig(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	c := a.config
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "api_url\t%s\n", c.ServerEndpointAddr)
	fmt.Fprintf(tw, "database\t%s\n", c.DatabasePath)
	fmt.Fprintf(tw, "clipboard_clear\t%s\n", c.ClipboardClearDelay)
	fmt.Fprintf(tw, "min_password_score\t%d\n", c.MinPasswordScore)
	fmt.Fprintf(tw, "export_dir\t%s\n", c.ExportDir)
	fmt.Fprintf(tw, "verbose\t%t\n", c.Verbose)
	return tw.Flush()
}

func (a *App) version(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	buildinfo.PrintBuildData(a.out)
	return nil
}
