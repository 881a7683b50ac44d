package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Faint(true)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(10)
	headerStyle  = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle    = lipgloss.NewStyle().PaddingRight(2)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	timeLayout   = "2006-01-02 15:04"
	maskedSecret = "********"
)

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf(format, args...)))
}

func failure(w io.Writer, err error) {
	fmt.Fprintln(w, errStyle.Render("Error: "+err.Error()))
}

func hint(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf(format, args...)))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// renderEntry prints a decrypted entry. The secret is masked when hidden.
func renderEntry(w io.Writer, e *models.Entry, hideSecret bool) {
	fmt.Fprintln(w, titleStyle.Render(e.Label))

	field := func(k, v string) {
		if v == "" {
			return
		}
		fmt.Fprintln(w, keyStyle.Render(k)+v)
	}

	secret := e.Secret
	if hideSecret {
		secret = maskedSecret
	}
	field("Username", e.Username)
	field("Secret", secret)
	field("URL", e.URL)
	if e.Notes != "" {
		lines := strings.Split(e.Notes, "\n")
		field("Notes", lines[0])
		for _, l := range lines[1:] {
			field("", l)
		}
	}
	for _, md := range e.Metadata {
		field(md.Name, md.Value)
	}
	field("Created", formatTime(e.CreatedAt))
	field("Updated", formatTime(e.UpdatedAt))
}

// renderList prints labels with their timestamps as an aligned table.
func renderList(w io.Writer, items []*models.StoredEntry) {
	if len(items) == 0 {
		hint(w, "No entries.")
		return
	}

	labelWidth := len("LABEL")
	for _, it := range items {
		if n := lipgloss.Width(it.Label); n > labelWidth {
			labelWidth = n
		}
	}

	row := func(style lipgloss.Style, label, created, updated string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(labelWidth+2).Render(label),
			style.Width(len(timeLayout)+2).Render(created),
			style.Render(updated),
		)
	}

	fmt.Fprintln(w, row(headerStyle, "LABEL", "CREATED", "UPDATED"))
	for _, it := range items {
		fmt.Fprintln(w, row(cellStyle, it.Label, formatTime(it.CreatedAt), formatTime(it.UpdatedAt)))
	}
	hint(w, "%d entries", len(items))
}
