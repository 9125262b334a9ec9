package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/ytspot/internal/tasks"
)

func (m *Model) renderCredentials() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Spotify credentials"))
	b.WriteString("\n")
	b.WriteString(styles.label.Render("Client ID"))
	b.WriteString("\n" + m.credentials[fieldClientID].View() + "\n\n")
	b.WriteString(styles.label.Render("Client secret"))
	b.WriteString("\n" + m.credentials[fieldClientSecret].View() + "\n")

	b.WriteString(m.renderFooter(m.keys.next, m.keys.enter, m.keys.quit))
	return b.String()
}

func (m *Model) renderSource() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("YouTube playlist"))
	b.WriteString("\n")
	b.WriteString(m.source.View() + "\n")

	b.WriteString(m.renderFooter(m.keys.enter, m.keys.back, m.keys.quit))
	return b.String()
}

func (m *Model) renderDestination() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Destination playlist"))
	b.WriteString("\n")
	b.WriteString(styles.help.Render("Source: " + m.sourceURL))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s Add to existing    %s Create new\n\n",
		styles.Radio(m.mode == tasks.ModeAddExisting), styles.Radio(m.mode == tasks.ModeCreateNew))

	if m.mode != tasks.ModeCreateNew {
		b.WriteString(m.playlists.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(m.keys.add, m.keys.create, m.keys.enter, m.keys.back, m.keys.quit))
	return b.String()
}

func (m *Model) renderCreate() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("New playlist"))
	b.WriteString("\n")
	b.WriteString(styles.label.Render("Name"))
	b.WriteString("\n" + m.form[fieldName].View() + "\n\n")
	b.WriteString(styles.label.Render("Description"))
	b.WriteString("\n" + m.form[fieldDescription].View() + "\n\n")

	cursor := "  "
	if m.formFocus == fieldVisibility {
		cursor = "> "
	}
	b.WriteString(styles.label.Render("Visibility"))
	fmt.Fprintf(&b, "\n%s%s Public    %s Private\n", cursor,
		styles.Radio(m.public != nil && *m.public), styles.Radio(m.public != nil && !*m.public))

	b.WriteString(m.renderFooter(m.keys.next, m.keys.toggle, m.keys.enter, m.keys.back, m.keys.quit))
	return b.String()
}

func (m *Model) renderTransfer() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Transferring playlist"))
	b.WriteString("\n")

	if m.progress.Total > 0 {
		fmt.Fprintf(&b, "%d / %d\n\n", m.progress.Step, m.progress.Total)
	} else {
		b.WriteString("Reading source playlist...\n\n")
	}

	for _, u := range m.visibleUpdates() {
		b.WriteString(styles.Update(u) + "\n")
	}

	switch {
	case m.progress.Phase == tasks.Finished:
		b.WriteString("\n" + styles.Update(m.progress) + "\n")
	case m.canceling:
		b.WriteString("\n" + styles.warn.Render("Canceling...") + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.cancel, m.keys.quit}))
	return b.String()
}

// visibleUpdates returns the tail of the progress log that fits the window.
func (m *Model) visibleUpdates() []tasks.ProgressUpdate {
	rows := 10
	if m.height > 0 {
		rows = max(m.height-10, 3)
	}
	if len(m.updates) <= rows {
		return m.updates
	}
	return m.updates[len(m.updates)-rows:]
}

func (m *Model) renderResult() string {
	var b strings.Builder

	r := m.result
	switch {
	case r != nil && r.State == tasks.Canceled:
		b.WriteString(styles.warn.Render("Transfer canceled"))
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Transfer failed: %v", m.err)))
	default:
		b.WriteString(styles.ok.Render("✓ Transfer complete!"))
	}
	b.WriteString("\n\n")

	if r != nil {
		created := ""
		if r.Destination.IsNew {
			created = " (new)"
		}
		fmt.Fprintf(&b, "Destination: %s%s\n", r.Destination.Name, created)
		fmt.Fprintf(&b, "Added: %d/%d (%.1f%%)\n", len(r.Appended), r.TotalEntries, r.MatchPercentage)

		if len(r.Skipped) > 0 {
			b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("No match for %d entries:", len(r.Skipped))) + "\n")
			for _, s := range r.Skipped {
				fmt.Fprintf(&b, "  • %s\n", s.Entry.Title)
			}
		}
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.leave}))
	return b.String()
}

// renderFooter renders the inline error or status line followed by help for bindings.
func (m *Model) renderFooter(bindings ...key.Binding) string {
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(styles.help.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(bindings))
	return b.String()
}
