package assistant

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/cli/assistant/styles"
	"github.com/packpal/packpal/draft"
	"github.com/packpal/packpal/session"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	chatStyle := styles.PaneStyle
	draftStyle := styles.PaneStyle
	if m.focus == focusChat {
		chatStyle = styles.FocusedPaneStyle
	} else {
		draftStyle = styles.FocusedPaneStyle
	}
	chatPane := chatStyle.Render(m.chatViewport.View())
	draftPane := draftStyle.Render(m.draftViewport.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chatPane, " ", draftPane))
	b.WriteString("\n")

	switch m.session.Transaction().State() {
	case session.ConfirmPending:
		b.WriteString(m.renderConfirmDialog())
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press Y to save, N or Esc to keep editing"))

	case session.CancelPending:
		b.WriteString(m.renderCancelDialog())
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press Y to discard, N or Esc to keep editing"))

	case session.Committing:
		b.WriteString(m.spinner.View() + styles.StatusStyle.Render(" Saving changes..."))
		b.WriteString("\n")

	default:
		if m.streaming {
			b.WriteString(m.spinner.View() + styles.StatusStyle.Render(" Assistant is thinking..."))
			b.WriteString("\n")
		} else {
			b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
			b.WriteString("\n")
		}
		b.WriteString(styles.HelpStyle.Render(m.helpText()))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return m.alert.Render(b.String())
}

func (m *Model) renderTitle() string {
	trip := m.session.Snapshot().Trip
	title := fmt.Sprintf(" 🎒 PackPal │ %s │ %s to %s ", trip.Name, trip.StartDate, trip.EndDate)
	return styles.TitleStyle.Width(m.width).Render(title)
}

func (m *Model) helpText() string {
	if m.focus == focusDraft {
		if m.editing != editNone {
			return "Enter to apply • Esc to abort"
		}
		return "↑/↓ move • Enter edit • a add • d delete • Space packed • Tab chat • Ctrl+S save • Ctrl+X discard"
	}
	return "Ctrl+J send • Tab draft • Alt+P/N history • Alt+W copy • Ctrl+S save • Ctrl+X discard"
}

// refreshChat rebuilds the conversation pane from the transcript.
func (m *Model) refreshChat() {
	var b strings.Builder

	messages := m.session.Transcript().Visible()
	for i, message := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch message.Role {
		case api.RoleUser:
			b.WriteString(styles.UserMessageStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.renderer.Render(message.Content, i))
		case api.RoleAssistant:
			b.WriteString(styles.AssistantMessageStyle.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(m.renderer.Render(message.Content, i))
		}
	}

	if m.streaming {
		b.WriteString("\n\n")
		b.WriteString(styles.SpinnerStyle.Render("▋"))
	}

	m.chatViewport.SetContent(b.String())
}

// refreshDraft rebuilds the draft pane from the current snapshot.
func (m *Model) refreshDraft() {
	snapshot := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(m.renderField(rowTripName, editTripName, "Name", snapshot.Trip.Name))
	b.WriteString("\n")
	dates := fmt.Sprintf("%s to %s", snapshot.Trip.StartDate, snapshot.Trip.EndDate)
	b.WriteString(m.renderField(rowTripDates, editTripDates, "Dates", dates))
	b.WriteString("\n")
	b.WriteString(m.renderField(rowTripDescription, editTripDescription, "About", snapshot.Trip.Description))
	b.WriteString("\n\n")

	b.WriteString(styles.PaneTitleStyle.Render(fmt.Sprintf("Packing list (%d)", len(snapshot.Items))))
	b.WriteString("\n")
	for i, item := range snapshot.Items {
		b.WriteString(m.renderItem(tripRowCount+i, item))
		b.WriteString("\n")
	}

	if m.editing == newItemName {
		b.WriteString("  " + m.editInput.View())
		b.WriteString("\n")
	}

	m.draftViewport.SetContent(b.String())
}

func (m *Model) renderField(row int, target editTarget, label, value string) string {
	labelStr := styles.FieldLabelStyle.Render(label + ":")
	if m.cursor == row && m.editing == target {
		return labelStr + " " + m.editInput.View()
	}
	line := labelStr + " " + styles.FieldValueStyle.Render(value)
	if m.focus == focusDraft && m.cursor == row && m.editing == editNone {
		return styles.SelectedRowStyle.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) renderItem(row int, item draft.Item) string {
	selected := m.focus == focusDraft && m.cursor == row

	if selected && m.editing != editNone && m.editing != newItemName {
		return "  " + m.editInput.View()
	}

	check := "[ ]"
	if item.Packed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s ×%d", check, item.Name, item.Quantity)
	if item.Packed {
		line = styles.ItemPackedStyle.Render(line)
	}
	if item.Notes != "" {
		line += "  " + styles.ItemNotesStyle.Render(item.Notes)
	}

	if selected && m.editing == editNone {
		return styles.SelectedRowStyle.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) renderConfirmDialog() string {
	snapshot := m.session.Snapshot()
	var b strings.Builder
	b.WriteString(styles.ConfirmTitleStyle.Render("💾 Save changes?"))
	b.WriteString("\n\n")
	b.WriteString(styles.ConfirmBodyStyle.Render(fmt.Sprintf(
		"Save '%s' and its packing list of %d items to the server.",
		snapshot.Trip.Name, len(snapshot.Items))))
	return styles.ConfirmBoxStyle.Render(b.String())
}

func (m *Model) renderCancelDialog() string {
	var b strings.Builder
	b.WriteString(styles.ConfirmTitleStyle.Render("🗑 Discard changes?"))
	b.WriteString("\n\n")
	b.WriteString(styles.ConfirmBodyStyle.Render(
		"Throw away all edits from this session. The server copy stays untouched."))
	return styles.ConfirmBoxStyle.Render(b.String())
}
