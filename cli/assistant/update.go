package assistant

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/cli/assistant/styles"
	"github.com/packpal/packpal/session"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()
		m.refreshChat()
		m.refreshDraft()
		m.chatViewport.GotoBottom()
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.streaming {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case streamEventMsg:
		m.session.Dispatch(msg.event)
		if msg.event.Message.Role == api.RoleTool {
			m.refreshDraft()
			m.clampCursor()
			cmds = append(cmds, m.saveJournal())
		}
		wasAtBottom := m.chatViewport.AtBottom()
		m.refreshChat()
		if wasAtBottom {
			m.chatViewport.GotoBottom()
		}
		return m, tea.Batch(cmds...)

	case streamDoneMsg:
		m.streaming = false
		m.cancelStream = nil
		m.recalculateLayout()
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			log.Error("assistant turn failed", "trip_id", m.session.TripID, "error", msg.err)
			m.err = msg.err
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, "Assistant stream failed"))
		}
		return m, tea.Batch(cmds...)

	case commitResultMsg:
		if msg.err != nil {
			// The transaction is back in Editing with the draft intact.
			m.err = msg.err
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, "Saving changes failed"))
			return m, tea.Batch(cmds...)
		}
		m.clearJournal()
		m.quitting = true
		return m, tea.Quit

	case journalErrorMsg:
		if msg.err != nil {
			log.Error("draft autosave failed", "trip_id", m.session.TripID, "error", msg.err)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		cmd, handled := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}
	}

	// Route remaining messages to the focused input and viewports.
	if m.editing != editNone {
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	if m.focus == focusChat && !m.streaming {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
	}

	var cmd tea.Cmd
	m.chatViewport, cmd = m.chatViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey processes a key press. handled=false means the key should fall
// through to the focused component.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	txn := m.session.Transaction()

	// Modal states capture all input.
	switch txn.State() {
	case session.ConfirmPending:
		switch msg.String() {
		case "y", "Y", "enter":
			return m.commit(), true
		case "n", "N", "esc":
			txn.Dismiss()
			return nil, true
		}
		return nil, true

	case session.CancelPending:
		switch msg.String() {
		case "y", "Y", "enter":
			if err := txn.Discard(); err == nil {
				m.clearJournal()
				m.session.Teardown()
				m.quitting = true
				return tea.Quit, true
			}
			return nil, true
		case "n", "N", "esc":
			txn.Dismiss()
			return nil, true
		}
		return nil, true

	case session.Committing:
		return nil, true
	}

	// Inline draft edit captures everything except apply/abort.
	if m.editing != editNone {
		switch msg.Type {
		case tea.KeyEnter:
			return m.applyEdit(), true
		case tea.KeyEsc:
			m.editing = editNone
			m.editInput.Blur()
			m.refreshDraft()
			return nil, true
		}
		return nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		if m.streaming {
			if m.cancelStream != nil {
				m.cancelStream()
			}
			return nil, true
		}
		// Quitting mid-session is the cancel path: warn before discarding.
		txn.RequestCancel()
		return nil, true

	case "ctrl+s":
		if !m.streaming {
			if err := txn.RequestConfirm(); err == nil {
				if err := m.session.Snapshot().Validate(); err != nil {
					txn.Dismiss()
					m.err = err
					return m.alert.NewAlertCmd(bubbleup.ErrorKey, err.Error()), true
				}
			}
		}
		return nil, true

	case "ctrl+x":
		if !m.streaming {
			txn.RequestCancel()
		}
		return nil, true

	case "tab":
		if m.focus == focusChat {
			m.focus = focusDraft
			m.textarea.Blur()
		} else {
			m.focus = focusChat
			m.textarea.Focus()
		}
		return textarea.Blink, true

	case "alt+left":
		m.setSplitPercent(m.splitPercent - 5)
		return nil, true

	case "alt+right":
		m.setSplitPercent(m.splitPercent + 5)
		return nil, true

	case "alt+w":
		if content, ok := m.lastAssistantMessage(); ok {
			clipboard.Write(clipboard.FmtText, []byte(content))
			return m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"), true
		}
		return nil, true
	}

	if m.focus == focusChat {
		return m.handleChatKey(msg)
	}
	return m.handleDraftKey(msg)
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Alt && !m.streaming {
		switch msg.String() {
		case "alt+p":
			if entry, ok := m.history.Previous(m.textarea.Value()); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
			}
			return nil, true
		case "alt+n":
			if entry, ok := m.history.Next(); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
			}
			return nil, true
		}
	}

	switch msg.Type {
	case tea.KeyCtrlJ:
		if !m.streaming && strings.TrimSpace(m.textarea.Value()) != "" {
			return m.sendMessage(), true
		}
		return nil, true

	case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
		if m.historyNavigating {
			m.history.Reset()
			m.historyNavigating = false
		}
	}
	return nil, false
}

func (m *Model) handleDraftKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	snapshot := m.session.Snapshot()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshDraft()
		}
		return nil, true

	case "down", "j":
		if m.cursor < m.draftRowCount()-1 {
			m.cursor++
			m.refreshDraft()
		}
		return nil, true

	case "enter", "e":
		m.beginEdit()
		return textarea.Blink, true

	case "a":
		m.editing = newItemName
		m.editInput.SetValue("")
		m.editInput.Placeholder = "New item name"
		m.editInput.Focus()
		m.refreshDraft()
		return textarea.Blink, true

	case "d":
		if name, ok := m.selectedItem(); ok {
			if next, ok := snapshot.DeleteItem(name); ok {
				m.session.SetSnapshot(next)
				m.clampCursor()
				m.refreshDraft()
				return m.saveJournal(), true
			}
		}
		return nil, true

	case "+":
		return m.bumpQuantity(1), true

	case "-":
		return m.bumpQuantity(-1), true

	case " ":
		if name, ok := m.selectedItem(); ok {
			if next, ok := snapshot.ToggleItemPacked(name); ok {
				m.session.SetSnapshot(next)
				m.refreshDraft()
				return m.saveJournal(), true
			}
		}
		return nil, true

	case "n":
		if name, ok := m.selectedItem(); ok {
			m.startItemEdit(editItemNotes, m.itemNotes(name))
		}
		return nil, true

	case "r":
		if name, ok := m.selectedItem(); ok {
			m.startItemEdit(editItemName, name)
		}
		return nil, true
	}
	return nil, true
}

func (m *Model) bumpQuantity(delta int) tea.Cmd {
	name, ok := m.selectedItem()
	if !ok {
		return nil
	}
	snapshot := m.session.Snapshot()
	for _, item := range snapshot.Items {
		if item.Name == name {
			if next, ok := snapshot.UpdateItemQuantity(name, item.Quantity+delta); ok {
				m.session.SetSnapshot(next)
				m.refreshDraft()
				return m.saveJournal()
			}
			return nil
		}
	}
	return nil
}

func (m *Model) itemNotes(name string) string {
	for _, item := range m.session.Snapshot().Items {
		if item.Name == name {
			return item.Notes
		}
	}
	return ""
}

// beginEdit opens the inline editor for the row under the cursor.
func (m *Model) beginEdit() {
	snapshot := m.session.Snapshot()
	switch m.cursor {
	case rowTripName:
		m.startEdit(editTripName, snapshot.Trip.Name, "Trip name")
	case rowTripDates:
		m.startEdit(editTripDates, snapshot.Trip.StartDate+" "+snapshot.Trip.EndDate, "YYYY-MM-DD YYYY-MM-DD")
	case rowTripDescription:
		m.startEdit(editTripDescription, snapshot.Trip.Description, "Description")
	default:
		if name, ok := m.selectedItem(); ok {
			m.startItemEdit(editItemQuantity, strconv.Itoa(m.itemQuantity(name)))
		}
	}
}

func (m *Model) itemQuantity(name string) int {
	for _, item := range m.session.Snapshot().Items {
		if item.Name == name {
			return item.Quantity
		}
	}
	return 0
}

func (m *Model) startEdit(target editTarget, value, placeholder string) {
	m.editing = target
	m.editInput.SetValue(value)
	m.editInput.Placeholder = placeholder
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.refreshDraft()
}

func (m *Model) startItemEdit(target editTarget, value string) {
	m.startEdit(target, value, "")
}

// applyEdit commits the inline edit to the draft through the pure
// snapshot operations.
func (m *Model) applyEdit() tea.Cmd {
	value := m.editInput.Value()
	snapshot := m.session.Snapshot()
	target := m.editing

	m.editing = editNone
	m.editInput.Blur()

	switch target {
	case editTripName:
		m.session.SetSnapshot(snapshot.RenameTrip(value))

	case editTripDates:
		fields := strings.Fields(value)
		if len(fields) != 2 {
			m.refreshDraft()
			return m.alert.NewAlertCmd(bubbleup.ErrorKey, "Enter start and end dates")
		}
		if fields[0] > fields[1] {
			m.refreshDraft()
			return m.alert.NewAlertCmd(bubbleup.ErrorKey, "Start date must not be after end date")
		}
		m.session.SetSnapshot(snapshot.UpdateTripDates(fields[0], fields[1]))

	case editTripDescription:
		m.session.SetSnapshot(snapshot.UpdateTripDescription(value))

	case editItemName:
		name, ok := m.selectedItem()
		if !ok {
			return nil
		}
		next, ok := snapshot.RenameItem(name, value)
		if !ok {
			return nil
		}
		if err := next.Validate(); err != nil {
			m.refreshDraft()
			return m.alert.NewAlertCmd(bubbleup.ErrorKey, err.Error())
		}
		m.session.SetSnapshot(next)

	case editItemQuantity:
		name, ok := m.selectedItem()
		if !ok {
			return nil
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			m.refreshDraft()
			return m.alert.NewAlertCmd(bubbleup.ErrorKey, "Quantity must be a number")
		}
		if next, ok := snapshot.UpdateItemQuantity(name, quantity); ok {
			m.session.SetSnapshot(next)
		}

	case editItemNotes:
		name, ok := m.selectedItem()
		if !ok {
			return nil
		}
		if next, ok := snapshot.UpdateItemNotes(name, value); ok {
			m.session.SetSnapshot(next)
		}

	case newItemName:
		next := snapshot.AddItem(value, 1)
		if err := next.Validate(); err != nil {
			m.refreshDraft()
			return m.alert.NewAlertCmd(bubbleup.ErrorKey, err.Error())
		}
		m.session.SetSnapshot(next)
		m.cursor = m.draftRowCount() - 1
	}

	m.refreshDraft()
	return m.saveJournal()
}

func (m *Model) setSplitPercent(percent int) {
	if percent < styles.MinSplitPercent {
		percent = styles.MinSplitPercent
	}
	if percent > styles.MaxSplitPercent {
		percent = styles.MaxSplitPercent
	}
	if percent == m.splitPercent {
		return
	}
	m.splitPercent = percent
	m.recalculateLayout()
	m.refreshChat()
	m.refreshDraft()
}

func (m *Model) clampCursor() {
	if max := m.draftRowCount() - 1; m.cursor > max {
		m.cursor = max
	}
}
