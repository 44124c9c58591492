package assistant

import (
	"strings"

	"github.com/packpal/packpal/cli/assistant/styles"
)

// recalculateLayout resizes the panes and inputs for the current
// terminal dimensions and split percentage.
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	chatWidth := m.width * m.splitPercent / 100
	draftWidth := m.width - chatWidth - styles.DividerWidth

	m.adjustTextareaHeight()
	inputHeight := m.textarea.Height() + styles.InputBorderHeight

	statusHeight := 0
	if m.streaming {
		statusHeight = 1
	}

	// Pane borders eat two rows on top of the viewport minimum.
	paneHeight := m.height - styles.HeaderHeight - inputHeight - statusHeight - 1
	if paneHeight < styles.MinViewportHeight+2 {
		paneHeight = styles.MinViewportHeight + 2
	}

	// Pane borders eat two columns and two rows each.
	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = paneHeight - 2
	m.draftViewport.Width = draftWidth - 2
	m.draftViewport.Height = paneHeight - 2

	m.textarea.SetWidth(m.width - 2)
	m.editInput.Width = draftWidth - 6
	m.renderer.SetWidth(m.chatViewport.Width - 2)

	m.ready = true
}

// adjustTextareaHeight grows the input with its content, within bounds.
func (m *Model) adjustTextareaHeight() {
	lines := strings.Count(m.textarea.Value(), "\n") + 1
	height := lines
	if height < styles.MinTextareaHeight {
		height = styles.MinTextareaHeight
	}
	if height > styles.MaxTextareaHeight {
		height = styles.MaxTextareaHeight
	}
	if height != m.textarea.Height() {
		m.textarea.SetHeight(height)
	}
}
