package assistant

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/cli/assistant/styles"
	"github.com/packpal/packpal/internal/configuration"
	"github.com/packpal/packpal/internal/debug"
	"github.com/packpal/packpal/internal/history"
	"github.com/packpal/packpal/internal/markdown"
	"github.com/packpal/packpal/session"
	"github.com/packpal/packpal/store"
)

var log = debug.GetLogger()

// focusArea identifies which pane receives input.
type focusArea int

const (
	focusChat focusArea = iota
	focusDraft
)

// editTarget identifies which draft field an inline edit applies to.
type editTarget int

const (
	editNone editTarget = iota
	editTripName
	editTripDates
	editTripDescription
	editItemName
	editItemQuantity
	editItemNotes
	newItemName
)

// Fixed rows at the top of the draft pane, before the packing list.
const (
	rowTripName = iota
	rowTripDates
	rowTripDescription
	tripRowCount
)

// Model is the Bubble Tea model for the collaborative edit session.
type Model struct {
	// Core dependencies
	ctx     context.Context
	config  *configuration.Config
	session *session.Session
	journal *store.Store

	// UI components
	textarea      textarea.Model
	chatViewport  viewport.Model
	draftViewport viewport.Model
	editInput     textinput.Model
	spinner       spinner.Model
	renderer      *markdown.Renderer
	alert         bubbleup.AlertModel

	// UI state
	width        int
	height       int
	ready        bool
	splitPercent int
	focus        focusArea
	streaming    bool
	err          error
	quitting     bool

	// Draft editing state
	cursor  int
	editing editTarget

	// Stream control
	cancelStream context.CancelFunc

	// Program reference for sending messages from the stream goroutine
	program   *tea.Program
	programMu sync.Mutex

	// Input history
	history           *history.History
	historyNavigating bool
}

// New creates the session model.
func New(ctx context.Context, config *configuration.Config, s *session.Session, journal *store.Store) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Ask the assistant... (Ctrl+J to send, Tab to switch panes, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.CharLimit = 0
	ti.Prompt = ""

	chatViewport := viewport.New(0, 0)
	draftViewport := viewport.New(0, 0)

	splitPercent := config.Assistant.SplitPercent
	if splitPercent < styles.MinSplitPercent || splitPercent > styles.MaxSplitPercent {
		splitPercent = styles.DefaultSplitPercent
	}

	renderer, err := markdown.NewRenderer(80)
	if err != nil {
		return nil, err
	}

	alert := bubbleup.NewAlertModel(25, true, 1)

	return &Model{
		ctx:           ctx,
		config:        config,
		session:       s,
		journal:       journal,
		textarea:      ta,
		chatViewport:  chatViewport,
		draftViewport: draftViewport,
		editInput:     ti,
		spinner:       sp,
		renderer:      renderer,
		alert:         *alert,
		splitPercent:  splitPercent,
		focus:         focusChat,
		history:       history.New(),
	}, nil
}

// SetProgram sets the tea.Program reference for async message sending.
func (m *Model) SetProgram(p *tea.Program) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

func (m *Model) getProgram() *tea.Program {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

// draftRowCount is the number of selectable rows in the draft pane.
func (m *Model) draftRowCount() int {
	return tripRowCount + len(m.session.Snapshot().Items)
}

// selectedItem returns the draft item under the cursor, if the cursor is on
// an item row.
func (m *Model) selectedItem() (itemName string, ok bool) {
	index := m.cursor - tripRowCount
	items := m.session.Snapshot().Items
	if index < 0 || index >= len(items) {
		return "", false
	}
	return items[index].Name, true
}

// lastAssistantMessage returns the most recent visible assistant message.
func (m *Model) lastAssistantMessage() (string, bool) {
	visible := m.session.Transcript().Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Role == api.RoleAssistant {
			return visible[i].Content, true
		}
	}
	return "", false
}
