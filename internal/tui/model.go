package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/filter"
	"github.com/hpratama/taskbin/internal/task"
)

// mode selects which surface has the keyboard.
type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
	modeLogin
)

// Model holds the board state
type Model struct {
	// Core components
	svc  TaskService
	gate AccessGate
	bus  *event.Bus
	opts task.Options

	defaultStatus string

	// Bus plumbing
	events chan event.Event
	subID  string

	// UI state
	mode       mode
	tasks      []task.Task
	visible    []task.Task
	cursor     int
	width      int
	height     int
	searching  bool
	search     textinput.Model
	statuses   []string
	statusIdx  int
	projects   []string
	projectIdx int
	canWrite   bool
	loading    bool
	errorMsg   string
	infoMsg    string
	quitting   bool

	// Overlays
	form    *taskForm
	confirm task.Task
	login   textinput.Model
}

// NewModel creates the board model and subscribes it to the bus.
func NewModel(svc TaskService, gate AccessGate, bus *event.Bus, opts task.Options, defaultStatus string) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 100
	search.Width = 30

	login := textinput.New()
	login.Placeholder = "passcode"
	login.EchoMode = textinput.EchoPassword
	login.CharLimit = 100
	login.Width = 30

	events := make(chan event.Event, 16)
	subID := bus.SubscribeAll(func(ev event.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	return Model{
		svc:           svc,
		gate:          gate,
		bus:           bus,
		opts:          opts,
		defaultStatus: defaultStatus,
		events:        events,
		subID:         subID,
		search:        search,
		login:         login,
		statuses:      append([]string{""}, opts.Statuses...),
		projects:      append([]string{""}, opts.Projects...),
		canWrite:      gate.CanWrite(),
		loading:       true,
	}
}

// Close detaches the model from the bus.
func (m Model) Close() {
	m.bus.Unsubscribe(m.subID)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshTasks(m.svc), waitEvent(m.events), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.tasks = msg.tasks
		m.applyFilter()
		return m, nil

	case opDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = writeErrorMessage(msg.err)
		} else {
			m.infoMsg = "Task " + msg.verb + "."
			// The repository re-fetched after the write, so its
			// snapshot is already current.
			m.tasks = m.svc.List()
			m.applyFilter()
		}
		return m, nil

	case busMsg:
		switch ev := msg.ev.(type) {
		case event.PermissionChangedEvent:
			m.canWrite = ev.CanWrite
		case event.CollectionChangedEvent:
			m.tasks = ev.Tasks
			m.applyFilter()
		}
		return m, waitEvent(m.events)

	case tea.KeyMsg:
		m.errorMsg = ""
		m.infoMsg = ""

		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeLogin:
			return m.updateLogin(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.applyFilter()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "r":
		m.loading = true
		return m, refreshTasks(m.svc)

	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
		m.applyFilter()

	case "p":
		m.projectIdx = (m.projectIdx + 1) % len(m.projects)
		m.applyFilter()

	case "x":
		m.statusIdx = 0
		m.projectIdx = 0
		m.search.SetValue("")
		m.applyFilter()

	case "a":
		if !m.canWrite {
			m.errorMsg = "read-only: press L to log in"
			return m, nil
		}
		m.form = newTaskForm("New task", "", task.Draft{Status: m.defaultStatus}, m.opts)
		m.mode = modeForm
		return m, textinput.Blink

	case "e", "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		if !m.canWrite {
			m.errorMsg = "read-only: press L to log in"
			return m, nil
		}
		t := m.visible[m.cursor]
		m.form = newTaskForm("Edit task", t.ID, task.DraftOf(t), m.opts)
		m.mode = modeForm
		return m, textinput.Blink

	case "d":
		if len(m.visible) == 0 {
			return m, nil
		}
		if !m.canWrite {
			m.errorMsg = "read-only: press L to log in"
			return m, nil
		}
		m.confirm = m.visible[m.cursor]
		m.mode = modeConfirm

	case "L":
		m.login.SetValue("")
		m.login.Focus()
		m.mode = modeLogin
		return m, textinput.Blink

	case "O":
		if err := m.gate.Revoke(); err != nil {
			m.errorMsg = err.Error()
		} else {
			m.infoMsg = "Write access locked."
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		return m, nil

	case "enter":
		draft, err := m.form.Draft()
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		id := m.form.taskID
		m.form = nil
		m.mode = modeList
		m.loading = true
		if id == "" {
			return m, createTask(m.svc, draft)
		}
		return m, updateTask(m.svc, id, draft)
	}

	cmd := m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.confirm.ID
		m.confirm = task.Task{}
		m.mode = modeList
		m.loading = true
		return m, deleteTask(m.svc, id)
	case "n", "esc":
		m.confirm = task.Task{}
		m.mode = modeList
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.login.SetValue("")
		m.login.Blur()
		m.mode = modeList
		// Cancelling credential entry must not leave a half-entered
		// grant behind, so the gate drops back to read-only.
		if err := m.gate.Revoke(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.canWrite = false
		m.infoMsg = "Login cancelled; write access locked."
		return m, nil

	case "enter":
		passcode := m.login.Value()
		m.login.SetValue("")
		m.login.Blur()
		m.mode = modeList
		if err := m.gate.Grant(passcode); err != nil {
			if errors.Is(err, errors.ErrInvalidCredential) {
				m.errorMsg = "wrong passcode"
			} else {
				m.errorMsg = err.Error()
			}
			return m, nil
		}
		m.canWrite = true
		m.infoMsg = "Write access unlocked."
		return m, nil
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

// applyFilter recomputes the visible rows from the current query.
func (m *Model) applyFilter() {
	q := filter.Query{
		Text:    m.search.Value(),
		Project: m.projects[m.projectIdx],
	}
	if status := m.statuses[m.statusIdx]; status != "" {
		q.Statuses = []string{status}
	}

	m.visible = filter.SortByDeadline(filter.Apply(m.tasks, q))
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (task.Task, bool) {
	if m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

// writeErrorMessage renders a mutation error with a login hint where the
// gate denied it.
func writeErrorMessage(err error) string {
	if errors.Is(err, errors.ErrPermissionDenied) {
		return "permission denied: press L to log in"
	}
	if errors.Is(err, errors.ErrOperationInFlight) {
		return "another change is still in flight"
	}
	return err.Error()
}
