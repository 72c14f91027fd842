package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brewbuddy/internal/brew"
	"brewbuddy/internal/model"
	"brewbuddy/internal/settings"
)

// RecipeStore is the slice of the backend the wizard needs: list recipes,
// save one result. cmd/brew adapts the service layer onto it.
type RecipeStore interface {
	Brewprints(ctx context.Context) ([]model.Brewprint, error)
	SaveResult(ctx context.Context, brewprintID string, input ResultInput) error
}

// ResultInput is the results-capture payload gathered by the form.
type ResultInput struct {
	Rating          int
	Notes           string
	TDSPercent      *float64
	ExtractionYield *float64
	DurationSeconds int
}

// ViewMode represents the current screen
type ViewMode int

const (
	ViewModePicker   ViewMode = iota // brewprint selection
	ViewModeSession                  // phase wizard with the timer
	ViewModeResults                  // rating / notes / measurements form
	ViewModeSaved                    // confirmation after a saved result
	ViewModeSettings                 // preference toggles
)

// Messages
type brewprintsLoadedMsg struct {
	brewprints []model.Brewprint
	err        error
}

type tickMsg time.Time

type resultSavedMsg struct {
	err error
}

type settingsSavedMsg struct {
	err error
}

// Result form field order
const (
	fieldRating = iota
	fieldNotes
	fieldTDS
	fieldExtraction
	fieldCount
)

// Model is the root Bubble Tea model for the guided brew wizard.
type Model struct {
	width  int
	height int

	keys       KeyMap
	store      RecipeStore
	prefsStore *settings.Store
	prefs      settings.Settings

	viewMode ViewMode

	// Picker state
	brewprints    []model.Brewprint
	selectedIndex int

	// Settings screen state
	settingsIndex int

	// Live session; owned exclusively by this screen instance
	session *brew.Session
	ticking bool

	// Results form
	inputs   [fieldCount]textinput.Model
	focusIdx int
	saving   bool

	errMsg    string
	statusMsg string
}

func New(store RecipeStore, prefsStore *settings.Store, prefs settings.Settings) Model {
	m := Model{
		keys:       DefaultKeyMap(),
		store:      store,
		prefsStore: prefsStore,
		prefs:      prefs,
	}

	rating := textinput.New()
	rating.Placeholder = "1-5"
	rating.CharLimit = 1
	rating.Width = 6
	m.inputs[fieldRating] = rating

	notes := textinput.New()
	notes.Placeholder = "tasting notes (optional)"
	notes.CharLimit = 280
	notes.Width = 48
	m.inputs[fieldNotes] = notes

	tds := textinput.New()
	tds.Placeholder = "TDS % (optional)"
	tds.CharLimit = 6
	tds.Width = 12
	m.inputs[fieldTDS] = tds

	extraction := textinput.New()
	extraction.Placeholder = "extraction yield % (optional)"
	extraction.CharLimit = 6
	extraction.Width = 12
	m.inputs[fieldExtraction] = extraction

	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadBrewprintsCmd()
}

func (m Model) loadBrewprintsCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		brewprints, err := store.Brewprints(ctx)
		return brewprintsLoadedMsg{brewprints: brewprints, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) saveResultCmd(brewprintID string, input ResultInput) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return resultSavedMsg{err: store.SaveResult(ctx, brewprintID, input)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case brewprintsLoadedMsg:
		if msg.err != nil {
			m.errMsg = "could not load brewprints: " + msg.err.Error()
			return m, nil
		}
		m.brewprints = msg.brewprints
		if m.selectedIndex >= len(m.brewprints) {
			m.selectedIndex = 0
		}
		return m, nil

	case tickMsg:
		m.ticking = false
		if m.session != nil && m.session.Running() {
			m.session.Tick()
			m.ticking = true
			return m, m.tickCmd()
		}
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.errMsg = "could not save settings: " + msg.err.Error()
		}
		return m, nil

	case resultSavedMsg:
		m.saving = false
		if msg.err != nil {
			// Session and form state stay intact so the user can retry.
			m.errMsg = "could not save result: " + msg.err.Error()
			return m, nil
		}
		m.viewMode = ViewModeSaved
		m.statusMsg = "result saved"
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.viewMode != ViewModeResults {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewModePicker:
		return m.updatePicker(msg)
	case ViewModeSession:
		return m.updateSession(msg)
	case ViewModeResults:
		return m.updateResults(msg)
	case ViewModeSettings:
		return m.updateSettings(msg)
	case ViewModeSaved:
		m.viewMode = ViewModePicker
		m.session = nil
		m.statusMsg = ""
		return m, m.loadBrewprintsCmd()
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedIndex < len(m.brewprints)-1 {
			m.selectedIndex++
		}
	case key.Matches(msg, m.keys.Settings):
		m.viewMode = ViewModeSettings
		m.settingsIndex = 0
	case key.Matches(msg, m.keys.Select):
		if len(m.brewprints) == 0 {
			return m, nil
		}
		m.session = brew.NewSession(m.brewprints[m.selectedIndex])
		m.viewMode = ViewModeSession
		m.errMsg = ""
	}
	return m, nil
}

const settingsFieldCount = 2

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewModePicker
		return m, m.saveSettingsCmd()

	case key.Matches(msg, m.keys.Up):
		if m.settingsIndex > 0 {
			m.settingsIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.settingsIndex < settingsFieldCount-1 {
			m.settingsIndex++
		}
	case key.Matches(msg, m.keys.Advance):
		switch m.settingsIndex {
		case 0:
			m.prefs.FinishedSound = !m.prefs.FinishedSound
		case 1:
			m.prefs.KeepScreenOn = !m.prefs.KeepScreenOn
		}
	}
	return m, nil
}

func (m Model) saveSettingsCmd() tea.Cmd {
	if m.prefsStore == nil {
		return nil
	}
	prefsStore := m.prefsStore
	prefs := m.prefs
	return func() tea.Msg {
		return settingsSavedMsg{err: prefsStore.Save(prefs)}
	}
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Abandoning the session discards it; nothing was persisted.
		m.session = nil
		m.viewMode = ViewModePicker
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.session.Running() {
			m.session.Pause()
			return m, nil
		}
		m.session.Resume()
		cmd := m.scheduleTick()
		return m, cmd

	case key.Matches(msg, m.keys.Advance):
		m.session.Advance()
		if m.session.Phase() == brew.PhaseFinished {
			return m.enterResults()
		}
		cmd := m.scheduleTick()
		return m, cmd
	}
	return m, nil
}

func (m Model) enterResults() (tea.Model, tea.Cmd) {
	m.viewMode = ViewModeResults
	m.errMsg = ""
	m.focusIdx = fieldRating
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	cmd := m.inputs[fieldRating].Focus()
	if m.prefs.FinishedSound {
		return m, tea.Batch(cmd, ringBell)
	}
	return m, cmd
}

// ringBell sounds the terminal bell when a brew reaches finished.
func ringBell() tea.Msg {
	fmt.Print("\a")
	return nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		// Back to the finished session screen; the draft survives.
		m.viewMode = ViewModeSession
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m.focusField((m.focusIdx + 1) % fieldCount)

	case key.Matches(msg, m.keys.Prev):
		return m.focusField((m.focusIdx + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Submit):
		return m.submitResult()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) focusField(idx int) (tea.Model, tea.Cmd) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	cmd := m.inputs[m.focusIdx].Focus()
	return m, cmd
}

// submitResult validates locally first: a bad rating or measurement never
// reaches the store.
func (m Model) submitResult() (tea.Model, tea.Cmd) {
	rating, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldRating].Value()))
	if err != nil || rating < 1 || rating > 5 {
		m.errMsg = "rating must be a whole number between 1 and 5"
		return m, nil
	}

	input := ResultInput{
		Rating:          rating,
		Notes:           m.inputs[fieldNotes].Value(),
		DurationSeconds: m.session.ResultDraft().DurationSeconds,
	}

	if raw := strings.TrimSpace(m.inputs[fieldTDS].Value()); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			m.errMsg = "TDS must be a positive number"
			return m, nil
		}
		input.TDSPercent = &value
	}
	if raw := strings.TrimSpace(m.inputs[fieldExtraction].Value()); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			m.errMsg = "extraction yield must be a positive number"
			return m, nil
		}
		input.ExtractionYield = &value
	}

	m.errMsg = ""
	m.saving = true
	return m, m.saveResultCmd(m.session.Brewprint().ID, input)
}

// scheduleTick starts the 1 Hz tick chain, guarding against a second
// concurrent chain after pause/resume cycles.
func (m *Model) scheduleTick() tea.Cmd {
	if m.session == nil || !m.session.Running() || m.ticking {
		return nil
	}
	m.ticking = true
	return m.tickCmd()
}

func (m Model) View() string {
	var body string
	switch m.viewMode {
	case ViewModePicker:
		body = m.viewPicker()
	case ViewModeSession:
		body = m.viewSession()
	case ViewModeResults:
		body = m.viewResults()
	case ViewModeSaved:
		body = m.viewSaved()
	case ViewModeSettings:
		body = m.viewSettings()
	}

	footer := ""
	if m.errMsg != "" {
		footer = ErrorStyle.Render(m.errMsg)
	} else if m.statusMsg != "" {
		footer = SuccessStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("brewbuddy"),
		body,
		StatusBarStyle.Render(footer),
	)
}

func (m Model) viewPicker() string {
	if len(m.brewprints) == 0 {
		return PanelStyle.Render(LabelStyle.Render("No brewprints yet. Create one with the API, then come back."))
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Pick a brewprint to brew:") + "\n\n")
	for i, bp := range m.brewprints {
		line := fmt.Sprintf("%s  %s · %s · %s",
			bp.Name,
			bp.Method,
			brew.RatioString(bp.CoffeeGrams, bp.WaterGrams),
			bp.Status,
		)
		if i == m.selectedIndex {
			b.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(ItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + StatusBarStyle.Render("enter: brew · s: settings · q: quit"))
	return PanelStyle.Render(b.String())
}

func (m Model) viewSession() string {
	bp := m.session.Brewprint()
	phase := m.session.Phase()
	info := phase.Info()

	var b strings.Builder
	b.WriteString(PhaseTitleStyle.Render(bp.Name) + "\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%s · %.0fg : %.0fg (%s) · %.0f°C",
		bp.Method, bp.CoffeeGrams, bp.WaterGrams, m.session.Ratio(), bp.WaterTempC)) + "\n\n")

	for _, p := range []brew.Phase{brew.PhasePreparation, brew.PhaseBlooming, brew.PhasePouring, brew.PhaseFinished} {
		marker := "  "
		style := PhasePendingStyle
		switch {
		case p == phase:
			marker = "> "
			style = PhaseTitleStyle
		case p < phase:
			marker = "✓ "
			style = PhaseDoneStyle
		}
		b.WriteString(style.Render(marker+p.Info().Title) + "\n")
	}

	b.WriteString("\n" + PhaseDescStyle.Render(info.Description) + "\n\n")

	clock := brew.FormatClock(m.session.Elapsed())
	timerStyle := TimerStyle
	if info.TargetSeconds > 0 && m.session.Elapsed() > info.TargetSeconds {
		// Advisory only: highlight the overrun, never advance for the user.
		timerStyle = TimerOverrunStyle
	}
	line := timerStyle.Render(clock)
	if info.TargetSeconds > 0 {
		line += LabelStyle.Render("  (target " + brew.FormatClock(info.TargetSeconds) + ")")
	}
	if !m.session.Running() && phase != brew.PhasePreparation && phase != brew.PhaseFinished {
		line += LabelStyle.Render("  paused")
	}
	b.WriteString(line + "\n")

	if pct, ok := m.session.ProgressPercent(); ok {
		b.WriteString(renderProgressBar(pct, 30) + LabelStyle.Render(fmt.Sprintf(" %d%%", pct)) + "\n")
	}

	b.WriteString("\n" + StatusBarStyle.Render("space: next phase · p: pause/resume · r: reset · esc: abandon · q: quit"))
	return PanelStyle.Render(b.String())
}

func (m Model) viewResults() string {
	var b strings.Builder
	b.WriteString(PhaseTitleStyle.Render("How was it?") + "\n")
	b.WriteString(LabelStyle.Render("brew time "+brew.FormatClock(m.session.ResultDraft().DurationSeconds)) + "\n\n")

	labels := [fieldCount]string{"Rating", "Notes", "TDS %", "Extraction %"}
	for i := range m.inputs {
		b.WriteString(LabelStyle.Render(labels[i]) + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
	}

	if m.saving {
		b.WriteString("\n" + LabelStyle.Render("saving..."))
	} else {
		b.WriteString("\n" + StatusBarStyle.Render("tab: next field · enter: save · esc: back"))
	}
	return PanelStyle.Render(b.String())
}

func (m Model) viewSettings() string {
	toggles := []struct {
		label string
		on    bool
	}{
		{"Sound when the brew finishes", m.prefs.FinishedSound},
		{"Keep the session on screen after quitting", m.prefs.KeepScreenOn},
	}

	var b strings.Builder
	b.WriteString(PhaseTitleStyle.Render("Settings") + "\n\n")
	for i, toggle := range toggles {
		state := "[ ]"
		if toggle.on {
			state = "[x]"
		}
		line := state + " " + toggle.label
		if i == m.settingsIndex {
			b.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(ItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + StatusBarStyle.Render("space: toggle · esc: save and go back"))
	return PanelStyle.Render(b.String())
}

func (m Model) viewSaved() string {
	return PanelStyle.Render(
		SuccessStyle.Render("Result saved.") + "\n\n" +
			LabelStyle.Render("Press any key to brew again."),
	)
}
