package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbuddy/internal/brew"
	"brewbuddy/internal/model"
	"brewbuddy/internal/settings"
)

type fakeStore struct {
	brewprints []model.Brewprint
	saved      []savedCall
	saveErr    error
}

type savedCall struct {
	brewprintID string
	input       ResultInput
}

func (f *fakeStore) Brewprints(ctx context.Context) ([]model.Brewprint, error) {
	return f.brewprints, nil
}

func (f *fakeStore) SaveResult(ctx context.Context, brewprintID string, input ResultInput) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, savedCall{brewprintID: brewprintID, input: input})
	return nil
}

func testBrewprint() model.Brewprint {
	return model.Brewprint{
		ID:            "bp-1",
		Name:          "Morning V60",
		Method:        "v60",
		CoffeeGrams:   15,
		WaterGrams:    250,
		WaterTempC:    93,
		TargetSeconds: 180,
		Status:        model.StatusExperimenting,
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keySpace() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace} }
func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }

// update runs one Update cycle and keeps the concrete model type.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update must return a tui.Model")
	return next, cmd
}

func newTestModel(store *fakeStore) Model {
	return New(store, nil, settings.Default())
}

// startSession loads one brewprint and selects it.
func startSession(t *testing.T, store *fakeStore) Model {
	t.Helper()
	m := newTestModel(store)
	m, _ = update(t, m, brewprintsLoadedMsg{brewprints: store.brewprints})
	m, _ = update(t, m, keyEnter())
	require.Equal(t, ViewModeSession, m.viewMode)
	return m
}

func TestPickerSelectStartsSessionAtPreparation(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)

	assert.Equal(t, brew.PhasePreparation, m.session.Phase())
	assert.False(t, m.session.Running(), "timer must not run before the first advance")
	assert.Equal(t, 0, m.session.Elapsed())
}

func TestPickerSelectWithNoBrewprintsDoesNothing(t *testing.T) {
	m := newTestModel(&fakeStore{})
	m, _ = update(t, m, brewprintsLoadedMsg{})
	m, _ = update(t, m, keyEnter())

	assert.Equal(t, ViewModePicker, m.viewMode)
	assert.Nil(t, m.session)
}

func TestTickCountsOnlyWhileRunning(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)

	m, _ = update(t, m, keySpace()) // preparation -> blooming, timer starts
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, tickMsg{})
	assert.Equal(t, 2, m.session.Elapsed())

	m, _ = update(t, m, keyRune('p')) // pause
	m, _ = update(t, m, tickMsg{})
	assert.Equal(t, 2, m.session.Elapsed(), "a paused session must not count ticks")

	m, _ = update(t, m, keyRune('p')) // resume
	m, _ = update(t, m, tickMsg{})
	assert.Equal(t, 3, m.session.Elapsed())
}

func TestTicksNeverAdvanceThePhase(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)

	m, _ = update(t, m, keySpace())
	for i := 0; i < 1000; i++ {
		m, _ = update(t, m, tickMsg{})
	}

	assert.Equal(t, brew.PhaseBlooming, m.session.Phase(),
		"elapsed time past the target stays advisory")
	assert.Equal(t, 1000, m.session.Elapsed())
}

func TestAdvanceToFinishedOpensResultsForm(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)

	m, _ = update(t, m, keySpace()) // blooming
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, keySpace()) // pouring
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, keySpace()) // finished

	assert.Equal(t, ViewModeResults, m.viewMode)
	assert.False(t, m.session.Running(), "reaching finished must stop the timer")
	assert.Equal(t, 2, m.session.ResultDraft().DurationSeconds)
}

func TestResetReturnsToPreparationWithZeroedTimer(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)

	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, keyRune('r'))

	assert.Equal(t, brew.PhasePreparation, m.session.Phase())
	assert.Equal(t, 0, m.session.Elapsed())
	assert.False(t, m.session.Running())
}

func TestSubmitRejectsInvalidRatingWithoutStoreCall(t *testing.T) {
	tests := []struct {
		name   string
		rating string
	}{
		{"zero", "0"},
		{"six", "6"},
		{"blank", ""},
		{"not a number", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
			m := startSession(t, store)
			m, _ = update(t, m, keySpace())
			m, _ = update(t, m, keySpace())
			m, _ = update(t, m, keySpace())
			require.Equal(t, ViewModeResults, m.viewMode)

			m.inputs[fieldRating].SetValue(tt.rating)
			m, cmd := update(t, m, keyEnter())

			assert.Nil(t, cmd, "a rejected submit must not dispatch a save")
			assert.NotEmpty(t, m.errMsg)
			assert.Empty(t, store.saved)
			assert.Equal(t, ViewModeResults, m.viewMode)
		})
	}
}

func TestSubmitSavesRatingWithEmptyNotes(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)
	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, tickMsg{})
	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, keySpace())

	m.inputs[fieldRating].SetValue("3")
	m, cmd := update(t, m, keyEnter())
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd().(resultSavedMsg))

	require.Len(t, store.saved, 1)
	call := store.saved[0]
	assert.Equal(t, "bp-1", call.brewprintID)
	assert.Equal(t, 3, call.input.Rating)
	assert.Equal(t, "", call.input.Notes, "empty notes are a valid result")
	assert.Equal(t, 1, call.input.DurationSeconds)
	assert.Equal(t, ViewModeSaved, m.viewMode)
}

func TestSaveFailureKeepsSessionForRetry(t *testing.T) {
	store := &fakeStore{
		brewprints: []model.Brewprint{testBrewprint()},
		saveErr:    errors.New("disk full"),
	}
	m := startSession(t, store)
	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, keySpace())

	m.inputs[fieldRating].SetValue("4")
	m, cmd := update(t, m, keyEnter())
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd().(resultSavedMsg))

	assert.Equal(t, ViewModeResults, m.viewMode)
	assert.NotEmpty(t, m.errMsg)
	assert.NotNil(t, m.session, "the session survives a failed save")
	assert.Equal(t, "4", m.inputs[fieldRating].Value())
}

func TestSettingsToggleRoundTrips(t *testing.T) {
	prefsStore := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	m := New(&fakeStore{}, prefsStore, settings.Default())
	m, _ = update(t, m, brewprintsLoadedMsg{})

	m, _ = update(t, m, keyRune('s'))
	require.Equal(t, ViewModeSettings, m.viewMode)

	m, _ = update(t, m, keySpace()) // toggle finished-sound off
	assert.False(t, m.prefs.FinishedSound)

	m, cmd := update(t, m, keyEsc())
	assert.Equal(t, ViewModePicker, m.viewMode)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Empty(t, m.errMsg)
	loaded, err := prefsStore.Load()
	require.NoError(t, err)
	assert.False(t, loaded.FinishedSound)
}

func TestEscapeAbandonsSessionWithoutPersisting(t *testing.T) {
	store := &fakeStore{brewprints: []model.Brewprint{testBrewprint()}}
	m := startSession(t, store)
	m, _ = update(t, m, keySpace())
	m, _ = update(t, m, tickMsg{})

	m, _ = update(t, m, keyEsc())

	assert.Equal(t, ViewModePicker, m.viewMode)
	assert.Nil(t, m.session)
	assert.Empty(t, store.saved)
}
