package brew

import (
	"fmt"
	"math"

	"brewbuddy/internal/model"
)

// RatioPlaceholder is rendered when the brew ratio cannot be computed.
const RatioPlaceholder = "—"

// Session drives one brew of one brewprint: a timer plus the phase state
// machine, with the derived display values the screen needs. It is transient
// by design — nothing is persisted unless the user submits a result.
//
// All transitions are explicit user actions. Even when elapsed time passes a
// phase target the session stays put; targets are advisory display values.
type Session struct {
	brewprint model.Brewprint
	phase     Phase
	timer     Timer
}

func NewSession(brewprint model.Brewprint) *Session {
	return &Session{brewprint: brewprint}
}

func (s *Session) Brewprint() model.Brewprint {
	return s.brewprint
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Elapsed() int {
	return s.timer.Elapsed()
}

func (s *Session) Running() bool {
	return s.timer.Running()
}

// Tick forwards one second of wall-clock time to the timer.
func (s *Session) Tick() {
	s.timer.Tick()
}

// Advance moves the session one phase forward: preparation starts the timer,
// the final pour pauses it. Advancing at finished is a no-op; the only way
// out of finished is Reset.
func (s *Session) Advance() {
	next, ok := s.phase.Next()
	if !ok {
		return
	}
	switch s.phase {
	case PhasePreparation:
		s.timer.Start()
	case PhasePouring:
		s.timer.Pause()
	}
	s.phase = next
}

// Pause stops the timer without touching the phase.
func (s *Session) Pause() {
	s.timer.Pause()
}

// Resume restarts a paused timer. Only the timed phases accept it; resuming
// at preparation or finished would count seconds no brew is using.
func (s *Session) Resume() {
	if s.phase == PhaseBlooming || s.phase == PhasePouring {
		s.timer.Start()
	}
}

// Reset returns to preparation with the timer stopped at zero, in one action.
func (s *Session) Reset() {
	s.phase = PhasePreparation
	s.timer.Reset()
}

// ProgressPercent reports elapsed time against the brewprint's target,
// clamped to [0, 100]. ok is false when the brewprint declares no target, in
// which case the display suppresses the figure instead of erroring.
func (s *Session) ProgressPercent() (int, bool) {
	return progressPercent(s.timer.Elapsed(), s.brewprint.TargetSeconds)
}

func progressPercent(elapsed, target int) (int, bool) {
	if target <= 0 {
		return 0, false
	}
	pct := int(math.Round(float64(elapsed) / float64(target) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// Ratio renders the brewprint's coffee:water ratio.
func (s *Session) Ratio() string {
	return RatioString(s.brewprint.CoffeeGrams, s.brewprint.WaterGrams)
}

// RatioString formats a coffee:water ratio as "1:n.n". Non-positive coffee
// grams would divide by zero, so the placeholder is returned instead of
// letting Inf/NaN reach the display.
func RatioString(coffeeGrams, waterGrams float64) string {
	if coffeeGrams <= 0 || waterGrams < 0 {
		return RatioPlaceholder
	}
	return fmt.Sprintf("1:%.1f", waterGrams/coffeeGrams)
}

// FormatClock renders whole seconds as m:ss for the timer display.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ResultDraft seeds the results-capture form once the session reaches
// finished. Rating and notes are filled in by the user.
type ResultDraft struct {
	BrewprintID     string
	DurationSeconds int
}

func (s *Session) ResultDraft() ResultDraft {
	return ResultDraft{
		BrewprintID:     s.brewprint.ID,
		DurationSeconds: s.timer.Elapsed(),
	}
}
