package brew

// Phase is one stage of a guided pour-over session. Phases only move
// forward; the sole way back to PhasePreparation is an explicit reset.
type Phase int

const (
	PhasePreparation Phase = iota
	PhaseBlooming
	PhasePouring
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePreparation:
		return "preparation"
	case PhaseBlooming:
		return "blooming"
	case PhasePouring:
		return "pouring"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Info carries the display metadata for a phase. TargetSeconds is advisory
// only: it is shown next to the timer but never triggers a transition.
type Info struct {
	Title         string
	Description   string
	TargetSeconds int
}

var phaseInfo = map[Phase]Info{
	PhasePreparation: {
		Title:       "Preparation",
		Description: "Rinse the filter, grind the coffee, heat the water.",
	},
	PhaseBlooming: {
		Title:         "Blooming",
		Description:   "Wet the grounds with twice their weight in water and let them degas.",
		TargetSeconds: 45,
	},
	PhasePouring: {
		Title:         "Pouring",
		Description:   "Pour the remaining water in slow, even spirals.",
		TargetSeconds: 150,
	},
	PhaseFinished: {
		Title:       "Finished",
		Description: "Let it drain, then taste and record the result.",
	},
}

func (p Phase) Info() Info {
	return phaseInfo[p]
}

// Next returns the following phase. ok is false at PhaseFinished, which has
// no forward transition.
func (p Phase) Next() (Phase, bool) {
	if p >= PhaseFinished {
		return p, false
	}
	return p + 1, true
}
