// Package phase derives a coarse game-phase label from the transcript.
//
// The detection is a text heuristic over the host's phrasing. It is
// advisory only: it drives status display, never game flow.
package phase

import (
	"regexp"
	"strings"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

type Phase string

const (
	PhaseIntro      Phase = "intro"
	PhaseScenario   Phase = "scenario"
	PhasePerforming Phase = "performing"
	PhaseFeedback   Phase = "feedback"
	PhaseDone       Phase = "done"
)

func (p Phase) String() string { return string(p) }

// Status is the derived game position: the current phase and how many
// rounds have been announced so far, clamped to [0, totalRounds].
type Status struct {
	Phase Phase `json:"phase"`
	Round int   `json:"round"`
}

var roundMarker = regexp.MustCompile(`round \d`)

// Detect maps a transcript to a Status. Pure: same entries, same result.
func Detect(entries []transcript.Entry, totalRounds int) Status {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.ToLower(e.Text))
		b.WriteByte('\n')
	}
	all := b.String()

	announced := len(roundMarker.FindAllString(all, -1))
	round := announced
	if round > totalRounds {
		round = totalRounds
	}

	switch {
	case strings.Contains(all, "that wraps"),
		strings.Contains(all, "closing"),
		announced > totalRounds:
		return Status{Phase: PhaseDone, Round: round}

	case round > 0:
		// Mid-game: the newest entry decides the sub-phase.
		last := entries[len(entries)-1]
		switch {
		case strings.Contains(strings.ToLower(last.Text), "round"):
			return Status{Phase: PhaseScenario, Round: round}
		case last.Origin == transcript.OriginLocal:
			return Status{Phase: PhasePerforming, Round: round}
		default:
			return Status{Phase: PhaseFeedback, Round: round}
		}

	case strings.Contains(all, "welcome"), strings.Contains(all, "improv battle"):
		return Status{Phase: PhaseIntro, Round: round}

	default:
		return Status{Phase: PhaseIntro, Round: round}
	}
}
