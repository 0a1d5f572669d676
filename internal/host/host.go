// Package host implements the scripted improv host: the automated game
// master that opens the show, announces each round's scenario, reacts to
// player performances, and wraps up after the final round.
package host

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Identity is the participant identity the host speaks under. The agent-
// prefix is what classifies its lines as remote in the transcript.
const Identity = "agent-host"

// DisplayName is shown next to host lines in the transcript.
const DisplayName = "Host"

// Host is the per-session game-master state machine. It is driven
// synchronously by the session actor and is not safe for concurrent use.
type Host struct {
	deck        Deck
	totalRounds int
	rng         *rand.Rand

	order  []int // shuffled scenario indexes
	round  int   // 0 = show not started
	done   bool
	opened bool
}

// New builds a host for one session. seed fixes the scenario order; pass
// a time-derived value in production and a constant in tests.
func New(deck Deck, totalRounds int, seed int64) *Host {
	h := &Host{
		deck:        deck,
		totalRounds: totalRounds,
		rng:         rand.New(rand.NewSource(seed)),
	}
	h.shuffle()
	return h
}

func (h *Host) shuffle() {
	h.order = h.rng.Perm(len(h.deck.Scenarios))
}

// Round reports how many rounds have been announced so far.
func (h *Host) Round() int { return h.round }

// Done reports whether the show has wrapped up.
func (h *Host) Done() bool { return h.done }

// Open returns the opening line the first time it is called and nil after
// that, so a session-start signal can never double the welcome.
func (h *Host) Open() []string {
	if h.opened {
		return nil
	}
	h.opened = true
	return []string{h.deck.Opening}
}

// OnPlayerLine advances the show in response to one player utterance and
// returns the host lines to speak, in order. Before the first round it
// announces round one; mid-game it gives feedback and either announces the
// next round or wraps up; after the wrap-up it stays quiet.
func (h *Host) OnPlayerLine() []string {
	if h.done {
		return nil
	}
	if h.round == 0 {
		h.round = 1
		return []string{h.announce(1)}
	}

	lines := []string{h.feedbackLine()}
	if h.round < h.totalRounds {
		h.round++
		lines = append(lines, h.announce(h.round))
	} else {
		h.done = true
		lines = append(lines, h.deck.WrapUp)
	}
	return lines
}

// Reset rewinds the show to the beginning with a fresh scenario order.
// The next Open call returns the opening line again.
func (h *Host) Reset() {
	h.round = 0
	h.done = false
	h.opened = false
	h.shuffle()
}

func (h *Host) announce(round int) string {
	idx := h.order[(round-1)%len(h.order)]
	return fmt.Sprintf("Round %d: %s. Go!", round, h.deck.Scenarios[idx])
}

func (h *Host) feedbackLine() string {
	if len(h.deck.Feedback) == 0 {
		return "Nice work!"
	}
	return h.deck.Feedback[h.rng.Intn(len(h.deck.Feedback))]
}

// AgentPayload is the structured data frame broadcast alongside each host
// line, so clients that understand it do not need the text heuristic.
type AgentPayload struct {
	Type string      `json:"type"`
	Role string      `json:"role"`
	Text string      `json:"text"`
	Meta PayloadMeta `json:"meta"`
}

type PayloadMeta struct {
	Round       int  `json:"round"`
	TotalRounds int  `json:"total_rounds"`
	Done        bool `json:"done"`
}

// Payload marshals the structured frame for one host line.
func (h *Host) Payload(text string) []byte {
	raw, _ := json.Marshal(AgentPayload{
		Type: "transcript",
		Role: "agent",
		Text: text,
		Meta: PayloadMeta{Round: h.round, TotalRounds: h.totalRounds, Done: h.done},
	})
	return raw
}
