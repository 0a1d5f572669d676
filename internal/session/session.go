// Package session implements the per-room actor. One goroutine owns the
// transcript, the version counter, the connected clients, the scripted
// host, and the active flag; everything reaches it through typed messages
// on its inbox, so the transcript needs no locking.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/host"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/ingest"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/phase"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/store"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

type Msg interface{ isSessionMsg() }

// Join registers a client and immediately delivers the current snapshot.
// Joining an ended session inside the linger window reactivates it.
type Join struct {
	ClientID    string
	DisplayName string
	Outbox      chan Event
}

type Leave struct{ ClientID string }

// Start is the welcome-flow signal. It is latched: only the first Start
// makes the host open the show.
type Start struct{ DisplayName string }

// Transcription carries one batch of speech-to-text segments.
type Transcription struct {
	Segments    []ingest.Segment
	DisplayName string
}

// Chat carries one typed chat message.
type Chat struct {
	Participant string
	DisplayName string
	Text        string
}

// Data carries one raw data-channel payload, parsed leniently.
type Data struct{ Raw []byte }

// Restart clears the transcript, broadcasts one restart frame, and has
// the host re-open the show.
type Restart struct{}

// End marks the session logically over and schedules the deferred
// teardown check.
type End struct{}

type GetView struct{ Reply chan View }

type Shutdown struct{}

type teardownCheck struct{}

func (Join) isSessionMsg()          {}
func (Leave) isSessionMsg()         {}
func (Start) isSessionMsg()         {}
func (Transcription) isSessionMsg() {}
func (Chat) isSessionMsg()          {}
func (Data) isSessionMsg()          {}
func (Restart) isSessionMsg()       {}
func (End) isSessionMsg()           {}
func (GetView) isSessionMsg()       {}
func (Shutdown) isSessionMsg()      {}
func (teardownCheck) isSessionMsg() {}

// Event is what the session pushes to client outboxes.
type Event interface{ isSessionEvent() }

// SnapshotEvent is the full transcript view after an accepted change.
// LastOrigin is the origin of the newest entry; clients autoscroll only
// when it is local, so host lines never yank the scroll position.
type SnapshotEvent struct {
	Version    int
	Entries    []transcript.Entry
	Status     phase.Status
	LastOrigin transcript.Origin
}

// RestartEvent is the {"type":"restart"} frame, sent once per restart.
type RestartEvent struct{}

// AgentEvent is the structured host payload accompanying each host line.
type AgentEvent struct{ Raw []byte }

func (SnapshotEvent) isSessionEvent() {}
func (RestartEvent) isSessionEvent()  {}
func (AgentEvent) isSessionEvent()    {}

// View is a test-only reflection of internal state, read without races.
type View struct {
	Version    int
	NumClients int
	Entries    []transcript.Entry
	Status     phase.Status
	Active     bool
	Started    bool
	HostRound  int
	HostDone   bool
}

// Options configures a session; the hub shares one Options across rooms.
type Options struct {
	Logger       *zap.Logger
	History      store.HistoryStore
	Deck         host.Deck
	TotalRounds  int
	SupportsChat bool

	// Linger is how long after End the transport stays up. The teardown
	// check re-reads the active flag when it fires, so any reactivation
	// inside the window wins.
	Linger time.Duration

	// HostSeed fixes the scenario order when non-zero.
	HostSeed int64
}

type Session struct {
	inbox   chan Msg
	code    string
	log     *transcript.Log
	version int
	clients map[string]chan Event
	active  bool
	started bool
	h       *host.Host
	opts    Options
	onClose func(code string)
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// New starts a session actor. onClose is called (from the actor goroutine)
// after teardown so the owner can drop its reference.
func New(parent context.Context, code string, opts Options, onClose func(code string)) *Session {
	ctx, cancel := context.WithCancel(parent)
	seed := opts.HostSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		inbox:   make(chan Msg, 64),
		code:    code,
		log:     transcript.NewLog(),
		clients: make(map[string]chan Event),
		active:  true,
		h:       host.New(opts.Deck, opts.TotalRounds, seed),
		opts:    opts,
		onClose: onClose,
		logger:  logger.With(zap.String("room", code)),
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has torn down; senders use it to avoid
// blocking on a dead inbox.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.teardown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.active = true
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.snapshot()

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					delete(s.clients, msg.ClientID)
					close(ch)
				}

			case Start:
				s.active = true
				if !s.started {
					s.started = true
					s.speakHost(s.h.Open())
				}

			case Transcription:
				s.ingestSegments(msg)

			case Chat:
				if !s.opts.SupportsChat {
					break
				}
				e, ok := ingest.NormalizeChat(msg.Text, msg.Participant, msg.DisplayName)
				if !ok {
					break
				}
				s.accept(e)
				s.broadcast(s.snapshot())
				if e.Origin == transcript.OriginLocal {
					s.speakHost(s.h.OnPlayerLine())
				}

			case Data:
				e, ok := ingest.ParseData(msg.Raw)
				if !ok {
					// Malformed payloads are dropped by design; the worst
					// case is a missing line.
					break
				}
				s.accept(e)
				s.broadcast(s.snapshot())
				if e.Origin == transcript.OriginLocal {
					s.speakHost(s.h.OnPlayerLine())
				}

			case Restart:
				s.restart()

			case End:
				s.active = false
				s.scheduleTeardownCheck()

			case teardownCheck:
				// The flag is read now, not when End arrived. A Join,
				// Start, or Restart inside the window keeps the room up.
				if !s.active {
					s.teardown()
					return
				}

			case GetView:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					Entries:    s.log.Entries(),
					Status:     s.status(),
					Active:     s.active,
					Started:    s.started,
					HostRound:  s.h.Round(),
					HostDone:   s.h.Done(),
				}

			case Shutdown:
				s.teardown()
				return
			}
		}
	}
}

func (s *Session) ingestSegments(msg Transcription) {
	var acceptedLocal, accepted bool
	for _, seg := range msg.Segments {
		e, ok := ingest.NormalizeSegment(seg, msg.DisplayName)
		if !ok {
			continue
		}
		if !s.log.AppendSegment(seg.ID, e) {
			continue
		}
		s.version++
		accepted = true
		if e.Origin == transcript.OriginLocal {
			acceptedLocal = true
		}
	}
	if !accepted {
		return
	}
	s.broadcast(s.snapshot())
	if acceptedLocal {
		s.speakHost(s.h.OnPlayerLine())
	}
}

// accept appends a non-segment entry and bumps the version.
func (s *Session) accept(e transcript.Entry) {
	s.log.Append(e)
	s.version++
}

// speakHost appends each host line, pushes its structured payload, and
// broadcasts the resulting snapshot. No-op for an empty line list.
func (s *Session) speakHost(lines []string) {
	if len(lines) == 0 {
		return
	}
	for _, line := range lines {
		s.accept(transcript.New(transcript.OriginRemote, line, host.DisplayName))
		s.broadcast(AgentEvent{Raw: s.h.Payload(line)})
	}
	s.broadcast(s.snapshot())
}

func (s *Session) restart() {
	s.log.Clear()
	s.h.Reset()
	s.active = true
	s.version++

	// Exactly one restart frame per client, success or not; a dropped
	// send costs the frame, never the restart.
	s.broadcast(RestartEvent{})
	s.broadcast(s.snapshot())

	s.speakHost(s.h.Open())
}

func (s *Session) scheduleTeardownCheck() {
	linger := s.opts.Linger
	time.AfterFunc(linger, func() {
		select {
		case s.inbox <- teardownCheck{}:
		case <-s.ctx.Done():
		}
	})
}

func (s *Session) status() phase.Status {
	return phase.Detect(s.log.Entries(), s.opts.TotalRounds)
}

func (s *Session) snapshot() SnapshotEvent {
	snap := SnapshotEvent{
		Version: s.version,
		Entries: s.log.Entries(),
		Status:  s.status(),
	}
	if last, ok := s.log.Last(); ok {
		snap.LastOrigin = last.Origin
	}
	return snap
}

func (s *Session) broadcast(ev Event) {
	for id, ch := range s.clients {
		select {
		case ch <- ev:
		default:
			// Slow or stuck client: drop it rather than stall the room.
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) teardown() {
	if s.opts.History != nil && s.log.Len() > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rec := store.SessionRecord{Code: s.code, Entries: s.log.Entries()}
		if err := s.opts.History.SaveSession(ctx, rec); err != nil {
			s.logger.Warn("failed to archive session transcript", zap.Error(err))
		}
		cancel()
	}
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.log.Clear()
	s.cancel()
	if s.onClose != nil {
		s.onClose(s.code)
	}
}
