// Package session owns a running game. A single goroutine holds the only
// mutable reference to the state; ticks and player commands are serialized
// through it and every change is published as a Frame.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

var (
	// ErrClosed is returned by commands sent after Run has returned
	ErrClosed = errors.New("session closed")
	// ErrRunning is returned by a second call to Run
	ErrRunning = errors.New("session already running")
)

// Options configures a session
type Options struct {
	// TickInterval drives automatic ticks. Zero disables the ticker so the
	// caller advances time with Tick.
	TickInterval time.Duration
	// Engine applies the reducer rules; nil means the default rules
	Engine *engine.Engine
	Logger *slog.Logger
	// FrameBuffer is the capacity of the frame channel (default 1)
	FrameBuffer int
	// CheckInvariants validates the state after every change and logs violations
	CheckInvariants bool
	// OnTick is called from the session goroutine after every tick
	OnTick func(*models.GameState)
}

// Frame is a published view of the state after a tick or a command
type Frame struct {
	SessionID     uuid.UUID
	State         *models.GameState
	Notifications []engine.Notification
}

type command struct {
	action   engine.Action
	tick     bool
	snapshot bool
	reply    chan reply
}

type reply struct {
	frame Frame
	err   error
}

// Session serializes access to one game
type Session struct {
	id   uuid.UUID
	opts Options
	eng  *engine.Engine
	log  *slog.Logger

	state   *models.GameState
	backlog *engine.NotificationQueue

	cmds    chan command
	frames  chan Frame
	done    chan struct{}
	running atomic.Bool
}

// New creates a session around an initial state. The session takes ownership
// of the state; callers must not modify it afterwards.
func New(state *models.GameState, opts Options) *Session {
	if opts.Engine == nil {
		opts.Engine = engine.New(models.DefaultRules())
	}
	if opts.FrameBuffer <= 0 {
		opts.FrameBuffer = 1
	}
	id := uuid.New()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		id:      id,
		opts:    opts,
		eng:     opts.Engine,
		log:     log.With("session", id.String()),
		state:   state,
		backlog: engine.NewNotificationQueue(),
		cmds:    make(chan command),
		frames:  make(chan Frame, opts.FrameBuffer),
		done:    make(chan struct{}),
	}
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Frames returns the frame channel. When the reader lags, older frames are
// replaced by newer ones and their notifications carried over. The channel is
// closed when Run returns.
func (s *Session) Frames() <-chan Frame {
	return s.frames
}

// Done is closed when Run returns
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run processes ticks and commands until ctx is cancelled. Call in a goroutine.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(s.frames)
	defer close(s.done)

	var tickC <-chan time.Time
	if s.opts.TickInterval > 0 {
		ticker := time.NewTicker(s.opts.TickInterval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	s.log.Info("session started", "interval", s.opts.TickInterval, "tick", s.state.Tick)
	s.publish(s.frame())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session stopped", "tick", s.state.Tick)
			return nil
		case <-tickC:
			if _, err := s.tick(); err != nil {
				s.log.Error("tick failed", "error", err)
			}
		case cmd := <-s.cmds:
			cmd.reply <- s.handle(cmd)
		}
	}
}

func (s *Session) handle(cmd command) reply {
	switch {
	case cmd.snapshot:
		return reply{frame: Frame{SessionID: s.id, State: s.state.Clone()}}
	case cmd.tick:
		f, err := s.tick()
		return reply{frame: f, err: err}
	default:
		f, err := s.apply(cmd.action)
		return reply{frame: f, err: err}
	}
}

func (s *Session) tick() (Frame, error) {
	res, err := s.eng.Step(s.state)
	if err != nil {
		return s.frame(), err
	}
	s.state = res.State
	for _, n := range res.Notifications {
		s.log.Info("notification", "tick", n.Tick, "kind", n.Kind.String(), "card", n.CardID, "message", n.Message)
		s.backlog.Push(n)
	}
	s.log.Debug("tick", "tick", s.state.Tick, "food", s.state.Resources.Food, "paused", s.state.IsPaused)

	s.verify()
	if s.opts.OnTick != nil {
		s.opts.OnTick(s.state)
	}

	f := s.frame()
	s.publish(f)
	return f, nil
}

func (s *Session) apply(a engine.Action) (Frame, error) {
	next, err := a.Apply(s.state)
	if err != nil {
		s.log.Warn("action failed", "action", a.Description(), "error", err)
		return s.frame(), err
	}
	if next == s.state {
		s.log.Info("action had no effect", "action", a.Description())
		s.backlog.Push(engine.Notification{
			Tick:    s.state.Tick,
			Kind:    engine.NoteRejected,
			Message: "Nothing happened: " + a.Description(),
		})
	}
	s.state = next

	s.verify()
	f := s.frame()
	s.publish(f)
	return f, nil
}

func (s *Session) verify() {
	if !s.opts.CheckInvariants {
		return
	}
	if err := engine.CheckInvariants(s.state); err != nil {
		s.log.Error("invariant violated", "tick", s.state.Tick, "error", err)
	}
}

// frame drains the notification backlog into a new frame
func (s *Session) frame() Frame {
	return Frame{
		SessionID:     s.id,
		State:         s.state.Clone(),
		Notifications: s.backlog.Drain(),
	}
}

// publish never blocks: when the buffer is full the oldest frame is dropped
// and its notifications move to the new one
func (s *Session) publish(f Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}
		select {
		case old := <-s.frames:
			f.Notifications = append(old.Notifications, f.Notifications...)
		default:
		}
	}
}
