package session

import (
	"context"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

func (s *Session) send(ctx context.Context, cmd command) (Frame, error) {
	cmd.reply = make(chan reply, 1)

	select {
	case s.cmds <- cmd:
	case <-s.done:
		return Frame{}, ErrClosed
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}

	r := <-cmd.reply
	return r.frame, r.err
}

// Do applies an action on the session goroutine and returns the frame it
// produced. The frame is also published on Frames.
func (s *Session) Do(ctx context.Context, a engine.Action) (Frame, error) {
	return s.send(ctx, command{action: a})
}

// Tick advances the game by one tick immediately
func (s *Session) Tick(ctx context.Context) (Frame, error) {
	return s.send(ctx, command{tick: true})
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot(ctx context.Context) (*models.GameState, error) {
	f, err := s.send(ctx, command{snapshot: true})
	if err != nil {
		return nil, err
	}
	return f.State, nil
}

// Reassign moves one worker onto or off a card
func (s *Session) Reassign(ctx context.Context, cardID string, action engine.WorkerAction) (Frame, error) {
	return s.Do(ctx, engine.AssignAction{CardID: cardID, Action: action})
}

// Focus toggles focus on a card whose prerequisites are all Discovered
func (s *Session) Focus(ctx context.Context, cardID string) (Frame, error) {
	return s.Do(ctx, engine.FocusAction{CardID: cardID, Gated: true})
}

// StartResearch makes an Imagined card the active research
func (s *Session) StartResearch(ctx context.Context, cardID string) (Frame, error) {
	return s.Do(ctx, engine.ResearchAction{CardID: cardID})
}

// TogglePause pauses or resumes resource production
func (s *Session) TogglePause(ctx context.Context) (Frame, error) {
	return s.Do(ctx, engine.PauseAction{})
}

// SetProtection switches food shortage protection
func (s *Session) SetProtection(ctx context.Context, on bool) (Frame, error) {
	return s.Do(ctx, engine.ProtectionAction{On: on})
}
