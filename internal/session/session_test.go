package session

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// start runs a manually ticked session until the test ends
func start(t *testing.T, s *models.GameState, opts Options) *Session {
	t.Helper()
	opts.Logger = quietLogger()
	opts.CheckInvariants = true
	sess := New(s, opts)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errc)
	})
	return sess
}

func TestCommandsApplyInOrder(t *testing.T) {
	ctx := context.Background()
	sess := start(t, engine.CreateInitialGameState(), Options{})

	_, err := sess.Reassign(ctx, models.CardFoodGathering, engine.Remove)
	require.NoError(t, err)
	f, err := sess.Reassign(ctx, models.CardThinkingL1, engine.Add)
	require.NoError(t, err)

	assert.Equal(t, sess.ID(), f.SessionID)
	assert.Equal(t, 1, f.State.Cards[models.CardThinkingL1].AssignedWorkers[models.Level1])

	snap, err := sess.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, snap.Cards[models.CardFoodGathering].AssignedWorkers[models.Level1])
}

func TestTickDeliversNotifications(t *testing.T) {
	ctx := context.Background()
	s := engine.CreateInitialGameState()
	s.Resources.Food = 100
	sess := start(t, s, Options{})

	for i := 0; i < 5; i++ {
		_, err := sess.Reassign(ctx, models.CardFoodGathering, engine.Remove)
		require.NoError(t, err)
		_, err = sess.Reassign(ctx, models.CardThinkingL1, engine.Add)
		require.NoError(t, err)
	}
	_, err := sess.Focus(ctx, models.CardHunting)
	require.NoError(t, err)

	f, err := sess.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.State.Tick)
	require.Len(t, f.Notifications, 1)
	assert.Equal(t, engine.NoteImagined, f.Notifications[0].Kind)
	assert.Equal(t, models.Imagined, f.State.Cards[models.CardHunting].State)
}

func TestNoOpCommandIsReported(t *testing.T) {
	sess := start(t, engine.CreateInitialGameState(), Options{})

	f, err := sess.StartResearch(context.Background(), models.CardHunting)
	require.NoError(t, err)
	require.Len(t, f.Notifications, 1)
	assert.Equal(t, engine.NoteRejected, f.Notifications[0].Kind)
	assert.Contains(t, f.Notifications[0].Message, "research hunting")
}

func TestUnknownCardIsAnError(t *testing.T) {
	sess := start(t, engine.CreateInitialGameState(), Options{})

	_, err := sess.Reassign(context.Background(), "wheel", engine.Add)
	assert.ErrorIs(t, err, engine.ErrUnknownCard)
}

func TestFramesLatestWins(t *testing.T) {
	ctx := context.Background()
	s := engine.CreateInitialGameState()
	s.Resources.Food = 100
	sess := start(t, s, Options{})

	_, err := sess.TogglePause(ctx)
	require.NoError(t, err)
	_, err = sess.TogglePause(ctx)
	require.NoError(t, err)
	_, err = sess.StartResearch(ctx, models.CardHunting)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := sess.Tick(ctx)
		require.NoError(t, err)
	}

	select {
	case f := <-sess.Frames():
		assert.Equal(t, 3, f.State.Tick)
		require.Len(t, f.Notifications, 1, "notifications of dropped frames are carried over")
		assert.Equal(t, engine.NoteRejected, f.Notifications[0].Kind)
	default:
		t.Fatal("no frame published")
	}
}

func TestTickerDrivesTicks(t *testing.T) {
	s := engine.CreateInitialGameState()
	s.Resources.Food = 1000

	var observed atomic.Int64
	sess := start(t, s, Options{
		TickInterval: 5 * time.Millisecond,
		OnTick:       func(gs *models.GameState) { observed.Store(int64(gs.Tick)) },
	})

	assert.Eventually(t, func() bool {
		snap, err := sess.Snapshot(context.Background())
		return err == nil && snap.Tick >= 3
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, observed.Load(), int64(3))
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	sess := start(t, engine.CreateInitialGameState(), Options{})

	snap, err := sess.Snapshot(ctx)
	require.NoError(t, err)
	snap.Resources.Food = 1e6
	snap.Cards[models.CardHunting].State = models.Discovered

	again, err := sess.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Resources.Food)
	assert.Equal(t, models.Unthoughtof, again.Cards[models.CardHunting].State)
}

func TestClosedSession(t *testing.T) {
	sess := New(engine.CreateInitialGameState(), Options{Logger: quietLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(ctx) }()

	_, err := sess.Tick(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, sess.Run(context.Background()), ErrRunning)

	cancel()
	require.NoError(t, <-errc)
	<-sess.Done()

	_, err = sess.Tick(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = sess.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	for range sess.Frames() {
	}
}

func TestCommandHonoursContext(t *testing.T) {
	sess := New(engine.CreateInitialGameState(), Options{Logger: quietLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := sess.Tick(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
