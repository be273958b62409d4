package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

func openTemp(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestMetrics(t *testing.T) {
	s := engine.CreateInitialGameState()
	s.Resources.Food = 7.5

	row := Metrics("run", s)
	assert.Equal(t, TickRow{RunID: "run", Tick: 0, Food: 7.5, AssignedTotal: 10, Discovered: 3}, row)
}

func TestRecordAndSummarize(t *testing.T) {
	r := openTemp(t)

	runID, err := r.StartRun("default", time.Unix(1700000000, 0))
	require.NoError(t, err)

	// one thinker too many: food drains until the shortage pause
	s := engine.CreateInitialGameState()
	s.Resources.Food = 3
	for i := 0; i < 3; i++ {
		s, err = engine.ReassignWorker(s, models.CardFoodGathering, engine.Remove)
		require.NoError(t, err)
		s, err = engine.ReassignWorker(s, models.CardThinkingL1, engine.Add)
		require.NoError(t, err)
	}
	for i := 0; i < 6; i++ {
		res, err := engine.Step(s)
		require.NoError(t, err)
		s = res.State
		require.NoError(t, r.RecordTick(runID, s))
	}

	rows, err := r.Ticks(runID)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, 1, rows[0].Tick)
	assert.InDelta(t, 1.4, rows[0].Food, 1e-9)
	assert.Equal(t, 3.0, rows[0].ThoughtsTotal)
	assert.True(t, rows[2].Paused)

	sum, err := r.Summary(runID)
	require.NoError(t, err)
	assert.Equal(t, 6, sum.Ticks)
	assert.Zero(t, sum.MinFood)
	assert.InDelta(t, 1.4, sum.MaxFood, 1e-9)
	assert.Equal(t, 5, sum.PausedTicks)
	assert.Equal(t, 1, sum.Pauses)
}

func TestRecordTickReplaces(t *testing.T) {
	r := openTemp(t)
	runID, err := r.StartRun("hard", time.Now())
	require.NoError(t, err)

	s := engine.CreateInitialGameState()
	require.NoError(t, r.RecordTick(runID, s))
	s.Resources.Food = 42
	require.NoError(t, r.RecordTick(runID, s))

	rows, err := r.Ticks(runID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 42.0, rows[0].Food)
}

func TestSummaryOfEmptyRun(t *testing.T) {
	r := openTemp(t)
	runID, err := r.StartRun("casual", time.Now())
	require.NoError(t, err)

	sum, err := r.Summary(runID)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}

func TestRunsNewestFirst(t *testing.T) {
	r := openTemp(t)
	older, err := r.StartRun("default", time.Unix(100, 0))
	require.NoError(t, err)
	newer, err := r.StartRun("hard", time.Unix(200, 0))
	require.NoError(t, err)

	runs, err := r.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer, runs[0].ID)
	assert.Equal(t, older, runs[1].ID)
	assert.Equal(t, time.Unix(200, 0), runs[0].Started())
}
