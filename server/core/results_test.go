package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/server/store"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	saved []store.Episode
	err   error
}

func (r *recordingSink) SaveEpisode(_ context.Context, e store.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, e)
	return r.err
}

func (r *recordingSink) numbers() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.saved))
	for _, e := range r.saved {
		out = append(out, e.Number)
	}
	return out
}

func goal(number int, scorer netconfig.Team) soccer.EpisodeResult {
	r := soccer.EpisodeResult{Number: number, Reason: soccer.EndGoal, Scorer: scorer, Steps: 40}
	r.Rewards[scorer] = 0.5
	r.Rewards[scorer.Opponent()] = -1
	return r
}

func TestResultLog_RecentNewestFirst(t *testing.T) {
	l := NewResultLog(3)
	for i := 1; i <= 5; i++ {
		l.Add("m", soccer.EpisodeResult{Number: i, Reason: soccer.EndTimeout})
	}

	recent := l.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, 5, recent[0].Number)
	assert.Equal(t, 3, recent[2].Number)

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(10), 3)
}

func TestResultLog_ConvertsResult(t *testing.T) {
	l := NewResultLog(5)
	l.Add("m-1", goal(2, netconfig.TeamPurple))
	l.Add("m-1", soccer.EpisodeResult{Number: 3, Reason: soccer.EndTimeout})

	recent := l.Recent(2)
	timeout, scored := recent[0], recent[1]

	assert.Equal(t, "m-1", scored.MatchID)
	assert.Equal(t, "goal", scored.Reason)
	assert.Equal(t, netconfig.TeamPurple.String(), scored.Scorer)
	assert.Equal(t, 0.5, scored.PurpleReward)
	assert.Equal(t, -1.0, scored.BlueReward)
	assert.False(t, scored.EndedAt.IsZero())

	assert.Equal(t, "timeout", timeout.Reason)
	assert.Empty(t, timeout.Scorer)
}

func TestResultLog_RunWritesAndFlushes(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("disk full")}
	l := NewResultLog(10, ok, failing)

	// Queued before Run starts, written by the flush after cancel at the latest.
	for i := 1; i <= 3; i++ {
		l.Add("m", goal(i, netconfig.TeamBlue))
	}

	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	cancel()
	l.Wait()

	assert.Equal(t, []int{1, 2, 3}, ok.numbers())
	assert.Equal(t, []int{1, 2, 3}, failing.numbers())
}
