package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/automoto/kickoff/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems struct {
	data    map[string][]byte
	saveErr error
}

func (m *memItems) LoadItem(key string) ([]byte, error) { return m.data[key], nil }

func (m *memItems) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func TestScoreboard_AccumulatesAndReloads(t *testing.T) {
	items := &memItems{data: map[string][]byte{}}
	sb, err := newScoreboard(items)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sb.StartMatch())
	require.NoError(t, sb.SaveEpisode(ctx, store.Episode{Reason: "goal", Scorer: "blue", Steps: 300}))
	require.NoError(t, sb.SaveEpisode(ctx, store.Episode{Reason: "goal", Scorer: "purple", Steps: 120}))
	require.NoError(t, sb.SaveEpisode(ctx, store.Episode{Reason: "timeout", Steps: 25000}))

	got := sb.Totals()
	assert.Equal(t, Totals{
		Matches:     1,
		Episodes:    3,
		Timeouts:    1,
		BlueGoals:   1,
		PurpleGoals: 1,
		LongestGoal: 300,
		FastestGoal: 120,
	}, got)

	reloaded, err := newScoreboard(items)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded.Totals())
}

func TestScoreboard_CorruptSaveStartsFresh(t *testing.T) {
	items := &memItems{data: map[string][]byte{scoreboardItem: []byte("{not json")}}
	sb, err := newScoreboard(items)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, sb.Totals())
}

func TestScoreboard_SaveError(t *testing.T) {
	items := &memItems{data: map[string][]byte{}, saveErr: errors.New("disk full")}
	sb, err := newScoreboard(items)
	require.NoError(t, err)

	err = sb.SaveEpisode(context.Background(), store.Episode{Reason: "timeout"})
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, sb.Totals().Timeouts)
}
