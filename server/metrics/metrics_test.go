package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *MatchCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMatchCollector_Counts(t *testing.T) {
	c, err := NewMatchCollector()
	require.NoError(t, err)

	c.RecordKick(netconfig.TeamBlue, "kick", 30)
	c.RecordKick(netconfig.TeamBlue, "kick", 45)
	c.RecordKick(netconfig.TeamPurple, "pass", 6)
	c.RecordGoal(netconfig.TeamPurple)
	c.RecordEpisode("goal", 1200)
	c.RecordTackle(netconfig.TeamBlue)
	c.RecordControlSwitch(netconfig.TeamPurple)
	c.InputDropped("rate")
	c.SetPlayers(2)

	body := scrape(t, c)
	assert.Contains(t, body, `kickoff_match_kicks_total{kind="kick",team="blue"} 2`)
	assert.Contains(t, body, `kickoff_match_kicks_total{kind="pass",team="purple"} 1`)
	assert.Contains(t, body, `kickoff_match_goals_total{team="purple"} 1`)
	assert.Contains(t, body, `kickoff_match_episodes_total{reason="goal"} 1`)
	assert.Contains(t, body, `kickoff_match_tackles_total{team="blue"} 1`)
	assert.Contains(t, body, `kickoff_match_control_switches_total{team="purple"} 1`)
	assert.Contains(t, body, `kickoff_match_inputs_dropped_total{reason="rate"} 1`)
	assert.Contains(t, body, `kickoff_match_connected_players 2`)
	assert.Contains(t, body, `kickoff_match_episode_steps_count{reason="goal"} 1`)
}

func TestMatchCollector_SeparateRegistries(t *testing.T) {
	a, err := NewMatchCollector()
	require.NoError(t, err)
	b, err := NewMatchCollector()
	require.NoError(t, err)

	a.RecordGoal(netconfig.TeamBlue)
	assert.NotContains(t, scrape(t, b), `kickoff_match_goals_total{team="blue"}`)
}
