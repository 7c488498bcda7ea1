package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Kickoff Server", s.Server.Name)
	assert.Equal(t, uint(7373), s.Server.Port)
	assert.Equal(t, 60, s.Server.TickRate)
	assert.Equal(t, "normal", s.Server.Difficulty)
	assert.Equal(t, "sqlite", s.Database.Type)
	assert.Equal(t, 30*time.Second, s.Master.HeartbeatInterval)
	assert.False(t, s.Metrics.Enabled)
}

func TestLoadSettings_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("KICKOFF_SERVER_PORT", "8123")
	t.Setenv("KICKOFF_SERVER_DIFFICULTY", "hard")

	s, err := LoadSettings("", nil)
	require.NoError(t, err)

	assert.Equal(t, uint(8123), s.Server.Port)
	assert.Equal(t, "hard", s.Server.Difficulty)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kickoff.yaml")
	body := []byte(`server:
  name: Friday Night Five
  tick_rate: 30
tuning:
  hysteresis: 2.0
  max_steps: 500
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	s, err := LoadSettings(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "Friday Night Five", s.Server.Name)
	assert.Equal(t, 30, s.Server.TickRate)
	assert.InDelta(t, 2.0, s.Tuning.Hysteresis, 1e-9)
	assert.Equal(t, 500, s.Tuning.MaxSteps)
}

func TestLoadSettings_FlagsWin(t *testing.T) {
	t.Setenv("KICKOFF_SERVER_PORT", "8123")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Uint("port", 7373, "")
	require.NoError(t, flags.Parse([]string{"--port", "9000"}))

	s, err := LoadSettings("", flags)
	require.NoError(t, err)
	assert.Equal(t, uint(9000), s.Server.Port)
}

func TestValidateSettings(t *testing.T) {
	valid := func() *Settings {
		return &Settings{
			Server:   ServerSettings{Name: "x", Port: 7373, TickRate: 60},
			Database: DatabaseSettings{Type: "sqlite"},
		}
	}

	require.NoError(t, ValidateSettings(valid()))

	s := valid()
	s.Server.Difficulty = "impossible"
	assert.Error(t, ValidateSettings(s))

	s = valid()
	s.Server.TickRate = 1
	assert.Error(t, ValidateSettings(s))

	s = valid()
	s.Tuning.MinKickPower = 60
	s.Tuning.MaxKickPower = 50
	assert.Error(t, ValidateSettings(s))

	s = valid()
	s.Database.Type = "postgres"
	assert.Error(t, ValidateSettings(s))
}

func TestApplyTuning(t *testing.T) {
	savedArbiter, savedKick, savedEpisode := Arbiter, Kick, Episode
	t.Cleanup(func() {
		Arbiter, Kick, Episode = savedArbiter, savedKick, savedEpisode
	})

	ApplyTuning(TuningSettings{Hysteresis: 2.5, MaxKickPower: 40, KickCurve: "inQuad", MaxSteps: 100})

	assert.InDelta(t, 2.5, Arbiter.Hysteresis, 1e-9)
	assert.InDelta(t, 0.15, Arbiter.CheckInterval, 1e-9)
	assert.InDelta(t, 40.0, Kick.MaxPower, 1e-9)
	assert.InDelta(t, 16.0, Kick.MinPower, 1e-9)
	assert.Equal(t, "inQuad", Kick.Curve)
	assert.Equal(t, 100, Episode.MaxEnvironmentSteps)
}

func TestBotCurrentFallsBackToNormal(t *testing.T) {
	b := BotConfigData{
		Difficulty:   BotDifficulty(99),
		Difficulties: Bot.Difficulties,
	}
	assert.Equal(t, Bot.Difficulties[BotDifficultyNormal], b.Current())
	assert.Equal(t, BotDifficultyHard, ParseBotDifficulty("hard"))
	assert.Equal(t, BotDifficultyNormal, ParseBotDifficulty("whatever"))
}
