package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings is the runtime configuration of the match server, loaded from
// file, environment and command line flags.
type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Master   MasterSettings   `mapstructure:"master"`
	Database DatabaseSettings `mapstructure:"database"`
	Metrics  MetricsSettings  `mapstructure:"metrics"`
	Tuning   TuningSettings   `mapstructure:"tuning"`
}

type ServerSettings struct {
	Name       string `mapstructure:"name" validate:"required"`
	Port       uint   `mapstructure:"port" validate:"required,min=1,max=65535"`
	TickRate   int    `mapstructure:"tick_rate" validate:"min=10,max=240"`
	Version    string `mapstructure:"version"`
	Region     string `mapstructure:"region"`
	Address    string `mapstructure:"address"` // Public address advertised to the master
	Seed       int64  `mapstructure:"seed"`
	Difficulty string `mapstructure:"difficulty" validate:"omitempty,oneof=easy normal hard"`
	Pitch      string `mapstructure:"pitch"`
	Formation  string `mapstructure:"formation"`
	ProfileApp string `mapstructure:"profile_app"` // gdata app name for the saved scoreboard
}

type MasterSettings struct {
	URL               string        `mapstructure:"url" validate:"omitempty,url"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"oneof=sqlite postgres"`
	Path string `mapstructure:"path"` // SQLite file or ":memory:"
	URL  string `mapstructure:"url"`  // Postgres DSN
}

type MetricsSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// TuningSettings overrides gameplay tunables. Zero values keep the defaults.
type TuningSettings struct {
	CheckInterval     float64 `mapstructure:"check_interval" validate:"gte=0"`
	MinSwitchCooldown float64 `mapstructure:"min_switch_cooldown" validate:"gte=0"`
	Hysteresis        float64 `mapstructure:"hysteresis" validate:"gte=0"`
	DribbleRange      float64 `mapstructure:"dribble_range" validate:"gte=0"`
	MinKickPower      float64 `mapstructure:"min_kick_power" validate:"gte=0"`
	MaxKickPower      float64 `mapstructure:"max_kick_power" validate:"gte=0"`
	ChargeTime        float64 `mapstructure:"charge_time" validate:"gte=0"`
	KickCurve         string  `mapstructure:"kick_curve"`
	TackleForce       float64 `mapstructure:"tackle_force" validate:"gte=0"`
	MaxSteps          int     `mapstructure:"max_steps" validate:"gte=0"`
}

// flagKeys maps command line flag names to settings keys.
var flagKeys = map[string]string{
	"name":       "server.name",
	"port":       "server.port",
	"tickrate":   "server.tick_rate",
	"version":    "server.version",
	"region":     "server.region",
	"address":    "server.address",
	"seed":       "server.seed",
	"difficulty": "server.difficulty",
	"pitch":      "server.pitch",
	"formation":  "server.formation",
	"master":     "master.url",
	"db":         "database.path",
	"metrics":    "metrics.address",
}

func registerDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "Kickoff Server")
	v.SetDefault("server.port", 7373)
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.version", "")
	v.SetDefault("server.region", "")
	v.SetDefault("server.address", "")
	v.SetDefault("server.seed", Bot.Seed)
	v.SetDefault("server.difficulty", "normal")
	v.SetDefault("server.pitch", Field.PitchFile)
	v.SetDefault("server.formation", Formation.Preset)
	v.SetDefault("server.profile_app", "kickoff")
	v.SetDefault("master.url", "")
	v.SetDefault("master.heartbeat_interval", time.Duration(Network.HeartbeatSecs)*time.Second)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "kickoff.db")
	v.SetDefault("database.url", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9100")
	for _, key := range []string{
		"check_interval", "min_switch_cooldown", "hysteresis", "dribble_range",
		"min_kick_power", "max_kick_power", "charge_time", "tackle_force",
	} {
		v.SetDefault("tuning."+key, 0.0)
	}
	v.SetDefault("tuning.kick_curve", "")
	v.SetDefault("tuning.max_steps", 0)
}

// LoadSettings loads settings with priority flags > environment (KICKOFF_*)
// > config file > defaults. A missing config file is not an error.
func LoadSettings(configPath string, flags *pflag.FlagSet) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	registerDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("kickoff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("KICKOFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := ValidateSettings(&s); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// ValidateSettings checks struct tags and cross-field rules.
func ValidateSettings(s *Settings) error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", e.Field(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("validation failed:\n  %s", strings.Join(msgs, "\n  "))
		}
		return err
	}
	if s.Tuning.MaxKickPower > 0 && s.Tuning.MinKickPower > s.Tuning.MaxKickPower {
		return fmt.Errorf("tuning.min_kick_power %.2f exceeds tuning.max_kick_power %.2f",
			s.Tuning.MinKickPower, s.Tuning.MaxKickPower)
	}
	if s.Database.Type == "postgres" && s.Database.URL == "" {
		return fmt.Errorf("database.url required for postgres")
	}
	return nil
}

// ApplyTuning copies the non-zero overrides into the global tunables.
func ApplyTuning(t TuningSettings) {
	if t.CheckInterval > 0 {
		Arbiter.CheckInterval = t.CheckInterval
	}
	if t.MinSwitchCooldown > 0 {
		Arbiter.MinSwitchCooldown = t.MinSwitchCooldown
	}
	if t.Hysteresis > 0 {
		Arbiter.Hysteresis = t.Hysteresis
	}
	if t.DribbleRange > 0 {
		Dribble.Range = t.DribbleRange
	}
	if t.MinKickPower > 0 {
		Kick.MinPower = t.MinKickPower
	}
	if t.MaxKickPower > 0 {
		Kick.MaxPower = t.MaxKickPower
	}
	if t.ChargeTime > 0 {
		Kick.ChargeTime = t.ChargeTime
	}
	if t.KickCurve != "" {
		Kick.Curve = t.KickCurve
	}
	if t.TackleForce > 0 {
		Tackle.Force = t.TackleForce
	}
	if t.MaxSteps > 0 {
		Episode.MaxEnvironmentSteps = t.MaxSteps
	}
}
