// Package metrics exports match telemetry to Prometheus.
package metrics

import (
	"net/http"

	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "kickoff"
	subsystem = "match"
)

// MatchCollector records what happens on the pitch.
type MatchCollector struct {
	registry *prometheus.Registry

	players       prometheus.Gauge
	tickDuration  prometheus.Histogram
	inputsDropped *prometheus.CounterVec
	kicks         *prometheus.CounterVec
	kickPower     *prometheus.HistogramVec
	tackles       *prometheus.CounterVec
	controlSwitch *prometheus.CounterVec
	episodes      *prometheus.CounterVec
	episodeSteps  *prometheus.HistogramVec
	goals         *prometheus.CounterVec
}

// NewMatchCollector creates the collectors and registers them with a fresh
// registry.
func NewMatchCollector() (*MatchCollector, error) {
	c := &MatchCollector{
		registry: prometheus.NewRegistry(),

		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connected_players",
			Help:      "Humans currently seated",
		}),

		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one server tick",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05},
		}),

		inputsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "inputs_dropped_total",
			Help:      "Player inputs discarded before reaching the match",
		}, []string{"reason"}),

		kicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "kicks_total",
			Help:      "Balls kicked by team and kind",
		}, []string{"team", "kind"}),

		kickPower: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "kick_power",
			Help:      "Velocity change applied by a kick",
			Buckets:   []float64{4, 8, 16, 24, 32, 40, 50},
		}, []string{"kind"}),

		tackles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tackles_total",
			Help:      "Balls won by tackling, by the tackler's team",
		}, []string{"team"}),

		controlSwitch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "control_switches_total",
			Help:      "Human control handed to a different player",
		}, []string{"team"}),

		episodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "episodes_total",
			Help:      "Finished episodes by end reason",
		}, []string{"reason"}),

		episodeSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "episode_steps",
			Help:      "Physics steps an episode lasted",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 9),
		}, []string{"reason"}),

		goals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "goals_total",
			Help:      "Goals by scoring team",
		}, []string{"team"}),
	}

	for _, m := range []prometheus.Collector{
		c.players,
		c.tickDuration,
		c.inputsDropped,
		c.kicks,
		c.kickPower,
		c.tackles,
		c.controlSwitch,
		c.episodes,
		c.episodeSteps,
		c.goals,
	} {
		if err := c.registry.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry returns the registry the collectors live in.
func (c *MatchCollector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *MatchCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *MatchCollector) SetPlayers(n int) { c.players.Set(float64(n)) }

func (c *MatchCollector) InputDropped(reason string) {
	c.inputsDropped.WithLabelValues(reason).Inc()
}

func (c *MatchCollector) ObserveTick(seconds float64) { c.tickDuration.Observe(seconds) }

func (c *MatchCollector) RecordKick(team netconfig.Team, kind string, power float64) {
	c.kicks.WithLabelValues(team.String(), kind).Inc()
	c.kickPower.WithLabelValues(kind).Observe(power)
}

func (c *MatchCollector) RecordTackle(team netconfig.Team) {
	c.tackles.WithLabelValues(team.String()).Inc()
}

func (c *MatchCollector) RecordControlSwitch(team netconfig.Team) {
	c.controlSwitch.WithLabelValues(team.String()).Inc()
}

func (c *MatchCollector) RecordEpisode(reason string, steps int) {
	c.episodes.WithLabelValues(reason).Inc()
	c.episodeSteps.WithLabelValues(reason).Observe(float64(steps))
}

func (c *MatchCollector) RecordGoal(scorer netconfig.Team) {
	c.goals.WithLabelValues(scorer.String()).Inc()
}
