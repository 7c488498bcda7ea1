package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
)

// Animator parameter and trigger names.
const (
	ParamForward      = "Forward"
	ParamRunSpeedMult = "RunSpeedMult"
	ParamIsDribbling  = "IsDribbling"
	TriggerKick       = "Kick"
	TriggerPass       = "Pass"
)

// SignalSink receives animation signals. The server mirrors them into
// synced components; tests record them.
type SignalSink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
	SetTrigger(name string)
}

// AnimSignals is the SignalSink kept on every player.
type AnimSignals struct {
	Forward      float64
	RunSpeedMult float64
	IsDribbling  bool
	triggers     []string
}

func (s *AnimSignals) SetFloat(name string, v float64) {
	switch name {
	case ParamForward:
		s.Forward = v
	case ParamRunSpeedMult:
		s.RunSpeedMult = v
	}
}

func (s *AnimSignals) SetBool(name string, v bool) {
	if name == ParamIsDribbling {
		s.IsDribbling = v
	}
}

func (s *AnimSignals) SetTrigger(name string) {
	s.triggers = append(s.triggers, name)
}

// DrainTriggers returns and clears the triggers fired since the last call.
func (s *AnimSignals) DrainTriggers() []string {
	t := s.triggers
	s.triggers = nil
	return t
}

// AnimBridge smooths movement into animator parameters.
type AnimBridge struct {
	cfg     config.AnimConfig
	sink    SignalSink
	forward float64
}

func NewAnimBridge(cfg config.AnimConfig, sink SignalSink) *AnimBridge {
	return &AnimBridge{cfg: cfg, sink: sink}
}

// Update sends the smoothed forward speed, run speed multiplier and
// dribbling flag.
func (b *AnimBridge) Update(vel, facing gamemath.Vec2, dribbling bool, dt float64) {
	if b.sink == nil {
		return
	}
	raw := vel.Dot(facing.Normalize())
	if b.cfg.Damping > 0 {
		a := 1 - math.Exp(-dt/b.cfg.Damping)
		b.forward += (raw - b.forward) * a
	} else {
		b.forward = raw
	}

	norm := b.cfg.ForwardSpeedNorm
	if norm <= 0 {
		norm = 1
	}
	f := gamemath.Clamp(b.forward/norm, -1, 1)

	b.sink.SetFloat(ParamForward, f)
	b.sink.SetFloat(ParamRunSpeedMult, gamemath.Clamp(math.Abs(f), b.cfg.RunSpeedMin, b.cfg.RunSpeedMax))
	b.sink.SetBool(ParamIsDribbling, dribbling)
}

func (b *AnimBridge) Trigger(name string) {
	if b.sink != nil {
		b.sink.SetTrigger(name)
	}
}

func (b *AnimBridge) reset() { b.forward = 0 }
