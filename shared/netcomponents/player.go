package netcomponents

import (
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetPlayerData is the synced view of one player. X and Z are ground-plane
// metres, Heading is degrees with 0 facing +Z.
type NetPlayerData struct {
	PlayerID     int
	Team         netconfig.Team
	Role         netconfig.Role
	X, Z         float64
	Height       float64
	Heading      float64
	StateID      netconfig.StateID
	Manual       bool    // Driven by the team's human
	Forward      float64 // Smoothed animator forward speed in [-1, 1]
	RunSpeedMult float64
	IsDribbling  bool
	LastSequence uint32 // Last input sequence applied for the team's human
}

var NetPlayer = donburi.NewComponentType[NetPlayerData]()

// LerpNetPlayer interpolates position and heading; discrete fields snap to
// the newer sample.
func LerpNetPlayer(from, to NetPlayerData, t float64) *NetPlayerData {
	out := to
	out.X = from.X + (to.X-from.X)*t
	out.Z = from.Z + (to.Z-from.Z)*t
	out.Height = from.Height + (to.Height-from.Height)*t
	out.Heading = lerpAngle(from.Heading, to.Heading, t)
	out.Forward = from.Forward + (to.Forward-from.Forward)*t
	return &out
}

// lerpAngle interpolates degrees along the shorter arc.
func lerpAngle(from, to, t float64) float64 {
	delta := to - from
	for delta > 180 {
		delta -= 360
	}
	for delta < -180 {
		delta += 360
	}
	return from + delta*t
}
