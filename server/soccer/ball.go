package soccer

import (
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/solarlune/resolv"
)

// Ball is the match ball. While held it is puppeted by the holder's
// Possession and not integrated by the physics step.
type Ball struct {
	Pos     gamemath.Vec2
	Height  float64
	Vel     gamemath.Vec2
	VertVel float64
	Gravity bool

	// HeldBy mirrors the OwnerToken holder. It is a weak reference: the ball
	// never keeps a player alive or drives it.
	HeldBy *Player

	BasePos gamemath.Vec2

	ignore *Player // collisions with this player are skipped
	body   *resolv.Object
}

// NewBall creates a ball at rest on pos.
func NewBall(pos gamemath.Vec2, height float64) *Ball {
	return &Ball{
		Pos:     pos,
		BasePos: pos,
		Height:  height,
		Gravity: true,
	}
}

// Speed returns the planar speed.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// IgnoresCollisionWith reports whether contacts with p are currently disabled.
func (b *Ball) IgnoresCollisionWith(p *Player) bool {
	return b.ignore != nil && b.ignore == p
}

// Stop zeroes all ball motion.
func (b *Ball) Stop() {
	b.Vel = gamemath.Vec2{}
	b.VertVel = 0
}
