package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
)

// Formation places players on their own half by role.
type Formation struct {
	Depth   map[netconfig.Role]float64
	Spacing map[netconfig.Role]float64
	Height  float64
	Margin  float64
}

func NewFormation(cfg config.FormationConfig) Formation {
	return Formation{
		Depth:   cfg.Depth,
		Spacing: cfg.LateralSpacing,
		Height:  cfg.AgentHeight,
		Margin:  cfg.Margin,
	}
}

// LateralOffset spreads players sharing a role across the pitch: slot 0 and
// 1 sit half a spacing either side of the centre line, slots 2 and 3 one and
// a half. Keepers always stand central.
func LateralOffset(role netconfig.Role, slot int, spacing float64) float64 {
	if role == netconfig.RoleGoalie || spacing <= 0 {
		return 0
	}
	switch slot {
	case 0:
		return -0.5 * spacing
	case 1:
		return 0.5 * spacing
	case 2:
		return -1.5 * spacing
	case 3:
		return 1.5 * spacing
	}
	return 0
}

// Place returns the base position of the slot-th player of role in team.
// Depth is measured from the centre line towards the team's own goal.
func (f Formation) Place(team netconfig.Team, role netconfig.Role, slot int, halfLength, halfWidth float64) gamemath.Vec2 {
	maxDepth := math.Max(halfLength-f.Margin, 0)
	depth := gamemath.Clamp(f.Depth[role], 0, maxDepth)

	maxLat := math.Max(halfWidth-f.Margin, 0)
	lat := gamemath.Clamp(LateralOffset(role, slot, f.Spacing[role]), -maxLat, maxLat)

	return gamemath.V(team.Direction()*depth, lat)
}

// Apply sets BasePos, Pos and Height for every player, counting slots per
// team and role in roster order.
func (f Formation) Apply(players []*Player, halfLength, halfWidth float64) {
	slots := map[netconfig.Team]map[netconfig.Role]int{}
	for _, p := range players {
		if p == nil {
			continue
		}
		if slots[p.Team] == nil {
			slots[p.Team] = map[netconfig.Role]int{}
		}
		slot := slots[p.Team][p.Role]
		slots[p.Team][p.Role] = slot + 1

		p.BasePos = f.Place(p.Team, p.Role, slot, halfLength, halfWidth)
		p.Pos = p.BasePos
		p.Height = f.Height
	}
}
