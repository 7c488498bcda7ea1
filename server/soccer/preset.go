package soccer

import (
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/netconfig"
)

// Preset is a named formation read from presets.toml.
type Preset struct {
	Description string             `toml:"description"`
	Pitch       string             `toml:"pitch"`
	Roster      []string           `toml:"roster"`
	Depth       map[string]float64 `toml:"depth"`
	Spacing     map[string]float64 `toml:"spacing"`
}

// LoadPresets decodes every preset in the TOML file at path.
func LoadPresets(fsys fs.FS, path string) (map[string]Preset, error) {
	presets := map[string]Preset{}
	if _, err := toml.DecodeFS(fsys, path, &presets); err != nil {
		return nil, fmt.Errorf("decode formation presets %s: %w", path, err)
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("no formation presets in %s", path)
	}
	return presets, nil
}

// Apply overlays the preset on base. Roles missing from the preset keep
// the base values.
func (p Preset) Apply(base config.FormationConfig) config.FormationConfig {
	out := base
	out.Depth = copyRoleMap(base.Depth)
	out.LateralSpacing = copyRoleMap(base.LateralSpacing)

	for name, v := range p.Depth {
		out.Depth[netconfig.ParseRole(name)] = v
	}
	for name, v := range p.Spacing {
		out.LateralSpacing[netconfig.ParseRole(name)] = v
	}
	if len(p.Roster) > 0 {
		out.Roster = make([]netconfig.Role, 0, len(p.Roster))
		for _, name := range p.Roster {
			out.Roster = append(out.Roster, netconfig.ParseRole(name))
		}
	}
	return out
}

func copyRoleMap(m map[netconfig.Role]float64) map[netconfig.Role]float64 {
	out := make(map[netconfig.Role]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
