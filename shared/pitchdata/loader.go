package pitchdata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/lafriks/go-tiled"
)

// LoadPitch parses a TMX file into a Pitch. It takes an fs.FS so callers can
// pass the embedded assets or os.DirFS.
//
// Expected object groups: "Pitch" with a "field" rectangle, "Goals" with one
// rectangle per team (property "team"), and optionally "Ball" with a point.
// TMX pixels are metres; the map centre becomes the world origin.
func LoadPitch(fsys fs.FS, tmxPath string) (*Pitch, error) {
	pitchMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	mapW := float64(pitchMap.Width * pitchMap.TileWidth)
	mapH := float64(pitchMap.Height * pitchMap.TileHeight)
	toWorld := func(x, y float64) gamemath.Vec2 {
		return gamemath.V(x-mapW/2, y-mapH/2)
	}

	p := &Pitch{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  mapW,
		MapHeight: mapH,
	}

	fieldFound := false
	for _, og := range pitchMap.ObjectGroups {
		switch og.Name {
		case "Pitch":
			for _, o := range og.Objects {
				if o.Name != "field" {
					continue
				}
				p.HalfLength = o.Width / 2
				p.HalfWidth = o.Height / 2
				fieldFound = true
			}
		case "Goals":
			for _, o := range og.Objects {
				team, ok := netconfig.ParseTeam(o.Properties.GetString("team"))
				if !ok {
					team, ok = netconfig.ParseTeam(o.Name)
				}
				if !ok {
					return nil, fmt.Errorf("goal %q in %s has no team", o.Name, tmxPath)
				}
				p.Goals = append(p.Goals, Goal{
					Team: team,
					Min:  toWorld(o.X, o.Y),
					Max:  toWorld(o.X+o.Width, o.Y+o.Height),
				})
			}
		case "Ball":
			if len(og.Objects) > 0 {
				p.BallSpot = toWorld(og.Objects[0].X, og.Objects[0].Y)
			}
		}
	}

	if !fieldFound {
		return nil, fmt.Errorf("%s: no field rectangle in Pitch group", tmxPath)
	}
	if len(p.Goals) != 2 {
		return nil, fmt.Errorf("%s: expected 2 goals, found %d", tmxPath, len(p.Goals))
	}

	// Blue first for consistent lookup order
	sort.Slice(p.Goals, func(i, j int) bool {
		return p.Goals[i].Team < p.Goals[j].Team
	})

	return p, nil
}

// LoadAllPitches discovers all .tmx files in dir within fsys and returns
// them keyed by stem name plus a sorted list of names.
func LoadAllPitches(fsys fs.FS, dir string) (map[string]*Pitch, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	pitches := make(map[string]*Pitch, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		p, err := LoadPitch(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		pitches[stem] = p
		names = append(names, stem)
	}

	sort.Strings(names)
	return pitches, names, nil
}
