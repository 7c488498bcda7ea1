package core

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/shared/pitchdata"
)

// PitchSet holds the pitch layouts and formation presets a server can
// start a match on.
type PitchSet struct {
	Pitches map[string]*pitchdata.Pitch
	Names   []string
	Presets map[string]soccer.Preset
}

// LoadPitchSet loads every .tmx under pitchDir and the presets file.
func LoadPitchSet(pitchFS fs.FS, pitchDir string, presetFS fs.FS, presetPath string) (*PitchSet, error) {
	pitches, names, err := pitchdata.LoadAllPitches(pitchFS, pitchDir)
	if err != nil {
		return nil, fmt.Errorf("load pitches: %w", err)
	}
	presets, err := soccer.LoadPresets(presetFS, presetPath)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}

	for _, name := range names {
		p := pitches[name]
		log.Printf("[server] Loaded pitch %s: %.0fx%.0f, %d goals", name, p.HalfLength*2, p.HalfWidth*2, len(p.Goals))
	}
	return &PitchSet{Pitches: pitches, Names: names, Presets: presets}, nil
}

// PitchStem turns "pitches/five.tmx" or "five" into "five".
func PitchStem(name string) string {
	return strings.TrimSuffix(path.Base(name), ".tmx")
}

// MatchOptions resolves a formation preset and pitch into match options.
// An empty pitch uses the preset's own pitch.
func (ps *PitchSet) MatchOptions(pitch, preset string, bot config.BotDifficultyConfig, seed int64) (soccer.Options, string, error) {
	formation := config.Formation
	if preset != "" {
		p, ok := ps.Presets[preset]
		if !ok {
			return soccer.Options{}, "", fmt.Errorf("unknown formation preset %q", preset)
		}
		formation = p.Apply(formation)
		if pitch == "" {
			pitch = p.Pitch
		}
	}

	stem := PitchStem(pitch)
	layout, ok := ps.Pitches[stem]
	if !ok {
		return soccer.Options{}, "", fmt.Errorf("unknown pitch %q (have %s)", stem, strings.Join(ps.Names, ", "))
	}

	return soccer.Options{
		Pitch:     layout,
		Formation: &formation,
		Bot:       &bot,
		Seed:      seed,
	}, stem, nil
}
