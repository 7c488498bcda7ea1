// Package assets embeds the pitch layouts and formation presets the match
// server loads at startup.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

var (
	//go:embed all:pitches
	pitchFS embed.FS

	//go:embed all:formations
	formationFS embed.FS
)

// Pitches returns the embedded pitch filesystem rooted at the assets dir,
// so paths look like "pitches/five.tmx".
func Pitches() fs.FS {
	return pitchFS
}

// Formations returns the embedded formation preset filesystem, paths look
// like "formations/presets.toml".
func Formations() fs.FS {
	return formationFS
}

// PitchNames lists the embedded pitch stems in sorted order.
func PitchNames() ([]string, error) {
	entries, err := pitchFS.ReadDir("pitches")
	if err != nil {
		return nil, fmt.Errorf("read pitches dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".tmx" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}
