// Package profile keeps the server's lifetime scoreboard in the user's
// data directory with gdata, so totals survive restarts without a database.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/kickoff/server/store"
	"github.com/quasilyte/gdata"
)

const scoreboardItem = "scoreboard"

// Totals is the saved scoreboard.
type Totals struct {
	Matches     int `json:"matches"`
	Episodes    int `json:"episodes"`
	Timeouts    int `json:"timeouts"`
	BlueGoals   int `json:"blueGoals"`
	PurpleGoals int `json:"purpleGoals"`
	LongestGoal int `json:"longestGoal"` // Most steps before a goal
	FastestGoal int `json:"fastestGoal"` // Fewest steps before a goal, 0 when none
}

// itemStore is the part of gdata.Manager the scoreboard uses.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Scoreboard accumulates episode results and saves them after every
// episode.
type Scoreboard struct {
	mu     sync.Mutex
	items  itemStore
	totals Totals
}

// Open loads the scoreboard saved under appName.
func Open(appName string) (*Scoreboard, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata: %w", err)
	}
	return newScoreboard(m)
}

func newScoreboard(items itemStore) (*Scoreboard, error) {
	sb := &Scoreboard{items: items}
	data, err := items.LoadItem(scoreboardItem)
	if err != nil {
		return nil, fmt.Errorf("load scoreboard: %w", err)
	}
	if data == nil {
		return sb, nil
	}
	if err := json.Unmarshal(data, &sb.totals); err != nil {
		log.Printf("[profile] Saved scoreboard unreadable, starting fresh: %v", err)
		sb.totals = Totals{}
	}
	return sb, nil
}

// StartMatch counts a new match.
func (sb *Scoreboard) StartMatch() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.totals.Matches++
	return sb.save()
}

// SaveEpisode folds e into the totals and persists them.
func (sb *Scoreboard) SaveEpisode(_ context.Context, e store.Episode) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	t := &sb.totals
	t.Episodes++
	switch e.Reason {
	case "goal":
		switch e.Scorer {
		case "blue":
			t.BlueGoals++
		case "purple":
			t.PurpleGoals++
		}
		if e.Steps > t.LongestGoal {
			t.LongestGoal = e.Steps
		}
		if t.FastestGoal == 0 || e.Steps < t.FastestGoal {
			t.FastestGoal = e.Steps
		}
	case "timeout":
		t.Timeouts++
	}
	return sb.save()
}

// Totals returns a copy of the current totals.
func (sb *Scoreboard) Totals() Totals {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.totals
}

func (sb *Scoreboard) save() error {
	data, err := json.Marshal(sb.totals)
	if err != nil {
		return fmt.Errorf("marshal scoreboard: %w", err)
	}
	if err := sb.items.SaveItem(scoreboardItem, data); err != nil {
		return fmt.Errorf("save scoreboard: %w", err)
	}
	return nil
}
