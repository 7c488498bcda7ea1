package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Episode is one finished episode of a match.
type Episode struct {
	MatchID      string    `json:"matchId"`
	Number       int       `json:"number"`
	Reason       string    `json:"reason"`
	Scorer       string    `json:"scorer,omitempty"`
	Steps        int       `json:"steps"`
	BlueReward   float64   `json:"blueReward"`
	PurpleReward float64   `json:"purpleReward"`
	BlueScore    int       `json:"blueScore"`
	PurpleScore  int       `json:"purpleScore"`
	EndedAt      time.Time `json:"endedAt"`
}

// MatchTotals aggregates the stored episodes of one match.
type MatchTotals struct {
	MatchID  string
	Episodes int
	Goals    int
	Timeouts int
	Blue     int
	Purple   int
}

// GormEpisodeRepository stores episodes with GORM
type GormEpisodeRepository struct {
	db *gorm.DB
}

func NewGormEpisodeRepository(db *gorm.DB) *GormEpisodeRepository {
	return &GormEpisodeRepository{db: db}
}

// SaveEpisode inserts e.
func (r *GormEpisodeRepository) SaveEpisode(ctx context.Context, e Episode) error {
	model := episodeToModel(e)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save episode %d: %w", e.Number, err)
	}
	return nil
}

// Recent returns up to limit episodes, newest first. An empty matchID
// lists every match.
func (r *GormEpisodeRepository) Recent(ctx context.Context, matchID string, limit int) ([]Episode, error) {
	var models []EpisodeModel
	q := r.db.WithContext(ctx).Order("ended_at DESC").Order("id DESC")
	if matchID != "" {
		q = q.Where("match_id = ?", matchID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}

	episodes := make([]Episode, 0, len(models))
	for _, m := range models {
		episodes = append(episodes, modelToEpisode(m))
	}
	return episodes, nil
}

// Totals counts goals and timeouts of matchID. The score is taken from the
// latest episode.
func (r *GormEpisodeRepository) Totals(ctx context.Context, matchID string) (*MatchTotals, error) {
	t := &MatchTotals{MatchID: matchID}

	var rows []struct {
		Reason string
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&EpisodeModel{}).
		Select("reason, count(*) as count").
		Where("match_id = ?", matchID).
		Group("reason").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count episodes: %w", err)
	}
	for _, row := range rows {
		t.Episodes += row.Count
		switch row.Reason {
		case "goal":
			t.Goals += row.Count
		case "timeout":
			t.Timeouts += row.Count
		}
	}

	var last EpisodeModel
	err = r.db.WithContext(ctx).Where("match_id = ?", matchID).
		Order("number DESC").First(&last).Error
	switch {
	case err == gorm.ErrRecordNotFound:
	case err != nil:
		return nil, fmt.Errorf("failed to find latest episode: %w", err)
	default:
		t.Blue, t.Purple = last.BlueScore, last.PurpleScore
	}
	return t, nil
}

func episodeToModel(e Episode) EpisodeModel {
	ended := e.EndedAt
	if ended.IsZero() {
		ended = time.Now()
	}
	return EpisodeModel{
		MatchID:      e.MatchID,
		Number:       e.Number,
		Reason:       e.Reason,
		Scorer:       e.Scorer,
		Steps:        e.Steps,
		BlueReward:   e.BlueReward,
		PurpleReward: e.PurpleReward,
		BlueScore:    e.BlueScore,
		PurpleScore:  e.PurpleScore,
		EndedAt:      ended.UTC(),
	}
}

func modelToEpisode(m EpisodeModel) Episode {
	return Episode{
		MatchID:      m.MatchID,
		Number:       m.Number,
		Reason:       m.Reason,
		Scorer:       m.Scorer,
		Steps:        m.Steps,
		BlueReward:   m.BlueReward,
		PurpleReward: m.PurpleReward,
		BlueScore:    m.BlueScore,
		PurpleScore:  m.PurpleScore,
		EndedAt:      m.EndedAt,
	}
}
