package store

import "time"

// EpisodeModel represents the episodes table
type EpisodeModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID      string    `gorm:"column:match_id;not null;index"`
	Number       int       `gorm:"column:number;not null"`
	Reason       string    `gorm:"column:reason;not null"`
	Scorer       string    `gorm:"column:scorer"` // empty on timeout
	Steps        int       `gorm:"column:steps;not null"`
	BlueReward   float64   `gorm:"column:blue_reward;not null;default:0"`
	PurpleReward float64   `gorm:"column:purple_reward;not null;default:0"`
	BlueScore    int       `gorm:"column:blue_score;not null"`
	PurpleScore  int       `gorm:"column:purple_score;not null"`
	EndedAt      time.Time `gorm:"column:ended_at;not null;index"`
}

func (EpisodeModel) TableName() string {
	return "episodes"
}
