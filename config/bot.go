package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// ParseBotDifficulty maps a difficulty name to its value, defaulting to normal.
func ParseBotDifficulty(name string) BotDifficulty {
	switch name {
	case "easy":
		return BotDifficultyEasy
	case "hard":
		return BotDifficultyHard
	}
	return BotDifficultyNormal
}

// BotDifficultyConfig holds tuning values for autonomous players at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay float64 // Seconds an autonomous player waits after kick-off before moving
	ChaseSpeed    float64 // Fraction of Manual.MoveSpeed used when chasing the ball
	ReturnSpeed   float64 // Fraction of Manual.MoveSpeed used when returning to formation
	ChargeHold    float64 // Fraction of Kick.ChargeTime held before releasing a shot
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulty   BotDifficulty
	Difficulties map[BotDifficulty]BotDifficultyConfig
	Seed         int64
}

// Current returns the tuning for the selected difficulty.
func (b BotConfigData) Current() BotDifficultyConfig {
	if d, ok := b.Difficulties[b.Difficulty]; ok {
		return d
	}
	return b.Difficulties[BotDifficultyNormal]
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulty: BotDifficultyNormal,
		Seed:       42,
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 0.5,
				ChaseSpeed:    0.5,
				ReturnSpeed:   0.35,
				ChargeHold:    0.3,
			},
			BotDifficultyNormal: {
				ReactionDelay: 0.25,
				ChaseSpeed:    0.7,
				ReturnSpeed:   0.5,
				ChargeHold:    0.6,
			},
			BotDifficultyHard: {
				ReactionDelay: 0.05,
				ChaseSpeed:    0.9,
				ReturnSpeed:   0.6,
				ChargeHold:    0.9,
			},
		},
	}
}
