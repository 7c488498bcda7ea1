package config

import "github.com/automoto/kickoff/shared/netconfig"

// ArbiterConfig contains player-switching configuration values
type ArbiterConfig struct {
	CheckInterval     float64 // Seconds between nearest-player scans
	MinSwitchCooldown float64 // Seconds after a switch before another is allowed
	Hysteresis        float64 // Distance advantage a candidate needs (compared squared)
}

// DribbleConfig contains ball possession configuration values
type DribbleConfig struct {
	Range       float64 // Max player-ball distance to take possession
	Distance    float64 // How far ahead of the player the ball is held
	FollowSpeed float64 // Base smoothing rate for the held ball
	SpeedFollow float64 // Extra smoothing per unit of player speed
	Height      float64 // Height of the held ball
}

// KickConfig contains charged-kick configuration values
type KickConfig struct {
	MinPower     float64
	MaxPower     float64
	ChargeTime   float64 // Seconds to reach full power; charge auto-fires after this
	Cooldown     float64 // Seconds after a kick before possession can be retaken
	Curve        string  // Easing curve name applied to the charge ratio
	CarryInertia bool    // Add the kicker's velocity to the released ball
}

// TackleConfig contains tackle configuration values
type TackleConfig struct {
	Force float64 // Ground-plane release speed away from the tackler
	Lift  float64 // Vertical component before scaling by Force
}

// AutoKickConfig contains the autonomous shoot/pass heuristic thresholds
type AutoKickConfig struct {
	MaxKickRange      float64 // Foot-ball distance
	KickForwardAngle  float64 // Degrees either side of facing where a shot is allowed
	MinShootDistance  float64 // Shots inside this distance get weighted up
	PassMinAngle      float64 // Degrees either side of facing a teammate must be in
	PassMaxDistance   float64
	StartDelay        float64 // Seconds before the first decision
	DecisionCooldown  float64 // Seconds between decisions
	MinMoveSpeed      float64 // Below this speed no decision is taken
	PreferShootWeight float64
	PreferPassWeight  float64
	NearGoalBonus     float64
}

// KickContactConfig contains the impulse applied at the impact frame of a kick or pass
type KickContactConfig struct {
	KickPower       float64 // Velocity change for a shot
	PassPower       float64 // Velocity change for a pass
	Lift            float64 // Upward ratio for shots, halved for passes
	ContactRadius   float64
	MaxKickDistance float64 // Foot-ball distance above which the impulse is refused
	PreDamp         float64 // Ball velocity multiplier before impact
	FootOffset      float64 // Foot marker distance ahead of the player
	ImpactTime      float64 // Normalized clip time the contact fires at
	RearmTime       float64 // Normalized clip time the contact re-arms after
	ClipDuration    float64 // Seconds a kick/pass clip plays
}

// ManualConfig contains human-driven player configuration values
type ManualConfig struct {
	MoveSpeed      float64
	DashMultiplier float64
	MaxVelocity    float64 // Planar speed clamp
	Drag           float64 // Planar deceleration without input, m/s²
	AutoFaceBall   bool
	TurnSpeed      float64 // Degrees per second
}

// AnimConfig contains animation signal smoothing values
type AnimConfig struct {
	ForwardSpeedNorm float64 // Forward speed mapped to 1.0
	Damping          float64 // Smoothing time constant in seconds
	RunSpeedMin      float64
	RunSpeedMax      float64
}

// FieldConfig contains pitch geometry used when no pitch file is loaded
type FieldConfig struct {
	HalfLength float64 // X half-extent
	HalfWidth  float64 // Z half-extent
	GoalWidth  float64
	GoalDepth  float64
	WallMargin float64 // Extra room behind the goal line
	PitchFile  string  // TMX under assets/pitches
}

// SpawnConfig contains episode reset jitter values
type SpawnConfig struct {
	PlayerJitterX float64
	PlayerJitterZ float64
	BallJitterX   float64
	BallJitterZ   float64
	RotationMin   float64 // Degrees
	RotationMax   float64 // Degrees
	BallHeight    float64
}

// FormationConfig contains role placement values
type FormationConfig struct {
	Depth          map[netconfig.Role]float64 // Absolute distance from centre on X
	LateralSpacing map[netconfig.Role]float64 // Spacing between slots on Z
	AgentHeight    float64
	Margin         float64 // Distance kept from the field edge
	Preset         string  // Preset name in assets/formations
	Roster         []netconfig.Role
}

// EpisodeConfig contains episode limits
type EpisodeConfig struct {
	MaxEnvironmentSteps int // Physics ticks before the episode is interrupted; 0 disables
	DefensiveShell      float64
	DefensiveMax        float64
}

// PhysicsConfig contains ball and player integration values
type PhysicsConfig struct {
	Gravity         float64
	BallRadius      float64
	BallRestitution float64 // Vertical bounce retained on ground contact
	BallRollDrag    float64 // Planar velocity lost per second on the ground
	PlayerDrag      float64 // Planar velocity lost per second when not driven
	PlayerRadius    float64
	WallRestitution float64
}

// NetworkConfig contains server transport values
type NetworkConfig struct {
	InputRate     float64 // Input messages per second per client
	InputBurst    int
	MaxPlayers    int // Human seats, at most one per team is driven at once
	HeartbeatSecs int
	ReconnectSecs float64 // How long a dropped human's seat is held
	RecentResults int     // Episode results kept in memory for /episodes
}

var (
	Arbiter     ArbiterConfig
	Dribble     DribbleConfig
	Kick        KickConfig
	Tackle      TackleConfig
	AutoKick    AutoKickConfig
	KickContact KickContactConfig
	Manual      ManualConfig
	Anim        AnimConfig
	Field       FieldConfig
	Spawn       SpawnConfig
	Formation   FormationConfig
	Episode     EpisodeConfig
	Physics     PhysicsConfig
	Network     NetworkConfig
)

func init() {
	Arbiter = ArbiterConfig{
		CheckInterval:     0.15,
		MinSwitchCooldown: 0.6,
		Hysteresis:        1.5,
	}

	Dribble = DribbleConfig{
		Range:       2.0,
		Distance:    2.5,
		FollowSpeed: 15.0,
		SpeedFollow: 0.5,
		Height:      0.5,
	}

	Kick = KickConfig{
		MinPower:     16.0,
		MaxPower:     50.0,
		ChargeTime:   0.5,
		Cooldown:     0.5,
		Curve:        "linear",
		CarryInertia: true,
	}

	Tackle = TackleConfig{
		Force: 8.0,
		Lift:  0.3,
	}

	AutoKick = AutoKickConfig{
		MaxKickRange:      1.3,
		KickForwardAngle:  55.0,
		MinShootDistance:  8.0,
		PassMinAngle:      110.0,
		PassMaxDistance:   14.0,
		StartDelay:        0.4,
		DecisionCooldown:  0.25,
		MinMoveSpeed:      0.03,
		PreferShootWeight: 1.0,
		PreferPassWeight:  1.6,
		NearGoalBonus:     0.35,
	}

	KickContact = KickContactConfig{
		KickPower:       8.0,
		PassPower:       6.0,
		Lift:            0.2,
		ContactRadius:   0.25,
		MaxKickDistance: 0.6,
		PreDamp:         0.2,
		FootOffset:      0.4,
		ImpactTime:      0.45,
		RearmTime:       0.98,
		ClipDuration:    0.6,
	}

	Manual = ManualConfig{
		MoveSpeed:      10.0,
		DashMultiplier: 2.0,
		MaxVelocity:    10.0,
		Drag:           8.0,
		AutoFaceBall:   true,
		TurnSpeed:      540.0,
	}

	Anim = AnimConfig{
		ForwardSpeedNorm: 2.8,
		Damping:          0.12,
		RunSpeedMin:      0.6,
		RunSpeedMax:      1.2,
	}

	// Five-a-side pitch
	Field = FieldConfig{
		HalfLength: 28.0,
		HalfWidth:  18.0,
		GoalWidth:  7.0,
		GoalDepth:  2.0,
		WallMargin: 2.0,
		PitchFile:  "pitches/five.tmx",
	}

	Spawn = SpawnConfig{
		PlayerJitterX: 9.0,
		PlayerJitterZ: 6.0,
		BallJitterX:   6.0,
		BallJitterZ:   6.0,
		RotationMin:   80.0,
		RotationMax:   100.0,
		BallHeight:    0.5,
	}

	Formation = FormationConfig{
		Depth: map[netconfig.Role]float64{
			netconfig.RoleStriker:  12.0,
			netconfig.RoleDefender: 20.0,
			netconfig.RoleGoalie:   26.0,
		},
		LateralSpacing: map[netconfig.Role]float64{
			netconfig.RoleStriker:  6.0,
			netconfig.RoleDefender: 8.0,
			netconfig.RoleGoalie:   0.0,
		},
		AgentHeight: 0.5,
		Margin:      1.0,
		Preset:      "five",
		Roster: []netconfig.Role{
			netconfig.RoleGoalie,
			netconfig.RoleDefender,
			netconfig.RoleDefender,
			netconfig.RoleStriker,
			netconfig.RoleStriker,
		},
	}

	Episode = EpisodeConfig{
		MaxEnvironmentSteps: 25000,
		DefensiveShell:      9.0,
		DefensiveMax:        14.0,
	}

	Physics = PhysicsConfig{
		Gravity:         9.81,
		BallRadius:      0.25,
		BallRestitution: 0.5,
		BallRollDrag:    1.5,
		PlayerDrag:      8.0,
		PlayerRadius:    0.5,
		WallRestitution: 0.6,
	}

	Network = NetworkConfig{
		InputRate:     60,
		InputBurst:    20,
		MaxPlayers:    2,
		HeartbeatSecs: 30,
		ReconnectSecs: 30,
		RecentResults: 50,
	}
}
