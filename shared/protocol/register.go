package protocol

import (
	"github.com/automoto/kickoff/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPlayer uint = 20
	SyncIDNetBall   uint = 21
	SyncIDNetMatch  uint = 22
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPlayer uint8 = 20
	InterpIDNetBall   uint8 = 21
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPlayer,
		netcomponents.NetPlayerData{},
		netcomponents.NetPlayer,
		esync.WithInterpFn(InterpIDNetPlayer, netcomponents.LerpNetPlayer),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetBall,
		netcomponents.NetBallData{},
		netcomponents.NetBall,
		esync.WithInterpFn(InterpIDNetBall, netcomponents.LerpNetBall),
	); err != nil {
		return err
	}

	// Match: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetMatch,
		netcomponents.NetMatchData{},
		netcomponents.NetMatch,
	); err != nil {
		return err
	}

	return nil
}
