package netcomponents

import "github.com/yohamta/donburi"

type NetBallData struct {
	X, Z     float64
	Height   float64
	VelX     float64
	VelZ     float64
	HolderID int // PlayerID of the holder, -1 when free
}

var NetBall = donburi.NewComponentType[NetBallData]()

// LerpNetBall interpolates between two ball samples
func LerpNetBall(from, to NetBallData, t float64) *NetBallData {
	return &NetBallData{
		X:        from.X + (to.X-from.X)*t,
		Z:        from.Z + (to.Z-from.Z)*t,
		Height:   from.Height + (to.Height-from.Height)*t,
		VelX:     to.VelX,
		VelZ:     to.VelZ,
		HolderID: to.HolderID,
	}
}
