package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// JumpState is the player's vertical state.
type JumpState int

const (
	Grounded JumpState = iota
	Jumping
	DoubleJumping
)

// String returns the state name.
func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case DoubleJumping:
		return "doubleJumping"
	default:
		return fmt.Sprintf("jumpState(%d)", int(s))
	}
}

// JumpResult reports what a jump press did.
type JumpResult int

const (
	JumpNone JumpResult = iota
	JumpSingle
	JumpDouble
)

const (
	legSwing     = 0.2  // Leg amplitude
	bodyLean     = 0.1  // Grounded body lean amplitude
	runFrequency = 0.01 // Radians per millisecond of the running cycle
	minLane      = -1
	maxLane      = 1
)

// Player is the runner's kinematic state. Every method is a no-op on a nil
// receiver so callers need not guard against a session that has not built
// its player yet.
type Player struct {
	Lane      int       // -1, 0 or 1
	Pos       core.Vec3 // Feet position; x snaps to the lane offset
	VelY      float64
	JumpCount int // 0 grounded, 1 after the first jump, 2 after the double jump
	State     JumpState
	Tilt      float64 // Body roll, damped toward the lane target
	LegPhase  float64
	Lean      float64

	physics config.PhysicsConfig
	lanes   config.LanesConfig
	size    core.Vec3
}

// NewPlayer creates a grounded player in the centre lane.
func NewPlayer(physics config.PhysicsConfig, lanes config.LanesConfig, body config.PlayerConfig) *Player {
	p := &Player{
		physics: physics,
		lanes:   lanes,
		size:    core.V3(body.Width, body.Height, body.Depth),
	}
	p.Pos = core.V3(p.laneX(0), physics.GroundY, 0)
	return p
}

func (p *Player) laneX(lane int) float64 {
	return p.lanes.Positions[lane-minLane]
}

// MoveLeft shifts one lane left. Returns true if the lane changed.
func (p *Player) MoveLeft(paused bool) bool {
	return p.shift(-1, paused)
}

// MoveRight shifts one lane right. Returns true if the lane changed.
func (p *Player) MoveRight(paused bool) bool {
	return p.shift(1, paused)
}

func (p *Player) shift(dir int, paused bool) bool {
	if p == nil || paused {
		return false
	}
	lane := core.Clamp(p.Lane+dir, minLane, maxLane)
	if lane == p.Lane {
		return false
	}
	p.Lane = lane
	p.Pos[0] = p.laneX(lane)
	p.Tilt = -float64(dir) * p.lanes.Tilt
	return true
}

// Jump handles a jump press. canDoubleJump must reflect the power-up state
// at the moment of the press.
func (p *Player) Jump(paused, canDoubleJump bool) JumpResult {
	if p == nil || paused {
		return JumpNone
	}
	switch {
	case p.State == Grounded:
		p.VelY = p.physics.JumpImpulse
		p.State = Jumping
		p.JumpCount = 1
		return JumpSingle
	case p.State == Jumping && canDoubleJump && p.JumpCount == 1:
		p.VelY = p.physics.JumpImpulse * p.physics.DoubleJumpFactor
		p.State = DoubleJumping
		p.JumpCount = 2
		return JumpDouble
	default:
		return JumpNone
	}
}

// Airborne reports whether the player is off the ground.
func (p *Player) Airborne() bool {
	if p == nil {
		return false
	}
	return p.State != Grounded || p.Pos.Y() > p.physics.GroundY
}

// Integrate applies one frame of gravity. Returns true on landing.
func (p *Player) Integrate() bool {
	if !p.Airborne() {
		return false
	}
	p.VelY -= p.physics.Gravity
	p.Pos[1] += p.VelY
	if p.Pos.Y() > p.physics.GroundY {
		return false
	}
	p.Pos[1] = p.physics.GroundY
	p.VelY = 0
	p.State = Grounded
	p.JumpCount = 0
	return true
}

// DampTilt eases the body roll toward the current lane's target angle.
func (p *Player) DampTilt() {
	if p == nil {
		return
	}
	target := -p.lanes.Tilt * float64(p.Lane)
	p.Tilt = core.Lerp(p.Tilt, target, p.lanes.TiltSmoothing)
}

// CameraX returns the camera's lateral position following the player.
func (p *Player) CameraX() float64 {
	if p == nil {
		return 0
	}
	return p.Pos.X() * p.lanes.CameraFollow
}

// Animate advances the running cycle at simulation time nowMs.
func (p *Player) Animate(nowMs float64) {
	if p == nil {
		return
	}
	cycle := nowMs * runFrequency
	p.LegPhase = math.Sin(cycle) * legSwing
	if p.Airborne() {
		p.Lean = 0
		return
	}
	p.Lean = math.Sin(cycle) * bodyLean
}

// Box returns the player's collision volume, standing on its feet.
func (p *Player) Box() core.Box {
	if p == nil {
		return core.Box{}
	}
	return core.BoxFromBase(p.Pos, p.size)
}
