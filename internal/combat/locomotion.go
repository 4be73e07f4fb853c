package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/strafe/internal/core"
)

// ErrSectorInvariant reports a facing angle outside every locomotion sector.
// The sectors cover [0, 360) exactly, so this only happens for non-finite
// input and aborts the whole tick.
var ErrSectorInvariant = errors.New("combat: facing angle outside all sectors")

// sectorWidth is the angular width of one facing sector in degrees.
const sectorWidth = 60.0

// facingAngle returns the signed angle from world down to move, in degrees,
// normalized to [0, 360). With +Y down this is atan2(-x, y).
func facingAngle(move core.Vec2) float64 {
	deg := math.Atan2(core.Down.Cross(move), core.Down.Dot(move)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	// A tiny negative angle rounds up to exactly 360 and belongs to the first sector.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Classify maps a raw movement vector to a facing state.
// The zero vector is always Idle; every other vector depends only on its direction.
func Classify(move core.Vec2) (FacingState, error) {
	if move.IsZero() {
		return Idle, nil
	}
	if !move.IsFinite() {
		return Idle, fmt.Errorf("%w: non-finite move %v", ErrSectorInvariant, move)
	}

	n := facingAngle(move)
	switch {
	case n < 30+sectorWidth*0:
		return Front, nil
	case n < 30+sectorWidth*1:
		return LeftFront, nil
	case n < 30+sectorWidth*2:
		return LeftBack, nil
	case n < 30+sectorWidth*3:
		return Back, nil
	case n < 30+sectorWidth*4:
		return RightBack, nil
	case n < 30+sectorWidth*5:
		return RightFront, nil
	case n < 30+sectorWidth*6:
		return Front, nil
	}
	return Idle, fmt.Errorf("%w: %v (move %v)", ErrSectorInvariant, n, move)
}

// Locomote classifies the movement vector and displaces pos by the vector
// clamped to unit length, times speed, times dt. Idle leaves pos unchanged.
func Locomote(pos, move core.Vec2, speed, dt float64) (core.Vec2, FacingState, error) {
	state, err := Classify(move)
	if err != nil {
		return pos, Idle, err
	}
	if state == Idle {
		return pos, Idle, nil
	}
	return pos.Add(move.ClampLength(1).Scale(speed * dt)), state, nil
}
