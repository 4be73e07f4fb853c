package combat

import (
	"github.com/vovakirdan/strafe/internal/core"
)

// DefaultLookDistance is how far ahead of the actor a controller look
// direction places the synthetic aim point.
const DefaultLookDistance = 30.0

// Intent is an actor's input for one tick after the control mode is resolved.
type Intent struct {
	Move      core.Vec2 // raw, un-normalized
	Target    core.Vec2 // aim point in world space
	HasTarget bool
	Trigger   bool
}

// InputSource turns a decoded frame into an intent. One source is chosen per
// actor from its control mode so that locomotion, aim and firing never
// disagree about which half of the frame is authoritative.
type InputSource interface {
	Resolve(pos core.Vec2, in core.InputFrame, vp core.Viewport) Intent
}

// KeyboardMouse reads the four direction keys, the pointer and the primary trigger.
type KeyboardMouse struct{}

// Resolve implements InputSource.
func (KeyboardMouse) Resolve(_ core.Vec2, in core.InputFrame, vp core.Viewport) Intent {
	it := Intent{
		Move:    in.KeyVector(),
		Trigger: in.Shoot,
	}
	if in.PointerActive && vp != nil {
		if target, ok := vp.ScreenToWorld(in.Pointer); ok {
			it.Target = target
			it.HasTarget = true
		}
	}
	return it
}

// Controller reads the analog sticks and the dedicated trigger button.
type Controller struct {
	LookDistance float64
}

// Resolve implements InputSource.
func (c Controller) Resolve(pos core.Vec2, in core.InputFrame, _ core.Viewport) Intent {
	it := Intent{Trigger: in.ControllerShoot}
	if in.MoveActive {
		it.Move = core.V(core.ClampF(in.MoveAxis.X, -1, 1), core.ClampF(in.MoveAxis.Y, -1, 1))
	}
	if in.LookActive && !in.LookAxis.IsZero() {
		it.Target = pos.Add(in.LookAxis.Normalize().Scale(c.LookDistance))
		it.HasTarget = true
	}
	return it
}

// SourceFor returns the input source matching the actor's control mode.
func SourceFor(stats ActorStats, lookDistance float64) InputSource {
	if stats.ControllerDriven {
		if lookDistance <= 0 {
			lookDistance = DefaultLookDistance
		}
		return Controller{LookDistance: lookDistance}
	}
	return KeyboardMouse{}
}
