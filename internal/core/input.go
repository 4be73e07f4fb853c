package core

// ActorID identifies an actor inside a simulation world.
type ActorID int

// InputFrame is the decoded input for a single actor during one simulation tick.
// It carries both control schemes; which half is authoritative is decided once
// per tick by the actor's input source, never by the frame itself.
type InputFrame struct {
	// Keyboard directions (additive, may cancel out).
	Left, Right, Up, Down bool

	// MoveAxis is the left analog stick, each axis already in [-1, 1].
	MoveAxis   Vec2
	MoveActive bool

	// LookAxis is the right analog stick used for controller aiming.
	LookAxis   Vec2
	LookActive bool

	// Pointer is the pointer position in screen space. It is projected to
	// world space through the tick's Viewport.
	Pointer       Vec2
	PointerActive bool

	Shoot           bool // primary pointer trigger
	ControllerShoot bool // dedicated controller trigger
}

// KeyVector returns the raw, un-normalized sum of pressed direction unit vectors.
// Up is -Y because the world is y-down.
func (f InputFrame) KeyVector() Vec2 {
	var v Vec2
	if f.Left {
		v.X--
	}
	if f.Right {
		v.X++
	}
	if f.Up {
		v.Y--
	}
	if f.Down {
		v.Y++
	}
	return v
}

// Viewport projects screen-space points into world space.
// A platform without an active camera supplies a nil Viewport.
type Viewport interface {
	ScreenToWorld(screen Vec2) (Vec2, bool)
}

// DebugLevel selects how much diagnostic geometry a tick emits.
type DebugLevel int

const (
	DebugNone DebugLevel = iota
	DebugBasic
)

// Toggle flips between DebugNone and DebugBasic.
func (d DebugLevel) Toggle() DebugLevel {
	if d == DebugBasic {
		return DebugNone
	}
	return DebugBasic
}

// String returns a human-readable name for the level.
func (d DebugLevel) String() string {
	switch d {
	case DebugNone:
		return "none"
	case DebugBasic:
		return "basic"
	default:
		return "unknown"
	}
}

// TickInput contains everything the input collaborator supplies for one tick.
type TickInput struct {
	// Dt is the tick duration in seconds.
	Dt float64

	// Debug enables diagnostic segment emission for this tick.
	Debug DebugLevel

	// Viewport is used for pointer aiming. Nil means no camera this tick.
	Viewport Viewport

	// ByActor maps actor IDs to their decoded input.
	ByActor map[ActorID]InputFrame
}

// NewTickInput creates a tick input with an empty frame map.
func NewTickInput(dt float64) TickInput {
	return TickInput{
		Dt:      dt,
		ByActor: make(map[ActorID]InputFrame),
	}
}

// Actor returns the frame for an actor, or an empty frame if none was supplied.
func (t TickInput) Actor(id ActorID) InputFrame {
	if t.ByActor == nil {
		return InputFrame{}
	}
	return t.ByActor[id]
}

// SetActor sets the frame for an actor.
func (t *TickInput) SetActor(id ActorID, frame InputFrame) {
	if t.ByActor == nil {
		t.ByActor = make(map[ActorID]InputFrame)
	}
	t.ByActor[id] = frame
}
