package combat

import (
	"math"

	"github.com/vovakirdan/strafe/internal/core"
)

// Flip is the horizontal mirroring applied to the weapon sprite.
type Flip uint8

const (
	FlipNone Flip = iota
	FlipHorizontal
)

// String returns the string representation of a flip.
func (f Flip) String() string {
	if f == FlipHorizontal {
		return "HorizontalFlip"
	}
	return "None"
}

// degenerateAim is the distance below which an aim target is treated as
// coincident with the pivot.
const degenerateAim = 1e-9

// WeaponGeometry describes where the barrel sits relative to the actor.
type WeaponGeometry struct {
	BarrelHeight float64   // perpendicular offset of the barrel from the pivot
	BarrelLength float64   // barrel start to muzzle
	Mount        core.Vec2 // pivot offset from the actor position
}

// Pivot returns the weapon pivot for an actor standing at pos.
func (g WeaponGeometry) Pivot(pos core.Vec2) core.Vec2 {
	return pos.Add(g.Mount)
}

// BarrelPose is the resolved muzzle pose for one tick.
type BarrelPose struct {
	Pivot    core.Vec2
	Position core.Vec2 // barrel start
	Angle    float64   // radians
	Flip     Flip
	End      core.Vec2 // muzzle; projectile spawn point
}

// NewBarrelPose returns the pose of an unaimed weapon pointing along +X.
func NewBarrelPose(pivot core.Vec2, g WeaponGeometry) BarrelPose {
	position := pivot.Add(core.FromAngle(0).Perp().Scale(g.BarrelHeight))
	return BarrelPose{
		Pivot:    pivot,
		Position: position,
		Angle:    0,
		Flip:     FlipNone,
		End:      position.Add(core.FromAngle(0).Scale(g.BarrelLength)),
	}
}

// Follow moves a retained pose so it stays attached to a pivot that moved.
// Angle and flip are unchanged.
func (p BarrelPose) Follow(pivot core.Vec2) BarrelPose {
	delta := pivot.Sub(p.Pivot)
	p.Pivot = pivot
	p.Position = p.Position.Add(delta)
	p.End = p.End.Add(delta)
	return p
}

// AngleDegrees returns the barrel angle in degrees.
func (p BarrelPose) AngleDegrees() float64 {
	return p.Angle * 180 / math.Pi
}

// ResolveAim computes the barrel pose for a pivot aiming at target.
//
// The barrel sits BarrelHeight to the side of the pivot→target direction, so
// the angle is taken from the barrel, not the pivot. When that angle points
// backwards (|angle| > 90°) the barrel moves to the other side, the angle is
// recomputed once, and the pose is flipped.
//
// A non-finite target or one coincident with the pivot leaves prev untouched
// and reports false.
func ResolveAim(pivot, target core.Vec2, g WeaponGeometry, prev BarrelPose) (BarrelPose, bool) {
	toTarget := target.Sub(pivot)
	if !target.IsFinite() || toTarget.Length() < degenerateAim {
		return prev, false
	}

	offset := toTarget.Normalize().Perp().Scale(g.BarrelHeight)
	barrel := pivot.Add(offset)
	angle := target.Sub(barrel).Angle()
	flip := FlipNone

	if math.Abs(angle)*180/math.Pi > 90 {
		barrel = pivot.Sub(offset)
		angle = target.Sub(barrel).Angle()
		flip = FlipHorizontal
	}

	return BarrelPose{
		Pivot:    pivot,
		Position: barrel,
		Angle:    angle,
		Flip:     flip,
		End:      barrel.Add(core.FromAngle(angle).Scale(g.BarrelLength)),
	}, true
}

// Segment is a diagnostic line in world space.
type Segment struct {
	From, To core.Vec2
	Color    core.Color
}

// AimSegments returns the triangle pivot→barrel→target→pivot for a resolved pose.
func AimSegments(p BarrelPose, target core.Vec2) []Segment {
	return []Segment{
		{From: p.Pivot, To: p.Position, Color: core.ColorRed},
		{From: p.Position, To: target, Color: core.ColorGreen},
		{From: target, To: p.Pivot, Color: core.ColorGold},
	}
}

// RetainedSegments returns the diagnostic lines for a tick without an aim target.
func RetainedSegments(p BarrelPose, g WeaponGeometry) []Segment {
	return []Segment{
		{From: p.Pivot, To: p.Position, Color: core.ColorAzure},
		{From: p.Pivot, To: p.Pivot.Add(core.FromAngle(p.Angle).Scale(g.BarrelLength)), Color: core.ColorCyan},
		{From: p.Position, To: p.End, Color: core.ColorPurple},
	}
}
