// Package combat implements the per-tick combat locomotion core: facing
// classification, barrel aim resolution, weapon firing and projectile kinematics.
// It is UI-agnostic and deterministic for a given seed and input sequence.
package combat

// FacingState is the discrete body-facing bucket derived from the movement vector.
type FacingState uint8

const (
	Idle FacingState = iota
	Front
	Back
	LeftFront
	LeftBack
	RightFront
	RightBack
)

// String returns the string representation of a facing state.
func (f FacingState) String() string {
	switch f {
	case Idle:
		return "Idle"
	case Front:
		return "Front"
	case Back:
		return "Back"
	case LeftFront:
		return "LeftFront"
	case LeftBack:
		return "LeftBack"
	case RightFront:
		return "RightFront"
	case RightBack:
		return "RightBack"
	default:
		return "Unknown"
	}
}

// Track names the animation strip an animation collaborator should play.
type Track string

const (
	TrackIdle      Track = "idle"
	TrackFront     Track = "front"
	TrackBack      Track = "back"
	TrackSideFront Track = "side_front"
	TrackSideBack  Track = "side_back"
)

// TrackFor maps a facing state to its animation strip. Left-facing states
// reuse the side strips mirrored horizontally.
func TrackFor(f FacingState) (Track, Flip) {
	switch f {
	case Front:
		return TrackFront, FlipNone
	case Back:
		return TrackBack, FlipNone
	case LeftFront:
		return TrackSideFront, FlipHorizontal
	case RightFront:
		return TrackSideFront, FlipNone
	case LeftBack:
		return TrackSideBack, FlipHorizontal
	case RightBack:
		return TrackSideBack, FlipNone
	default:
		return TrackIdle, FlipNone
	}
}
