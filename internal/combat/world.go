package combat

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/strafe/internal/core"
)

var (
	// ErrDuplicateActor is returned when an actor ID is already in the world.
	ErrDuplicateActor = errors.New("combat: duplicate actor")
	// ErrUnknownActor is returned when an actor ID is not in the world.
	ErrUnknownActor = errors.New("combat: unknown actor")
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for aim misses and aborted ticks.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithLookDistance sets how far ahead a controller look direction aims.
func WithLookDistance(d float64) Option {
	return func(w *World) {
		w.lookDistance = d
	}
}

// WithParallel processes actors concurrently within the per-actor phase.
func WithParallel(parallel bool) Option {
	return func(w *World) {
		w.parallel = parallel
	}
}

// World owns the actors and live projectiles of one simulation.
type World struct {
	actors         []*Actor
	projectiles    *ProjectilePool
	tick           uint64
	nextProjectile ProjectileID
	seed           int64
	parallel       bool
	lookDistance   float64
	logger         *log.Logger
}

// NewWorld creates an empty world.
func NewWorld(cfg core.RuntimeConfig, opts ...Option) *World {
	w := &World{
		projectiles:  &ProjectilePool{},
		seed:         cfg.Seed,
		parallel:     cfg.Parallel,
		lookDistance: DefaultLookDistance,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddActor adds an actor and seeds its spread RNG from the world seed.
func (w *World) AddActor(a *Actor) error {
	for _, existing := range w.actors {
		if existing.ID == a.ID {
			return fmt.Errorf("%w: %d", ErrDuplicateActor, a.ID)
		}
	}
	a.rng = NewSimpleRNG(w.seed ^ int64(a.ID+1)*0x2545F4914F6CDD1D)
	w.actors = append(w.actors, a)
	return nil
}

// Actor returns the actor with the given ID.
func (w *World) Actor(id core.ActorID) (*Actor, bool) {
	for _, a := range w.actors {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Equip replaces an actor's weapon between ticks. The new weapon keeps the
// old barrel angle and flip so the muzzle does not snap.
func (w *World) Equip(id core.ActorID, wpn *Weapon) error {
	a, ok := w.Actor(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownActor, id)
	}
	pivot := wpn.Geometry.Pivot(a.Position)
	pose := NewBarrelPose(pivot, wpn.Geometry)
	if a.Weapon != nil {
		pose.Angle = a.Weapon.Pose.Angle
		pose.Flip = a.Weapon.Pose.Flip
		pose.End = pose.Position.Add(core.FromAngle(pose.Angle).Scale(wpn.Geometry.BarrelLength))
	}
	wpn.Pose = pose
	a.Weapon = wpn
	return nil
}

// Actors returns all actors in insertion order.
func (w *World) Actors() []*Actor {
	return w.actors
}

// Projectiles returns the live projectiles.
func (w *World) Projectiles() []Projectile {
	return w.projectiles.All()
}

// Tick returns the number of committed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// ShotEvent records one trigger pull that emitted projectiles.
type ShotEvent struct {
	Actor       core.ActorID
	Weapon      string
	Origin      core.Vec2
	Angle       float64
	Projectiles []ProjectileID
}

// StepResult is returned by Step after each committed tick.
type StepResult struct {
	Tick      uint64
	Shots     []ShotEvent
	Retired   []Retired
	AimMisses []core.ActorID // actors whose barrel pose was retained this tick
	Segments  []Segment      // diagnostic lines, only with DebugBasic
	Live      int            // live projectiles after the tick
}

// Spawned returns the number of projectiles created this tick.
func (r StepResult) Spawned() int {
	n := 0
	for _, s := range r.Shots {
		n += len(s.Projectiles)
	}
	return n
}

type actorOutcome struct {
	actor     *Actor
	spawned   []Projectile
	aimMissed bool
	segments  []Segment
}

// Step advances the world by one tick in the fixed order
// locomotion → aim → firing → kinematics.
//
// Every stage writes into staged copies; nothing is committed unless the
// whole tick succeeds. A sector invariant violation aborts the tick and
// returns an error wrapping ErrSectorInvariant.
func (w *World) Step(in core.TickInput) (StepResult, error) {
	outcomes := make([]actorOutcome, len(w.actors))

	if err := w.stepActors(in, outcomes); err != nil {
		w.logger.Error("tick aborted", "tick", w.tick, "error", err)
		return StepResult{Tick: w.tick}, err
	}

	// Kinematics. Projectiles spawned this tick start moving next tick.
	pool := w.projectiles.Clone()
	result := StepResult{Tick: w.tick + 1}
	result.Retired = pool.Advance(in.Dt)

	nextID := w.nextProjectile
	for _, out := range outcomes {
		if out.aimMissed {
			result.AimMisses = append(result.AimMisses, out.actor.ID)
		}
		result.Segments = append(result.Segments, out.segments...)
		if len(out.spawned) == 0 {
			continue
		}

		ev := ShotEvent{
			Actor:  out.actor.ID,
			Weapon: out.actor.Weapon.Name,
			Origin: out.actor.Weapon.Pose.End,
			Angle:  out.actor.Weapon.Pose.Angle,
		}
		for j := range out.spawned {
			nextID++
			out.spawned[j].ID = nextID
			ev.Projectiles = append(ev.Projectiles, nextID)
		}
		pool.Add(out.spawned...)
		result.Shots = append(result.Shots, ev)
	}

	// Commit.
	for i := range w.actors {
		w.actors[i] = outcomes[i].actor
	}
	w.projectiles = pool
	w.nextProjectile = nextID
	w.tick++
	result.Live = pool.Len()

	return result, nil
}

func (w *World) stepActors(in core.TickInput, outcomes []actorOutcome) error {
	if !w.parallel {
		for i, a := range w.actors {
			out, err := w.stepActor(a, in)
			if err != nil {
				return err
			}
			outcomes[i] = out
		}
		return nil
	}

	// Actors share no state, so each goroutine writes only its own slot.
	var g errgroup.Group
	for i, a := range w.actors {
		g.Go(func() error {
			out, err := w.stepActor(a, in)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	return g.Wait()
}

// stepActor runs locomotion, aim and firing for one actor on a private copy.
func (w *World) stepActor(a *Actor, in core.TickInput) (actorOutcome, error) {
	next := a.clone()
	out := actorOutcome{actor: next}

	intent := SourceFor(next.Stats, w.lookDistance).Resolve(next.Position, in.Actor(a.ID), in.Viewport)

	pos, facing, err := Locomote(next.Position, intent.Move, next.Stats.MovementSpeed, in.Dt)
	if err != nil {
		return out, fmt.Errorf("combat: actor %d: %w", a.ID, err)
	}
	next.Position = pos
	next.Facing = facing

	wpn := next.Weapon
	if wpn == nil {
		return out, nil
	}

	pivot := wpn.Geometry.Pivot(next.Position)
	pose := wpn.Pose.Follow(pivot)
	resolved := false
	if intent.HasTarget {
		pose, resolved = ResolveAim(pivot, intent.Target, wpn.Geometry, pose)
	}
	wpn.Pose = pose

	if !resolved {
		out.aimMissed = true
		w.logger.Debug("aim retained", "actor", a.ID, "has_target", intent.HasTarget)
	}
	if in.Debug == core.DebugBasic {
		if resolved {
			out.segments = AimSegments(pose, intent.Target)
		} else {
			out.segments = RetainedSegments(pose, wpn.Geometry)
		}
	}

	wpn.Advance(in.Dt)
	shot := Shot{
		Owner:  next.ID,
		Origin: pose.End,
		Angle:  pose.Angle,
		Actor:  &next.Stats,
		RNG:    &next.rng,
	}
	wpn.PullTrigger(intent.Trigger, &shot)
	out.spawned = shot.Spawned()

	return out, nil
}
