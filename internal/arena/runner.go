package arena

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/core"
)

// Observer receives every committed tick of a run.
type Observer interface {
	Observe(r combat.StepResult)
}

// WorldView maps pointer coordinates straight to world coordinates.
// Scripted aim points are already in world space.
type WorldView struct{}

// ScreenToWorld implements core.Viewport.
func (WorldView) ScreenToWorld(p core.Vec2) (core.Vec2, bool) {
	return p, true
}

// RunOptions configures a headless run.
type RunOptions struct {
	Dt        float64 // seconds per tick; defaults to 1/60
	Debug     bool
	Logger    *log.Logger
	Observers []Observer
}

// ActorSummary is the final state of one actor after a run.
type ActorSummary struct {
	ID       core.ActorID
	Name     string
	Weapon   string
	Fired    int
	Position core.Vec2
	Facing   combat.FacingState
}

// Summary describes a finished headless run.
type Summary struct {
	Ticks       int
	Shots       int
	Projectiles int
	Retired     int
	AimMisses   int
	Live        int
	Hash        uint64
	Elapsed     time.Duration
	Actors      []ActorSummary
	FiredByKind map[string]int
}

// Run plays script against world until the script ends or ctx is cancelled.
// A tick error stops the run; the summary covers the ticks committed so far.
func Run(ctx context.Context, world *combat.World, script config.Script, opts RunOptions) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dt := opts.Dt
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	debug := core.DebugNone
	if opts.Debug || script.Debug {
		debug = core.DebugBasic
	}

	sum := Summary{FiredByKind: make(map[string]int)}
	start := time.Now()
	total := script.Ticks()
	logger.Info("run started", "script", script.Name, "ticks", total, "actors", len(world.Actors()))

	var runErr error
	for tick := range total {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		in := core.NewTickInput(dt)
		in.Debug = debug
		in.Viewport = WorldView{}
		for _, as := range script.Actors {
			seg, ok := as.At(tick)
			if !ok {
				continue
			}
			id := core.ActorID(as.Actor)
			a, found := world.Actor(id)
			if !found {
				continue
			}
			in.SetActor(id, FrameFor(seg, a.Stats.ControllerDriven))
		}

		r, err := world.Step(in)
		if err != nil {
			runErr = err
			break
		}
		sum.add(r, world)
		for _, o := range opts.Observers {
			o.Observe(r)
		}
	}

	sum.Elapsed = time.Since(start)
	snap := world.Snapshot()
	sum.Hash = snap.Hash()
	for _, a := range world.Actors() {
		as := ActorSummary{
			ID:       a.ID,
			Name:     a.Name,
			Fired:    a.Stats.Fired,
			Position: a.Position,
			Facing:   a.Facing,
		}
		if a.Weapon != nil {
			as.Weapon = a.Weapon.Name
		}
		sum.Actors = append(sum.Actors, as)
	}

	if runErr != nil {
		logger.Error("run stopped", "tick", sum.Ticks, "error", runErr)
		return sum, runErr
	}
	logger.Info("run finished", "ticks", sum.Ticks, "projectiles", sum.Projectiles, "elapsed", sum.Elapsed)
	return sum, nil
}

func (s *Summary) add(r combat.StepResult, world *combat.World) {
	s.Ticks++
	s.Shots += len(r.Shots)
	s.Projectiles += r.Spawned()
	s.Retired += len(r.Retired)
	s.AimMisses += len(r.AimMisses)
	s.Live = r.Live
	for _, shot := range r.Shots {
		if a, ok := world.Actor(shot.Actor); ok && a.Weapon != nil {
			s.FiredByKind[a.Weapon.Kind()] += len(shot.Projectiles)
		}
	}
}

// FrameFor converts a script segment into the input frame of one actor.
// Keyboard actors press a direction key for the sign of each move axis.
func FrameFor(seg config.Segment, controller bool) core.InputFrame {
	var f core.InputFrame
	move := config.Vec(seg.Move)

	if controller {
		f.MoveAxis = move
		f.MoveActive = len(seg.Move) > 0
		if len(seg.Look) > 0 {
			f.LookAxis = config.Vec(seg.Look)
			f.LookActive = true
		}
		f.ControllerShoot = seg.Fire
		return f
	}

	f.Left = move.X < 0
	f.Right = move.X > 0
	f.Up = move.Y < 0
	f.Down = move.Y > 0
	if len(seg.Aim) > 0 {
		f.Pointer = config.Vec(seg.Aim)
		f.PointerActive = true
	}
	f.Shoot = seg.Fire
	return f
}
