package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/strafe/internal/arena"
	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/core"
	"github.com/vovakirdan/strafe/internal/storage"
)

const (
	// keyHoldMillis is how long a key press counts as held.
	keyHoldMillis = 250
	// defaultScale is the world width of one terminal column.
	defaultScale = 1.0
	// hudRows is the number of rows reserved below the arena.
	hudRows = 1
	// playerID is the actor driven by the local keyboard and mouse.
	playerID core.ActorID = 0
)

// Options configures an interactive arena session.
type Options struct {
	Runtime   core.RuntimeConfig
	Store     *storage.Store
	Logger    *log.Logger
	Observers []arena.Observer
	// Script drives every actor except the player, looping when it ends.
	Script *config.Script
}

// totals accumulates what the session has done so far.
type totals struct {
	ticks       int
	shots       int
	projectiles int
	retired     int
	aimMisses   int
	firedByKind map[string]int
}

// Model is the Bubble Tea model for the interactive arena.
type Model struct {
	cfg       config.ArenaConfig
	config    core.RuntimeConfig
	world     *combat.World
	loadout   *arena.Loadout
	camera    Camera
	screen    *core.Screen
	keys      *KeyState
	mapper    *KeyMapper
	store     *storage.Store
	logger    *log.Logger
	observers []arena.Observer
	script    *config.Script

	pointer       core.Vec2
	pointerActive bool
	mouseDown     bool

	debug    core.DebugLevel
	segments []combat.Segment
	live     int
	totals   *totals
	started  time.Time
	message  string
	err      error
	quitting bool
	saved    bool
}

// NewModel creates an arena session from an arena configuration.
func NewModel(cfg config.ArenaConfig, opts Options) (Model, error) {
	rc := opts.Runtime
	if rc.TickRate <= 0 {
		rc = cfg.RuntimeConfig()
	}
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		cfg:       cfg,
		config:    rc,
		screen:    core.NewScreen(rc.ScreenW, rc.ScreenH),
		camera:    NewCamera(rc.ScreenW, rc.ScreenH-hudRows, defaultScale),
		keys:      NewKeyState(HoldWindow(rc.TickRate, keyHoldMillis)),
		mapper:    NewKeyMapper(),
		store:     opts.Store,
		logger:    logger,
		observers: opts.Observers,
		script:    opts.Script,
		debug:     rc.Debug,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset builds a fresh world and clears the session counters.
func (m *Model) reset() error {
	world, err := arena.NewWorld(m.cfg, m.config,
		combat.WithLogger(m.logger),
		combat.WithParallel(m.config.Parallel),
	)
	if err != nil {
		return err
	}
	m.world = world
	m.loadout = arena.NewLoadout(m.cfg, int(playerID))
	m.totals = &totals{firedByKind: make(map[string]int)}
	m.started = time.Now()
	m.segments = nil
	m.live = 0
	m.err = nil
	m.saved = false
	m.keys.Reset()
	m.followPlayer()
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.mapper.MapKey(msg); action {
	case ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case ActionNextWeapon:
		name, err := m.loadout.Next(m.world, playerID)
		if err != nil {
			m.logger.Warn("weapon switch failed", "error", err)
			m.message = err.Error()
			break
		}
		m.logger.Debug("weapon switched", "weapon", name)
		m.message = ""

	case ActionDebug:
		m.debug = m.debug.Toggle()
		if m.debug == core.DebugNone {
			m.segments = nil
		}

	case ActionRestart:
		m.saveRun()
		m.config.Seed = time.Now().UnixNano()
		restart := m.err != nil
		if err := m.reset(); err != nil {
			m.err = err
			return m, nil
		}
		m.message = ""
		if restart {
			// The loop stopped when the previous world failed.
			return m, tickCmd(m.config.TickRate)
		}

	default:
		m.keys.Press(action)
	}

	return m, nil
}

// handleMouse tracks the pointer and the primary button.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer = core.V(float64(msg.X), float64(msg.Y))
	m.pointerActive = true

	if msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			m.mouseDown = true
		case tea.MouseActionRelease:
			m.mouseDown = false
		}
	}
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonNone {
		m.mouseDown = false
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.camera.Width = msg.Width
	m.camera.Height = max(0, msg.Height-hudRows)
	return m, nil
}

// handleTick steps the world once.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.err != nil || m.quitting {
		return m, nil
	}

	// Camera for this tick is the one the player saw when aiming.
	in := m.tickInput()
	r, err := m.world.Step(in)
	if err != nil {
		m.err = err
		m.logger.Error("tick failed", "tick", m.world.Tick(), "error", err)
		return m, nil
	}

	m.record(r)
	m.keys.Decay()
	m.followPlayer()
	return m, tickCmd(m.config.TickRate)
}

// tickInput assembles the input of every actor for the next tick.
func (m *Model) tickInput() core.TickInput {
	in := core.NewTickInput(m.config.TickDuration())
	in.Debug = m.debug
	in.Viewport = m.camera

	frame := m.keys.Frame()
	frame.Pointer = m.pointer
	frame.PointerActive = m.pointerActive
	frame.Shoot = frame.Shoot || m.mouseDown
	in.SetActor(playerID, frame)

	if m.script != nil {
		if total := m.script.Ticks(); total > 0 {
			tick := int(m.world.Tick() % uint64(total)) //#nosec G115 -- total is positive
			for _, as := range m.script.Actors {
				id := core.ActorID(as.Actor)
				if id == playerID {
					continue
				}
				a, ok := m.world.Actor(id)
				if !ok {
					continue
				}
				if seg, ok := as.At(tick); ok {
					in.SetActor(id, arena.FrameFor(seg, a.Stats.ControllerDriven))
				}
			}
		}
	}
	return in
}

func (m *Model) record(r combat.StepResult) {
	t := m.totals
	t.ticks++
	t.shots += len(r.Shots)
	t.projectiles += r.Spawned()
	t.retired += len(r.Retired)
	t.aimMisses += len(r.AimMisses)
	for _, shot := range r.Shots {
		if a, ok := m.world.Actor(shot.Actor); ok && a.Weapon != nil {
			t.firedByKind[a.Weapon.Kind()] += len(shot.Projectiles)
		}
	}
	m.live = r.Live
	m.segments = r.Segments
	for _, o := range m.observers {
		o.Observe(r)
	}
}

func (m *Model) followPlayer() {
	if a, ok := m.world.Actor(playerID); ok {
		m.camera.Center = a.Position
	}
}

// saveRun records the session in the run ledger once.
func (m *Model) saveRun() {
	if m.store == nil || m.saved || m.totals.ticks == 0 {
		return
	}
	snap := m.world.Snapshot()
	id, err := m.store.SaveRun(storage.RunRecord{
		Script:      "interactive",
		Preset:      string(m.cfg.Balance.Preset),
		Seed:        m.config.Seed,
		Ticks:       m.totals.ticks,
		Shots:       m.totals.shots,
		Projectiles: m.totals.projectiles,
		Retired:     m.totals.retired,
		AimMisses:   m.totals.aimMisses,
		Hash:        snap.Hash(),
		Elapsed:     time.Since(m.started),
		Fired:       m.totals.firedByKind,
	})
	if err != nil {
		m.logger.Warn("run not saved", "error", err)
		return
	}
	m.saved = true
	m.logger.Info("run saved", "id", id, "ticks", m.totals.ticks)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".strafe", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("arena_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the session continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// hud collects the status line for the player.
func (m *Model) hud() HUD {
	h := HUD{Tick: m.world.Tick(), Live: m.live, Debug: m.debug, Ammo: -1, Message: m.message}
	if a, ok := m.world.Actor(playerID); ok {
		h.Facing = a.Facing
		if a.Weapon != nil {
			h.Weapon = a.Weapon.Name
			h.Ammo = a.Weapon.Stats.Ammo
		}
	}
	if m.err != nil {
		h.Message = "stopped: " + m.err.Error() + " (r to restart)"
	}
	return h
}

func (m *Model) draw() {
	m.screen.Clear()
	DrawWorld(m.screen, m.camera, m.world, playerID, m.segments)
	if m.screen.Height() > 0 {
		m.screen.DrawText(0, m.screen.Height()-1, m.hud().Line(m.screen.Width()), core.ColorGray)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for an arena session.
func Run(cfg config.ArenaConfig, opts Options) error {
	model, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aiming needs motion without buttons
	)

	_, err = p.Run()
	return err
}
