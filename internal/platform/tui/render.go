package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGold:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorAzure:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("93")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// gridSpacing is the distance between floor markers in world units.
const gridSpacing = 20.0

// actorGlyph picks the character for an actor from its animation strip.
func actorGlyph(f combat.FacingState) rune {
	track, flip := combat.TrackFor(f)
	switch track {
	case combat.TrackFront:
		return 'v'
	case combat.TrackBack:
		return '^'
	case combat.TrackSideFront:
		if flip == combat.FlipHorizontal {
			return '<'
		}
		return '>'
	case combat.TrackSideBack:
		if flip == combat.FlipHorizontal {
			return '{'
		}
		return '}'
	default:
		return '@'
	}
}

// drawSegment draws a world-space line. Lines with an endpoint far outside
// the view are skipped.
func drawSegment(s *core.Screen, cam Camera, from, to core.Vec2, r rune, c core.Color) {
	x0, y0, ok0 := cam.WorldToScreen(from)
	x1, y1, ok1 := cam.WorldToScreen(to)
	if !ok0 && !ok1 {
		return
	}
	limit := 4 * max(cam.Width, cam.Height)
	if core.Abs(x0) > limit || core.Abs(x1) > limit || core.Abs(y0) > limit || core.Abs(y1) > limit {
		return
	}
	s.DrawLine(x0, y0, x1, y1, r, c)
}

// DrawWorld draws actors, projectiles, barrels, diagnostic segments and the
// floor grid. Earlier layers win because lines only fill empty cells.
func DrawWorld(s *core.Screen, cam Camera, w *combat.World, player core.ActorID, segments []combat.Segment) {
	for _, a := range w.Actors() {
		x, y, ok := cam.WorldToScreen(a.Position)
		if !ok {
			continue
		}
		c := core.ColorCyan
		if a.ID == player {
			c = core.ColorGreen
		}
		s.SetColored(x, y, actorGlyph(a.Facing), c)
	}

	for _, p := range w.Projectiles() {
		if x, y, ok := cam.WorldToScreen(p.Position); ok {
			s.SetColored(x, y, '*', core.ColorOrange)
		}
	}

	for _, a := range w.Actors() {
		if a.Weapon == nil {
			continue
		}
		pose := a.Weapon.Pose
		drawSegment(s, cam, pose.Position, pose.End, '+', core.ColorWhite)
	}

	for _, seg := range segments {
		drawSegment(s, cam, seg.From, seg.To, '.', seg.Color)
	}

	drawGrid(s, cam)
}

func drawGrid(s *core.Screen, cam Camera) {
	tl, _ := cam.ScreenToWorld(core.V(0, 0))
	br, _ := cam.ScreenToWorld(core.V(float64(cam.Width-1), float64(cam.Height-1)))

	for gx := math.Floor(tl.X/gridSpacing) * gridSpacing; gx <= br.X; gx += gridSpacing {
		for gy := math.Floor(tl.Y/gridSpacing) * gridSpacing; gy <= br.Y; gy += gridSpacing {
			x, y, ok := cam.WorldToScreen(core.V(gx, gy))
			if ok && s.Get(x, y) == ' ' {
				s.SetColored(x, y, '·', core.ColorGray)
			}
		}
	}
}

// HUD describes the status line under the arena.
type HUD struct {
	Tick    uint64
	Facing  combat.FacingState
	Weapon  string
	Ammo    int
	Live    int
	Debug   core.DebugLevel
	Message string
}

// Line formats the HUD for a screen of the given width.
func (h HUD) Line(width int) string {
	track, _ := combat.TrackFor(h.Facing)
	ammo := "inf"
	if h.Ammo >= 0 {
		ammo = fmt.Sprintf("%d", h.Ammo)
	}
	line := fmt.Sprintf(" %s (%s) | %s ammo %s | live %d | tick %d | debug %s",
		h.Facing, track, h.Weapon, ammo, h.Live, h.Tick, h.Debug)
	if h.Message != "" {
		line += " | " + h.Message
	}
	if r := []rune(line); len(r) > width {
		line = string(r[:width])
	}
	return line
}
