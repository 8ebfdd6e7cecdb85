package runner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '@'
	AirChar      = 'Ô'
	CoinChar     = '$'
	TrackEdge    = '║'
	LaneMark     = '┊'
	GroundChar   = '░'
	RainChar     = '╎'
	SnowChar     = '*'
	SparkChar    = '·'
	RingChar     = 'o'
	DustChar     = '.'
	SplashChar   = '°'
	StarChar     = '+'
	ShellLeft    = '('
	ShellRight   = ')'
	BorderHoriz  = '─'
	trackHalfW   = 2.5
	laneMarkX    = 1.0
	viewHalfSpan = 12.0 // World units visible either side of the camera
	viewNearZ    = 4.0  // Closest z drawn, just behind the player
	minScreenW   = 40
	minScreenH   = 16
)

// view projects world positions onto the play area, looking down the
// scroll axis from above with the far end at the top.
type view struct {
	top, bottom int // Play area rows, inclusive
	width       int
	farZ        float64
	camX        float64
	visible     core.Box // World volume that maps onto the play area
}

func newView(dst *core.Screen, farZ, camX float64) view {
	volume := core.Box{
		Min: core.V3(-viewHalfSpan, math.Inf(-1), farZ),
		Max: core.V3(viewHalfSpan, math.Inf(1), viewNearZ),
	}
	return view{
		top:     2,
		bottom:  dst.Height() - 2,
		width:   dst.Width(),
		farZ:    farZ,
		camX:    camX,
		visible: volume.Translate(core.V3(camX, 0, 0)),
	}
}

// row maps z to a screen row. ok is false outside the play area.
func (v view) row(z float64) (int, bool) {
	if z < v.farZ || z > viewNearZ {
		return 0, false
	}
	t := (z - v.farZ) / (viewNearZ - v.farZ)
	return v.top + int(math.Round(t*float64(v.bottom-v.top))), true
}

// col maps x to a screen column. ok is false outside the screen.
func (v view) col(x float64) (int, bool) {
	t := (x - v.camX + viewHalfSpan) / (2 * viewHalfSpan)
	c := int(math.Round(t * float64(v.width-1)))
	return c, c >= 0 && c < v.width
}

func (v view) plot(dst *core.Screen, p core.Vec3, r rune, c core.Color) {
	if !v.visible.Contains(p) {
		return
	}
	y, ok := v.row(p.Z())
	if !ok {
		return
	}
	x, ok := v.col(p.X())
	if !ok {
		return
	}
	dst.SetColored(x, y, r, c)
}

// span draws r across the lateral extent of a box at its z.
func (v view) span(dst *core.Screen, b core.Box, r rune, c core.Color) {
	y, ok := v.row(b.Center().Z())
	if !ok {
		return
	}
	x0, _ := v.col(b.Min.X())
	x1, _ := v.col(b.Max.X())
	for x := core.Max(x0, 0); x <= core.Min(x1, v.width-1); x++ {
		dst.SetColored(x, y, r, c)
	}
}

// Render draws the run as a top-down view with a two-line HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.session == nil || g.session.Closed() {
		return
	}

	s := g.session
	v := newView(dst, g.cfg.Spawn.Depth, g.last.CameraX)

	g.renderHUD(dst)
	g.renderTrack(dst, v)
	g.renderScenery(dst, v)
	g.renderEntities(dst, v)
	g.renderEffects(dst, v)
	g.renderPlayer(dst, v)

	if g.cfg.Weather.Particles {
		g.renderWeather(dst, v)
	}

	st := s.State()
	switch {
	case st.IsGameOver:
		sub := fmt.Sprintf("Score: %d  Distance: %dm  |  R to restart", st.Score, int(st.Distance))
		drawCenteredBox(dst, "GAME OVER", sub)
	case st.IsPaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// renderHUD draws score, distance and speed on row 0 and the active
// power-ups with their remaining seconds on row 1.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	st := s.State()

	left := fmt.Sprintf("Score: %d  Distance: %dm  Coins: %d", st.Score, int(st.Distance), st.Coins)
	dst.DrawText(1, 0, left)

	mode := s.Weather().Mode()
	right := fmt.Sprintf("%c %s  %s  x%.2f", mode.Glyph(), mode, clockText(s.Weather().TimeOfDay()), st.Speed)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	next := fmt.Sprintf(" next weather %ds ", int(math.Ceil(s.Weather().NextChange(s.Now()).Seconds())))
	effects := s.PowerUps().Effects()
	if len(effects) == 0 {
		dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
		dst.DrawText(dst.Width()-len(next)-1, 1, next)
		return
	}
	x := 1
	for _, e := range effects {
		secs := int(math.Ceil((e.ExpiresAt - s.Now()).Seconds()))
		text := fmt.Sprintf("%c %s(%d) ", e.Kind.Glyph(), e.Kind, secs)
		dst.DrawTextColored(x, 1, text, e.Kind.Color())
		x += len([]rune(text))
	}
}

// clockText formats a day phase as a 24-hour clock, midday at 0.5.
func clockText(t float64) string {
	minutes := int(t * 24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (g *Game) renderTrack(dst *core.Screen, v view) {
	half := g.cfg.Track.SegmentLength / 2
	for _, seg := range g.session.Track().Segments() {
		for y := v.top; y <= v.bottom; y++ {
			z := v.farZ + float64(y-v.top)/float64(v.bottom-v.top)*(viewNearZ-v.farZ)
			if z < seg.Z-half || z >= seg.Z+half {
				continue
			}
			for _, x := range []float64{-trackHalfW, trackHalfW} {
				if c, ok := v.col(x); ok {
					dst.SetColored(c, y, TrackEdge, core.ColorGray)
				}
			}
			for _, x := range []float64{-laneMarkX, laneMarkX} {
				if c, ok := v.col(x); ok {
					dst.SetColored(c, y, LaneMark, core.ColorGray)
				}
			}
		}
	}
}

func (g *Game) renderScenery(dst *core.Screen, v view) {
	for _, p := range g.session.Scenery().Props() {
		v.plot(dst, p.Pos, p.Kind.Glyph(), decorColor(p.Kind))
	}
}

func decorColor(k DecorationKind) core.Color {
	switch k {
	case DecorTree, DecorBush, DecorCactus:
		return core.ColorGreen
	case DecorFlower:
		return core.ColorBrightMagenta
	case DecorSnowman:
		return core.ColorBrightWhite
	case DecorLamppost:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

func (g *Game) renderEntities(dst *core.Screen, v view) {
	w := g.session.World()
	for _, o := range w.Obstacles {
		v.span(dst, o.Box(), obstacleGlyph(o), core.ColorRed)
	}
	for _, c := range w.Coins {
		v.plot(dst, c.Pos, CoinChar, core.ColorBrightYellow)
	}
	for _, p := range w.PowerUps {
		v.plot(dst, p.Pos, p.Kind.Glyph(), p.Kind.Color())
	}
}

func obstacleGlyph(o Obstacle) rune {
	switch o.Variant {
	case VariantBox:
		return '■'
	case VariantSpike:
		return '▲'
	case VariantRotating:
		// Show the bar's orientation.
		if math.Abs(math.Cos(o.Rotation)) > math.Sqrt2/2 {
			return '━'
		}
		return '┃'
	case VariantFloating:
		return '◊'
	default:
		return '?'
	}
}

func (g *Game) renderEffects(dst *core.Screen, v view) {
	now := g.session.Now()
	for _, t := range g.session.Effects().Transients() {
		switch t.Kind {
		case TransientRing:
			drawRing(dst, v, t, now)
		case TransientDust:
			v.plot(dst, t.Pos, DustChar, core.ColorWhite)
		case TransientSplash:
			v.plot(dst, t.Pos, SplashChar, core.ColorBlue)
		case TransientStar:
			v.plot(dst, t.Pos, StarChar, core.ColorBrightWhite)
		}
	}
	for _, p := range g.session.Effects().Particles() {
		v.plot(dst, p.Pos, SparkChar, core.ColorYellow)
	}
}

// drawRing draws the pickup ring growing outward as it fades.
func drawRing(dst *core.Screen, v view, t Transient, now time.Duration) {
	radius := 0.5 + 2*t.Progress(now)
	for _, d := range []core.Vec3{
		core.V3(-radius, 0, 0), core.V3(radius, 0, 0),
		core.V3(0, 0, -radius), core.V3(0, 0, radius),
	} {
		v.plot(dst, t.Pos.Add(d), RingChar, core.ColorBrightCyan)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v view) {
	p := g.session.Player()
	if p == nil {
		return
	}
	params := g.session.Params()

	glyph := PlayerChar
	if p.Airborne() {
		glyph = AirChar
	}
	color := core.ColorBrightWhite
	if params.Highlight {
		color = core.ColorBrightMagenta
	}
	v.plot(dst, p.Pos, glyph, color)

	if params.ShieldShell {
		v.plot(dst, p.Pos.Sub(core.V3(0.6, 0, 0)), ShellLeft, core.ColorBrightBlue)
		v.plot(dst, p.Pos.Add(core.V3(0.6, 0, 0)), ShellRight, core.ColorBrightBlue)
	}
}

func (g *Game) renderWeather(dst *core.Screen, v view) {
	for _, p := range g.session.Weather().Particles() {
		// Only what is close to the ground reads as weather in a top-down view.
		if p.Pos.Y() > 4 {
			continue
		}
		if p.Kind == WeatherRain {
			v.plot(dst, p.Pos, RainChar, core.ColorBlue)
		} else {
			v.plot(dst, p.Pos, SnowChar, core.ColorBrightWhite)
		}
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, strings.TrimSpace(subtitle))
}
