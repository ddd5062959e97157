package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/config"
	"github.com/vovakirdan/laserdodge/internal/geom"
	"github.com/vovakirdan/laserdodge/internal/session"
	"github.com/vovakirdan/laserdodge/internal/sim"
)

// touchID identifies the single mouse-driven touch point.
const touchID = "mouse"

// playTop is the first playfield row; row 0 is the HUD.
const playTop = 1

// zapFlashSeconds is how long a zap marker stays on screen.
const zapFlashSeconds = 0.4

// flash is a fading zap marker.
type flash struct {
	x, y int
	ttl  float64
}

// Model is the Bubble Tea model for previewing a level. The terminal is
// mapped onto the simulation viewport with one column per pixel and
// cell_aspect pixels per row, so circles stay round on screen.
type Model struct {
	session *session.Session
	store   *Saver
	cfg     config.Config
	screen  *Screen
	prog    progress.Model

	width  int
	height int

	mouseDown bool
	mouseX    int
	mouseY    int

	flashes  []flash
	paused   bool
	saved    bool
	quitting bool
}

// NewModel creates a preview model for the given level.
func NewModel(level *sim.Level, store *Saver, cfg config.Config, width, height int) (Model, error) {
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = config.Default().Runtime.TickRate
	}

	m := Model{
		store:  store,
		cfg:    cfg,
		width:  width,
		height: height,
		screen: NewScreen(width, max(height-1, 0)),
	}

	w, h := m.viewportSize()
	s, err := session.New(level, cfg.Session, w, h)
	if err != nil {
		return Model{}, err
	}
	m.session = s

	m.prog = progress.New(progress.WithDefaultGradient())
	m.prog.Width = width

	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Runtime.TickRate)
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
	switch msg.String() {
	case "ctrl+c", "q":
		m.finishAbandoned()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case " ":
		// Preview laser motion without committing a touch.
		m.session.Runtime().StartMotion()
	case "p", "esc":
		if !m.session.Over() {
			m.paused = !m.paused
		}
	case "r":
		if m.session.Over() {
			m.session.Restart()
			m.flashes = nil
			m.paused = false
			m.saved = false
		}
	}

	return m, nil
}

// handleMouse tracks the terminal mouse as the preview touch point.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.mouseDown = true
			m.mouseX, m.mouseY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.mouseDown {
			m.mouseX, m.mouseY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		m.mouseDown = false
	}

	return m, nil
}

// handleResize maps the new terminal size onto the viewport. Charge and
// firing state survive a resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.prog.Width = msg.Width

	w, h := m.viewportSize()
	m.session.SetViewport(w, h)

	return m, nil
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.session.Over() {
		dt := 1.0 / float64(m.cfg.Runtime.TickRate)
		frame := m.session.Advance(dt, m.touches())

		for _, z := range frame.Zaps {
			cx, cy := m.cellAt(z.Pos)
			m.flashes = append(m.flashes, flash{x: cx, y: cy, ttl: zapFlashSeconds})
		}
		m.decayFlashes(dt)

		if m.session.Over() {
			m.saveAttempt()
		}
	}

	return m, tickCmd(m.cfg.Runtime.TickRate)
}

// touches returns the active touch set: the mouse while held inside the
// playfield.
func (m Model) touches() []session.Touch {
	if !m.mouseDown || m.mouseY < playTop || m.mouseY > m.screen.Height()-1 {
		return nil
	}
	return []session.Touch{{ID: touchID, Pos: m.cellCenter(m.mouseX, m.mouseY)}}
}

// decayFlashes ages zap markers and drops the expired ones.
func (m *Model) decayFlashes(dt float64) {
	alive := m.flashes[:0]
	for _, f := range m.flashes {
		f.ttl -= dt
		if f.ttl > 0 {
			alive = append(alive, f)
		}
	}
	m.flashes = alive
}

// aspect returns the configured cell height/width ratio.
func (m Model) aspect() float64 {
	if a := m.cfg.Preview.CellAspect; a > 0 {
		return a
	}
	return config.Default().Preview.CellAspect
}

// viewportSize returns the playfield size in pixels.
func (m Model) viewportSize() (w, h float64) {
	playH := m.height - 2
	if playH < 0 {
		playH = 0
	}
	return float64(m.width), float64(playH) * m.aspect()
}

// cellCenter returns the pixel position at the middle of a playfield cell.
func (m Model) cellCenter(cx, cy int) mgl64.Vec2 {
	return mgl64.Vec2{float64(cx) + 0.5, (float64(cy-playTop) + 0.5) * m.aspect()}
}

// cellAt maps a pixel position to its screen cell.
func (m Model) cellAt(v mgl64.Vec2) (cx, cy int) {
	return int(v.X()), playTop + int(v.Y()/m.aspect())
}

// saveAttempt persists the current attempt once, best effort.
func (m *Model) saveAttempt() {
	if m.saved || m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, preview continues regardless
	m.store.Save(m.session.Summary())
	m.saved = true
}

// finishAbandoned records a quit mid-attempt as an abandoned outcome.
// Attempts where play never started are not worth recording.
func (m *Model) finishAbandoned() {
	if m.session.Over() || !m.session.Runtime().MotionStarted() {
		return
	}
	m.session.Abandon()
	m.saveAttempt()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".laserdodge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Runtime().Level().ID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, preview continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	bar := m.prog.ViewAs(m.session.Runtime().Fill())
	return RenderScreen(m.screen) + "\n" + bar
}

// draw repaints the screen buffer from the runtime's current snapshots.
func (m Model) draw() {
	s := m.screen
	s.Clear()

	m.drawHUD()

	rt := m.session.Runtime()
	for _, lv := range rt.Lasers() {
		m.drawLaser(lv)
	}
	for _, bv := range rt.Buttons() {
		m.drawButton(bv)
	}

	for _, f := range m.flashes {
		s.SetCell(f.x, f.y, '✖', ColorBrightRed)
	}
	if len(m.touches()) > 0 {
		s.SetCell(m.mouseX, m.mouseY, '✛', ColorBrightWhite)
	}

	m.drawOverlay()
}

// drawHUD paints the status row.
func (m Model) drawHUD() {
	s := m.screen
	level := m.session.Runtime().Level()
	name := level.Name
	if name == "" {
		name = level.ID
	}
	s.DrawTextColor(1, 0, name, ColorBrightWhite)

	hearts := strings.Repeat("♥", max(m.session.Lives(), 0))
	info := fmt.Sprintf("zaps %d  %5.1fs", m.session.Zaps(), m.session.Duration())
	x := s.Width() - len([]rune(info)) - len([]rune(hearts)) - 3
	s.DrawTextColor(x, 0, hearts, ColorBrightRed)
	s.DrawTextColor(x+len([]rune(hearts))+2, 0, info, ColorGray)
}

// drawLaser paints one laser: its beam from the collision polygon when
// firing, and its endpoints always, so idle lasers stay visible.
func (m Model) drawLaser(lv sim.LaserView) {
	c := ColorFor(lv.Color)
	if c == ColorDefault {
		c = ColorRed
	}
	if lv.Firing {
		m.fillPolygon(lv.Beam, '▒', c)
	}
	for _, e := range lv.Endpoints {
		cx, cy := m.cellAt(e)
		m.screen.SetCell(cx, cy, '◆', brighten(c))
	}
}

// drawButton paints one button as a disc sized by its hit extent, shaded
// by charge.
func (m Model) drawButton(bv sim.ButtonView) {
	c := ColorFor(bv.Color)
	if c == ColorDefault {
		c = ColorCyan
	}
	if bv.Touching || bv.Full {
		c = brighten(c)
	}
	glyph := chargeGlyph(bv.Charge)

	cx, cy := m.cellAt(bv.Anchor)
	r := bv.Extent
	if r <= 0 {
		m.screen.SetCell(cx, cy, glyph, c)
		return
	}

	aspect := m.aspect()
	x0 := max(int(math.Floor(bv.Anchor.X()-r)), 0)
	x1 := min(int(math.Ceil(bv.Anchor.X()+r)), m.screen.Width()-1)
	y0 := max(playTop+int(math.Floor((bv.Anchor.Y()-r)/aspect)), playTop)
	y1 := min(playTop+int(math.Ceil((bv.Anchor.Y()+r)/aspect)), m.screen.Height()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := m.cellCenter(x, y).Sub(bv.Anchor)
			if d.Dot(d) <= r*r {
				m.screen.SetCell(x, y, glyph, c)
			}
		}
	}

	if bv.Required {
		m.screen.SetCell(cx, cy, '◉', c)
	}
}

// fillPolygon rasterizes a pixel-space polygon by testing the center of
// every cell its bounds cover.
func (m Model) fillPolygon(pg geom.Polygon, r rune, c Color) {
	lo, hi, ok := pg.Bounds()
	if !ok {
		return
	}

	aspect := m.aspect()
	x0 := max(int(math.Floor(lo.X())), 0)
	x1 := min(int(math.Ceil(hi.X())), m.screen.Width()-1)
	y0 := max(playTop+int(math.Floor(lo.Y()/aspect)), playTop)
	y1 := min(playTop+int(math.Ceil(hi.Y()/aspect)), m.screen.Height()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if pg.Contains(m.cellCenter(x, y)) {
				m.screen.SetCell(x, y, r, c)
			}
		}
	}
}

// chargeGlyph shades a button by how charged it is.
func chargeGlyph(charge float64) rune {
	switch {
	case charge >= 1:
		return '█'
	case charge >= 0.66:
		return '▓'
	case charge >= 0.33:
		return '▒'
	default:
		return '░'
	}
}

// drawOverlay paints the terminal-state message box, if any.
func (m Model) drawOverlay() {
	switch {
	case m.session.Outcome() == session.OutcomeWin:
		m.drawCenteredMessage("LEVEL COMPLETE",
			fmt.Sprintf("%.1fs, %d zaps  |  R restart, Q quit", m.session.Duration(), m.session.Zaps()))
	case m.session.Outcome() == session.OutcomeLoss:
		m.drawCenteredMessage("ZAPPED OUT",
			fmt.Sprintf("Fill %d%%  |  R restart, Q quit", int(m.session.Runtime().Fill()*100)))
	case m.paused:
		m.drawCenteredMessage("PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (m Model) drawCenteredMessage(title, subtitle string) {
	s := m.screen
	w := s.Width()
	h := s.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	s.DrawRect(boxX, boxY, boxW, boxH, ' ')
	s.DrawBox(boxX, boxY, boxW, boxH)

	titleX := boxX + (boxW-len(title))/2
	s.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	s.DrawText(subtitleX, boxY+3, subtitle)
}

// Run starts the preview host for one level.
func Run(level *sim.Level, store *Saver, cfg config.Config, width, height int) error {
	model, err := NewModel(level, store, cfg, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse press/drag is the preview touch point
	)

	_, err = p.Run()
	return err
}
