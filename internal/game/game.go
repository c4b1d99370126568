package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Spawn-Sense/internal/config"
	"github.com/Garsondee/Spawn-Sense/internal/overlay"
	"github.com/Garsondee/Spawn-Sense/internal/scene"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

const (
	flySpeed  = 0.4  // world units per tick
	turnSpeed = 0.03 // radians per tick
	fastScale = 4    // shift multiplier
	rangeStep = 5
)

// Options configures a Game.
type Options struct {
	Spawns []overlay.SpawnPoint
	Store  *config.Store
	// Reloaded, if set, signals that Store was reloaded from disk.
	Reloaded <-chan struct{}
	Seed     int64
	Logger   *slog.Logger
	// ViewWidth and ViewHeight size the 3D view; the diagnostics panel is
	// added to the right.
	ViewWidth  int
	ViewHeight int
	// Supersample renders the scene at 1/Supersample resolution and scales
	// it up on output. Zero means 1.
	Supersample float64
}

// Game hosts the overlay in an ebiten window: a fly camera over a ground
// grid, one marker per spawn point and the overlay's label boxes.
type Game struct {
	width  int
	height int
	viewW  int

	store    *config.Store
	reloaded <-chan struct{}
	logger   *slog.Logger
	bindings []modeBinding

	cam      *scene.FlyCamera
	markers  *scene.MarkerSet
	overlay  *overlay.Overlay
	diag     *overlay.DiagLog
	commands []overlay.DrawCommand

	face       *text.GoXFace
	lineHeight float64
	hudBuf     *ebiten.Image
	showHUD    bool
	closed     bool
}

// New builds the scene and initializes the overlay with opts.Spawns.
func New(opts Options) (*Game, error) {
	if opts.Store == nil {
		return nil, errors.New("game: nil settings store")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ViewWidth <= 0 || opts.ViewHeight <= 0 {
		opts.ViewWidth, opts.ViewHeight = 1280, 720
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}

	bindings, err := parseBindings(opts.Store.Current().Keys)
	if err != nil {
		return nil, err
	}

	measurer := overlay.NewFontMeasurer(basicfont.Face7x13)
	diag := overlay.NewDiagLog(opts.Logger)
	markers := scene.NewMarkerSet()

	cam := scene.NewFlyCamera(mgl64.Vec3{0, 12, 40},
		float64(opts.ViewWidth)/opts.Supersample, float64(opts.ViewHeight)/opts.Supersample)
	cam.Scale = opts.Supersample
	cam.LookAt(mgl64.Vec3{0, 0, 0})

	g := &Game{
		width:      opts.ViewWidth + logPanelWidth,
		height:     opts.ViewHeight,
		viewW:      opts.ViewWidth,
		store:      opts.Store,
		reloaded:   opts.Reloaded,
		logger:     opts.Logger,
		bindings:   bindings,
		cam:        cam,
		markers:    markers,
		diag:       diag,
		face:       text.NewGoXFace(basicfont.Face7x13),
		lineHeight: measurer.LineHeight(),
		showHUD:    true,
	}
	g.overlay = overlay.New(
		overlay.WithRand(rand.New(rand.NewSource(opts.Seed))), // #nosec G404 -- cosmetic colours
		overlay.WithMarkers(markers),
		overlay.WithReporter(diag),
		overlay.WithMeasurer(measurer),
	)
	g.overlay.Initialize(opts.Spawns)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	ebiten.SetWindowClosingHandled(true)
	return g, nil
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}
	g.pollReload()

	events := g.handleInput()
	if err := g.overlay.Tick(events); err != nil {
		return err
	}
	g.commands = g.overlay.Render(g.cam, g.store.Current().Overlay())
	return nil
}

// Close tears the overlay down. It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.overlay.Teardown()
	g.commands = nil
}

// pollReload picks up settings reloaded from disk. New key bindings that do
// not parse are reported and the old ones kept.
func (g *Game) pollReload() {
	if g.reloaded == nil {
		return
	}
	select {
	case <-g.reloaded:
	default:
		return
	}
	bindings, err := parseBindings(g.store.Current().Keys)
	if err != nil {
		g.diag.Report("config", "keys", err.Error())
		return
	}
	g.bindings = bindings
	g.diag.Report("config", "reload", "Settings reloaded from "+g.store.Path())
}

// handleInput moves the camera, applies settings toggles and returns the
// render-mode direction events for this tick (edge-triggered).
func (g *Game) handleInput() []overlay.Direction {
	speed, turn := flySpeed, turnSpeed
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed *= fastScale
	}
	var fwd, right, up float64
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		fwd += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		fwd -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		right += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		right -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		up += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		up -= speed
	}
	g.cam.Move(fwd, right, up)

	var dyaw, dpitch float64
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		dyaw += turn
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		dyaw -= turn
	}
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		dpitch += turn
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		dpitch -= turn
	}
	g.cam.Turn(dyaw, dpitch)

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyLabels()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.changeSettings("enable_overlay", func(s *config.Settings) { s.EnableOverlay = !s.EnableOverlay })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.changeSettings("enable_birdseye", func(s *config.Settings) { s.EnableBirdseye = !s.EnableBirdseye })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.changeSettings("enable_opacity", func(s *config.Settings) { s.EnableOpacity = !s.EnableOpacity })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.changeSettings("render_range", func(s *config.Settings) { s.RenderRange += rangeStep })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.changeSettings("render_range", func(s *config.Settings) { s.RenderRange -= rangeStep })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.changeSettings("opacity_range", func(s *config.Settings) { s.OpacityRange += rangeStep })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.changeSettings("opacity_range", func(s *config.Settings) { s.OpacityRange -= rangeStep })
	}

	return directions(g.bindings, inpututil.IsKeyJustPressed)
}

// changeSettings updates the store and persists it.
func (g *Game) changeSettings(key string, fn func(*config.Settings)) {
	s := g.store.Update(fn)
	g.diag.Report("config", key, settingsSummary(s))
	if err := g.store.Save(); err != nil {
		g.logger.Warn("saving settings", "path", g.store.Path(), "err", err)
	}
}

func (g *Game) copyLabels() {
	if len(g.commands) == 0 {
		return
	}
	if err := setClipboardText(labelsText(g.commands)); err != nil {
		g.diag.Report("input", "clipboard", "Copy failed: "+err.Error())
		return
	}
	g.diag.Report("input", "clipboard", fmt.Sprintf("Copied %d labels", len(g.commands)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 16, B: 20, A: 255})

	g.drawGround(screen)
	g.drawMarkers(screen)
	g.drawSpawnLabels(screen)

	drawDiagPanel(screen, g.diag.Recent(), g.viewW, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawHUD renders mode, settings and key hints in the bottom-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.store.Current()
	c := g.overlay.Cycler()
	st := g.overlay.Stats()
	k := s.Keys

	lines := []string{
		fmt.Sprintf("Mode: %s [%s]", c.Mode().Name, c.Selected()),
		fmt.Sprintf("  %s/%s mode  %s/%s zone", k.PreviousMode, k.NextMode, k.PreviousSubMode, k.NextSubMode),
		settingsSummary(s),
		fmt.Sprintf("Labels: %d  behind: %d  far: %d  filtered: %d", st.Drawn, st.Behind, st.OutOfRange, st.Filtered),
		fmt.Sprintf("Cam: %.1f, %.1f, %.1f", g.cam.Pos.X(), g.cam.Pos.Y(), g.cam.Pos.Z()),
		"O=overlay B=birdseye F=fade  -/= range  ,/. opacity",
		"WASD/QE=fly IJKL=look shift=fast  C=copy  H=HUD",
	}

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(g.height/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 12, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 110, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func settingsSummary(s config.Settings) string {
	return fmt.Sprintf("Overlay: %s  range %.0f  opacity %s %.0f  birdseye %s x%.2f",
		onOff(s.EnableOverlay), s.RenderRange,
		onOff(s.EnableOpacity), s.OpacityRange,
		onOff(s.EnableBirdseye), s.BirdseyeMultiplier)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
