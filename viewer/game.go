// Package viewer is an ebiten window that steps a loaded scene and draws
// its bodies, fixtures and joints.
package viewer

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/config"
	"github.com/milk9111/rube/scene"
	"golang.org/x/image/colornames"
)

const panSpeed = 8

// LoadFunc builds a fresh scene, for the first frame and every reload.
type LoadFunc func() (*scene.Scene, error)

type Game struct {
	cfg     config.ViewerConfig
	title   string
	load    LoadFunc
	changes <-chan string

	scene  *scene.Scene
	cam    *common.Camera
	paused bool
	steps  int
	status string
}

// NewGame loads the first scene. changes may be nil; otherwise each value
// received triggers a reload.
func NewGame(cfg config.ViewerConfig, title string, load LoadFunc, changes <-chan string) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		title:   title,
		load:    load,
		changes: changes,
		cam:     common.NewCamera(cfg.Width, cfg.Height, cfg.PixelsPerMeter),
		paused:  cfg.Paused,
	}
	sc, err := load()
	if err != nil {
		return nil, err
	}
	g.scene = sc
	return g, nil
}

// Reload swaps in a newly loaded scene. A failed load keeps the current
// scene and shows the error.
func (g *Game) Reload() {
	sc, err := g.load()
	if err != nil {
		g.status = "reload failed: " + err.Error()
		log.Printf("Viewer: %s", g.status)
		return
	}
	g.scene = sc
	g.steps = 0
	g.status = "reloaded"
}

func (g *Game) Update() error {
	select {
	case _, ok := <-g.changes:
		if ok {
			g.Reload()
		} else {
			g.changes = nil
		}
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reload()
	}
	step := !g.paused || inpututil.IsKeyJustPressed(ebiten.KeyN)

	if _, dy := ebiten.Wheel(); dy != 0 {
		if dy > 0 {
			g.cam.ZoomBy(1.1)
		} else {
			g.cam.ZoomBy(1 / 1.1)
		}
	}
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += panSpeed
	}
	g.cam.Pan(dx, dy)
	g.cam.Update()

	if step && g.scene != nil {
		g.scene.Step()
		g.steps++
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	if g.scene != nil {
		drawScene(screen, g.cam, g.scene)
	}
	state := "running"
	if g.paused {
		state = "paused"
	}
	msg := fmt.Sprintf("%s  %s  step %d  zoom %.2f\nspace pause  n step  r reload  wheel zoom  arrows pan",
		g.title, state, g.steps, g.cam.Zoom)
	if g.status != "" {
		msg += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle("rube: " + g.title)
	if tps := g.scene.Settings.StepsPerSecond; tps > 0 {
		ebiten.SetTPS(tps)
	}
	return ebiten.RunGame(g)
}
