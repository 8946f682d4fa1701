package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/logging"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/milk9111/firstperson/sim"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	minZoom = 4.0
	maxZoom = 60.0
)

// Game draws the session from above: x to the right, z up the screen.
type Game struct {
	frames int

	session *sim.Session
	input   *input.Ebiten
	watcher *prefabs.Watcher
	log     zerolog.Logger

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	zoom    float64
	lastEvt string
}

func NewGame(session *sim.Session, in *input.Ebiten, watcher *prefabs.Watcher) *Game {
	g := &Game{
		session: session,
		input:   in,
		watcher: watcher,
		log:     logging.Component("game"),
		zoom:    16,
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.zoom = common.Clamp(g.zoom*math.Pow(1.1, dy), minZoom, maxZoom)
	}

	g.input.Poll()
	for _, e := range g.session.Step(1 / float64(ebiten.TPS())) {
		if e.Kind != controller.EventFootstep {
			g.lastEvt = e.Kind.String()
		}
	}
	if g.session.Controller.State().Dead && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.input.Reset()
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) respawn() {
	g.session.Respawn()
	g.lastEvt = "respawn"
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.session.Reload(); err != nil {
				g.log.Error().Err(err).Str("file", name).Msg("reload failed")
				continue
			}
			g.log.Info().Str("file", name).Msg("prefabs reloaded")
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1b, 0x1f, 0x24, 0xff})

	st := g.session.Controller.State()
	camX, camZ := st.Position.X, st.Position.Z
	project := func(p r3.Vec) (float32, float32) {
		return float32((p.X-camX)*g.zoom + baseWidth/2), float32(-(p.Z-camZ)*g.zoom + baseHeight/2)
	}

	for i, e := range g.session.Colliders {
		shape, layer, ok := g.session.World.Collider(e)
		if !ok {
			continue
		}
		clr := g.session.Level.Colliders[i].Color.Or(layerColor(layer))
		switch s := shape.(type) {
		case physics.Box:
			x0, y0 := project(r3.Vec{X: s.Min.X, Z: s.Max.Z})
			x1, y1 := project(r3.Vec{X: s.Max.X, Z: s.Min.Z})
			vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
			vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colornames.Black, false)
		case physics.Sphere:
			x, y := project(s.Center)
			vector.DrawFilledCircle(screen, x, y, float32(s.Radius*g.zoom), clr, true)
		case physics.Capsule:
			x0, y0 := project(s.Bottom)
			x1, y1 := project(s.Top)
			w := float32(2 * s.Radius * g.zoom)
			vector.StrokeLine(screen, x0, y0, x1, y1, w, clr, true)
			vector.DrawFilledCircle(screen, x0, y0, w/2, clr, true)
			vector.DrawFilledCircle(screen, x1, y1, w/2, clr, true)
		}
	}

	view := g.session.Rig.View
	px, py := project(st.Position)
	if view.GrappleLine {
		tx, ty := project(view.GrappleTarget)
		vector.StrokeLine(screen, px, py, tx, ty, 2, colornames.Lightgrey, true)
	}

	body := colornames.Orange
	switch {
	case st.Dead:
		body = colornames.Darkred
	case st.Mode == controller.ModeSlide:
		body = colornames.Gold
	case st.Crouching:
		body = colornames.Peru
	}
	vector.DrawFilledCircle(screen, px, py, float32(g.session.Controller.Config().CapsuleRadius*g.zoom), body, true)
	fx, fy := project(r3.Add(st.Position, common.YawForward(st.Yaw)))
	vector.StrokeLine(screen, px, py, fx, fy, 2, colornames.White, true)

	ebitenutil.DebugPrint(screen, g.hud(st))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud(st controller.State) string {
	msg := fmt.Sprintf("Frames: %d    FPS: %.2f\n", g.frames, ebiten.ActualFPS())
	msg += fmt.Sprintf("mode %-6s grounded %-5t speed %5.2f  height %.2f  fov %.0f\n",
		st.Mode, st.Grounded, st.MeasuredSpeed, st.Height, st.FOV)
	msg += fmt.Sprintf("pos %.2f %.2f %.2f  yaw %.0f pitch %.0f  eye %.2f (%s)\n",
		st.Position.X, st.Position.Y, st.Position.Z, st.Yaw, st.Pitch,
		g.session.Rig.EyeHeight(), g.session.Rig.Bob.Clip())
	msg += fmt.Sprintf("health %.0f/%.0f  grapple cooldown %.1f  last event %s\n",
		g.session.Health.Current, g.session.Health.Max, st.GrappleCooldown, g.lastEvt)
	if st.Dead {
		msg += "dead: press R to respawn\n"
	}
	return msg
}

func layerColor(layer physics.LayerMask) color.Color {
	if layer.Has(physics.LayerGrapple) {
		return colornames.Steelblue
	}
	return colornames.Dimgray
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
