package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"

	"github.com/milk9111/locomotion/behavior"
	"github.com/milk9111/locomotion/config"
	"github.com/milk9111/locomotion/controller"
	"github.com/milk9111/locomotion/hsm"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/levels"
	"github.com/milk9111/locomotion/sensor"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	playerWidth  = 32
	playerHeight = 64

	// Physics runs on a fixed step decoupled from the render tick.
	stepDt = 1.0 / 120.0

	transitionFade = 0.06
)

// sampleHolder replays the frame's input sample so the controller and the
// behavior tree both see the exact same values.
type sampleHolder struct {
	sample input.Sample
}

func (h *sampleHolder) Read() input.Sample { return h.sample }

type Game struct {
	frames int

	space   *cp.Space
	body    *cp.Body
	shape   *cp.Shape
	level   *Level
	gravity controller.GravityProvider

	ctrl    *controller.Controller
	ceiling *sensor.Ceiling

	tree *behavior.Tree
	ctx  *behavior.Context

	keyboard *input.Keyboard
	held     *sampleHolder

	configPath string
	scriptPath string
	watcher    *config.Watcher

	accumulator float64
	animation   string
	landFlash   float64

	debug bool
	hud   *debugHUD
}

func NewGame(levelPath, configPath, scriptPath string, debug bool) *Game {
	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			log.Printf("failed to load config %s: %v", configPath, err)
		} else {
			cfg = c
		}
	}

	lvl, err := ParseLevel(levels.Arena)
	if err != nil {
		log.Fatalf("embedded arena is broken: %v", err)
	}
	if levelPath != "" {
		l, err := LoadLevel(levelPath)
		if err != nil {
			log.Printf("failed to load level %s: %v", levelPath, err)
		} else {
			lvl = l
		}
	}

	g := &Game{
		level:      lvl,
		keyboard:   input.NewKeyboard(),
		held:       &sampleHolder{},
		configPath: configPath,
		scriptPath: scriptPath,
		debug:      debug,
	}

	g.space = cp.NewSpace()
	lvl.Build(g.space)

	g.body = g.space.AddBody(cp.NewBody(1, cp.INFINITY))
	g.body.SetPosition(cp.Vector{X: lvl.Spawn.X, Y: lvl.Spawn.Y})
	g.shape = g.space.AddShape(cp.NewBox(g.body, playerWidth, playerHeight, 0))
	g.shape.SetFriction(0)
	g.shape.SetElasticity(0)

	ground := sensor.New(g.space, g.body, playerHeight/2+6)
	ground.Ignore(g.shape)

	up := cp.Vector{X: 0, Y: -1}
	g.ceiling = sensor.NewCeiling(g.body, up)
	g.gravity = lvl.GravityProvider(cfg.Controller.Gravity)

	g.ctrl = controller.New(cfg.Controller, ground)
	g.ctrl.SetInput(g.held)
	g.ctrl.SetCeilingDetector(g.ceiling)
	g.ctrl.SetFrame(controller.BodyFrame{Body: g.body})
	g.ctrl.SetGravityProvider(g.gravity)
	g.ctrl.AddListener(g)

	g.ctx = &behavior.Context{
		Animation: func(name string) { g.animation = name },
	}
	g.buildTree()

	if configPath != "" {
		dirs := []string{filepath.Dir(configPath)}
		if scriptPath != "" && filepath.Dir(scriptPath) != dirs[0] {
			dirs = append(dirs, filepath.Dir(scriptPath))
		}
		w, err := config.NewWatcher(dirs...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.hud = newDebugHUD()
	return g
}

func (g *Game) buildTree() {
	var opts []behavior.Option
	if g.scriptPath != "" {
		s, err := behavior.LoadScriptFile(g.scriptPath)
		if err != nil {
			log.Printf("failed to load script %s: %v", g.scriptPath, err)
		} else {
			opts = append(opts, behavior.WithScript("idle", s))
		}
	}
	g.tree = behavior.NewTree(opts...)
	g.tree.Machine.SetPhases(nil, func() hsm.Phase {
		return hsm.NewEasedPhase(transitionFade, ease.OutQuad)
	})
	g.tree.Machine.Start(g.ctx)
}

func (g *Game) Update() error {
	g.frames++
	frameDt := 1.0 / float64(ebiten.TPS())

	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.debug = !g.debug
	}

	g.held.sample = g.keyboard.Read()
	g.ctrl.Sample()

	g.accumulator += frameDt
	for g.accumulator >= stepDt {
		vel := g.ctrl.Step(stepDt)
		g.body.SetVelocityVector(vel)
		g.space.Step(stepDt)
		g.ceiling.Update()
		g.accumulator -= stepDt
	}

	g.ctx.Input = g.held.sample
	g.ctx.Grounded = g.ctrl.IsGrounded()
	g.ctx.Movement = g.ctrl.State()
	g.ctx.Velocity = g.ctrl.Velocity()
	g.tree.Machine.Tick(g.ctx, frameDt)

	if g.landFlash > 0 {
		g.landFlash -= frameDt
	}

	if g.debug {
		g.hud.update(g)
	}
	return nil
}

// pollReload drains the watcher without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if strings.HasSuffix(path, ".tengo") {
				log.Printf("reloading script %s", path)
				g.buildTree()
				continue
			}
			cfg, err := config.Load(g.configPath)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			g.ctrl.SetTuning(cfg.Controller)
			g.gravity = g.level.GravityProvider(cfg.Controller.Gravity)
			g.ctrl.SetGravityProvider(g.gravity)
			log.Printf("reloaded tuning from %s", path)
		case err := <-g.watcher.Errors:
			log.Printf("watcher error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    %s", g.frames, ebiten.ActualFPS(), g.ctrl.State()))
	g.level.Draw(screen)

	pos := g.body.Position()
	clr := colornames.Crimson
	if g.tree.Machine.InFlight() {
		clr = colornames.Gold
	} else if g.landFlash > 0 {
		clr = colornames.Coral
	}
	ebitenutil.DrawRect(screen, pos.X-playerWidth/2, pos.Y-playerHeight/2, playerWidth, playerHeight, clr)

	if g.debug {
		g.hud.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// OnJump implements controller.Listener.
func (g *Game) OnJump(momentum cp.Vector) {}

// OnLand implements controller.Listener.
func (g *Game) OnLand(momentum cp.Vector) {
	g.landFlash = 0.15
}
