package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var (
	colorBackground = colornames.Midnightblue
	colorSolid      = color.NRGBA(colornames.Slategray)
	colorWater      = colornames.Steelblue
	colorFish       = colornames.Orange
	colorRay        = colornames.Crimson
	stateColors     = map[locomotion.State]color.RGBA{
		locomotion.Locomoting: colornames.Limegreen,
		locomotion.Wall:       colornames.Goldenrod,
		locomotion.Hang:       colornames.Mediumpurple,
		locomotion.Falling:    colornames.Tomato,
		locomotion.Flying:     colornames.Skyblue,
		locomotion.Dead:       colornames.Dimgray,
	}
)

type Game struct {
	scene   *scene.Scene
	watcher *prefabs.Watcher
	script  string
	debug   bool
	recent  []string
	log     *slog.Logger
}

type options struct {
	Level  string
	Probe  string
	Script string
	Debug  bool
	Watch  bool
}

const recentEvents = 6

func NewGame(ctx context.Context, opts options) (*Game, error) {
	log := logger.L().With("host", "ebiten")
	s, err := scene.New(ctx, scene.Config{
		Level: opts.Level,
		Input: input.SourceFunc(keyboardFrame),
		Probe: opts.Probe,
		Log:   log,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{scene: s, script: opts.Script, debug: opts.Debug, log: log}
	if g.script != "" {
		if err := s.ReloadScript(g.script); err != nil {
			return nil, err
		}
	}
	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("prefab watcher disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func keyboardFrame(uint64) (input.Frame, error) {
	var f input.Frame
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.MoveX += 1
	}
	f.Jump = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW)
	f.Die = inpututil.IsKeyJustPressed(ebiten.KeyK)
	return f, nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	g.scene.Tick()
	for _, evt := range g.scene.Events() {
		g.recent = append(g.recent, fmt.Sprintf("%d %s %v", g.scene.CurrentTick()-1, evt.Type, evt.Entity))
	}
	if n := len(g.recent); n > recentEvents {
		g.recent = g.recent[n-recentEvents:]
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change := <-g.watcher.Events:
			g.applyChange(change)
		case err := <-g.watcher.Errors:
			g.log.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.SpecChanged:
		if filepath.Base(change.Path) != filepath.Base(g.scene.Level.Player) {
			return
		}
		if err := g.scene.ReloadPlayerPrefab(); err != nil {
			g.log.Error("reload player prefab", "path", change.Path, "err", err)
		}
	case prefabs.ScriptChanged:
		if g.script == "" || strings.TrimSuffix(filepath.Base(change.Path), ".tengo") != strings.TrimSuffix(filepath.Base(g.script), ".tengo") {
			return
		}
		if err := g.scene.ReloadScript(g.script); err != nil {
			g.log.Error("reload input script", "path", change.Path, "err", err)
		}
	}
}

// view maps the side plane (world Z right, world Y up) to screen pixels
// around the camera. Zoom is the visible height in world units.
type view struct {
	cam   mgl64.Vec3
	scale float64
}

func (v view) point(p mgl64.Vec3) (float32, float32) {
	x := (p.Z()-v.cam.Z())*v.scale + baseWidth/2
	y := baseHeight/2 - (p.Y()-v.cam.Y())*v.scale
	return float32(x), float32(y)
}

func (v view) rect(screen *ebiten.Image, center, extents mgl64.Vec3, clr color.Color) {
	x, y := v.point(center.Add(mgl64.Vec3{0, extents.Y(), -extents.Z()}))
	w := float32(2 * extents.Z() * v.scale)
	h := float32(2 * extents.Y() * v.scale)
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap := g.scene.Snapshot()
	zoom := snap.CameraZoom
	if zoom <= 0 {
		zoom = 10
	}
	v := view{cam: g.scene.CameraPosition(), scale: baseHeight / zoom}

	surface, fish := g.scene.Water()
	for _, p := range surface {
		x, y := v.point(p)
		vector.DrawFilledRect(screen, x-1, y-1, 2, 2, colorWater, false)
	}
	for _, p := range fish {
		x, y := v.point(p)
		vector.DrawFilledCircle(screen, x, y, 3, colorFish, true)
	}

	for _, solid := range g.scene.Solids() {
		if solid.Alpha <= 0 {
			continue
		}
		c := colorSolid
		c.A = uint8(math.Round(255 * solid.Alpha))
		v.rect(screen, solid.Center, solid.Extents, c)
	}

	playerColor := stateColors[snap.State]
	v.rect(screen, snap.Position, snap.Extents, playerColor)
	g.drawFacing(screen, v, snap)

	if g.debug {
		g.drawRays(screen, v)
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"tick %d  FPS %.1f\nstate %s  facing %s\nvel (%.2f, %.2f)  grounded %v wall %v ceiling %v\ntransitions %d  rejected jumps %d\nA/D move  Space jump  K die  R respawn  F3 debug",
			snap.Tick, ebiten.ActualFPS(),
			snap.State, snap.Facing,
			snap.Velocity.Z(), snap.Velocity.Y(),
			snap.Probe.Grounded, snap.Probe.TouchingWall, snap.Probe.TouchingCeiling,
			snap.Transitions, snap.Rejections))
		ebitenutil.DebugPrintAt(screen, strings.Join(g.recent, "\n"), 8, baseHeight-16*recentEvents-8)
	}
}

func (g *Game) drawFacing(screen *ebiten.Image, v view, snap scene.Snapshot) {
	dir := 0.0
	switch snap.Facing {
	case locomotion.FacingForward:
		dir = 1
	case locomotion.FacingBackward:
		dir = -1
	default:
		return
	}
	x0, y0 := v.point(snap.Position.Add(mgl64.Vec3{0, 0.5, 0}))
	x1, y1 := v.point(snap.Position.Add(mgl64.Vec3{0, 0.5, 0.6 * dir}))
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, color.White, true)
}

func (g *Game) drawRays(screen *ebiten.Image, v view) {
	for _, ray := range g.scene.ProbeRays() {
		x0, y0 := v.point(ray.Origin)
		x1, y1 := v.point(ray.Origin.Add(ray.Dir.Mul(ray.Length)))
		clr := color.Color(color.White)
		if ray.Hit {
			clr = colorRay
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, false)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.scene.Close()
}
