package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/ecs/render"
	"github.com/milk9111/rollerball/prefabs"
	"github.com/milk9111/rollerball/scene"
)

type Game struct {
	scene    *scene.Scene
	keyboard *KeyboardSource
	renderer *render.Renderer
	watcher  *prefabs.Watcher
	hud      *HUD
	pauseUI  *ebitenui.UI

	levelName string
	paused    bool
	wasPause  bool
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	inputSpec, err := prefabs.LoadInputSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	keyboard, err := NewKeyboardSource(inputSpec)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	sc, err := scene.New(levelName, keyboard)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		scene:     sc,
		keyboard:  keyboard,
		renderer:  render.NewRenderer(),
		levelName: levelName,
	}
	g.renderer.Debug = debug
	g.hud = NewHUD()
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	pause := g.keyboard.Poll().Pause
	if pause && !g.wasPause {
		g.paused = !g.paused
	}
	g.wasPause = pause

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Restart()
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.scene.Update(dt)

	msg, done := g.scene.Finished()
	g.hud.Update(g.scene.Stats(), msg, done)
	g.hud.UI.Update()
	return nil
}

func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Drain() {
		if err := g.scene.ApplyChange(change); err != nil {
			log.Error().Err(err).Str("file", change.Name).Msg("reload failed")
		}
	}
	select {
	case err := <-g.watcher.Errors:
		log.Warn().Err(err).Msg("prefab watcher")
	default:
	}
}

// Reload rebuilds the scene from the level, dropping all progress.
func (g *Game) Reload() error {
	sc, err := scene.New(g.levelName, g.keyboard)
	if err != nil {
		return err
	}
	g.scene = sc
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene.World)
	g.hud.UI.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
