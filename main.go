package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/levels"
	"github.com/milk9111/rollerball/prefabs"
)

var CLI struct {
	Debug   bool   `help:"Enable debug logging and the debug overlay."`
	Level   string `help:"Level name in levels/ (basename, .json optional)." default:"level1"`
	Monitor bool   `help:"Use the base monitor instead of the primary one." short:"m"`
	Prefabs string `help:"Directory checked for prefab overrides." default:"prefabs" type:"path"`
	Watch   bool   `help:"Reload tuning when prefab files change." default:"true" negatable:""`
	List    bool   `help:"List the embedded levels and exit."`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("rollerball"),
		kong.Description("roll a ball to the finish"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.List {
		for _, name := range levels.Names() {
			fmt.Println(name)
		}
		return
	}

	prefabs.Dir = CLI.Prefabs

	if CLI.Monitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("rollerball")

	game, err := NewGame(CLI.Level, CLI.Debug, CLI.Watch)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
