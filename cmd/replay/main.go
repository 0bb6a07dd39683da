// Command replay runs a level headlessly from a scripted input file and
// prints where the ball ended up.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/rollerball/ecs/system"
	"github.com/milk9111/rollerball/prefabs"
	"github.com/milk9111/rollerball/scene"
	"github.com/milk9111/rollerball/session"
)

var CLI struct {
	Debug     bool    `help:"Enable debug logging."`
	Script    string  `arg:"" help:"Replay script (YAML)." type:"existingfile"`
	Level     string  `help:"Override the level named in the script."`
	DT        float64 `help:"Frame delta in seconds, overriding the script." name:"dt"`
	MaxFrames int     `help:"Stop after this many frames even if the script is longer." default:"0"`
	Prefabs   string  `help:"Directory checked for prefab overrides." default:"prefabs" type:"path"`
	StopOnEnd bool    `help:"Stop as soon as the level is finished." default:"true" negatable:""`
}

// Script is a recorded or hand-written input sequence.
type Script struct {
	Level string              `yaml:"level"`
	DT    float64             `yaml:"dt"`
	Steps []system.ReplayStep `yaml:"steps"`
}

type Result struct {
	Level    string        `yaml:"level"`
	Frames   int           `yaml:"frames"`
	Elapsed  float64       `yaml:"elapsed"`
	Finished bool          `yaml:"finished"`
	Message  string        `yaml:"message,omitempty"`
	Respawns int           `yaml:"respawns"`
	Position [3]float64    `yaml:"position"`
	Stats    session.Stats `yaml:"stats"`
}

type Options struct {
	MaxFrames int
	StopOnEnd bool
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: unmarshal %s: %w", path, err)
	}
	if s.Level == "" {
		s.Level = "level1"
	}
	if s.DT <= 0 {
		s.DT = system.DefaultFixedDT
	}
	return &s, nil
}

// Run plays script to the end, or to the finish when StopOnEnd is set.
func Run(script *Script, opts Options) (*Result, error) {
	source := system.NewReplaySource(script.Steps)
	sc, err := scene.New(script.Level, source)
	if err != nil {
		return nil, err
	}

	frames := source.TotalFrames()
	if opts.MaxFrames > 0 && frames > opts.MaxFrames {
		frames = opts.MaxFrames
	}

	res := &Result{Level: script.Level}
	for res.Frames < frames {
		sc.Update(script.DT)
		res.Frames++
		if _, done := sc.Finished(); done && opts.StopOnEnd {
			break
		}
	}

	res.Elapsed = sc.World.Elapsed()
	res.Message, res.Finished = sc.Finished()
	res.Respawns = sc.Session.Respawns()
	res.Stats = sc.Stats()
	if body, ok := sc.Registry.Player(); ok {
		res.Position = body.Position()
	}
	return res, nil
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	kong.Parse(&CLI,
		kong.Name("replay"),
		kong.Description("run a level headlessly from a scripted input file"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	prefabs.Dir = CLI.Prefabs

	script, err := LoadScript(CLI.Script)
	if err != nil {
		log.Fatal().Err(err).Msg("load script")
	}
	if CLI.Level != "" {
		script.Level = CLI.Level
	}
	if CLI.DT > 0 {
		script.DT = CLI.DT
	}

	res, err := Run(script, Options{MaxFrames: CLI.MaxFrames, StopOnEnd: CLI.StopOnEnd})
	if err != nil {
		log.Fatal().Err(err).Msg("replay")
	}

	out, err := yaml.Marshal(res)
	if err != nil {
		log.Fatal().Err(err).Msg("marshal result")
	}
	os.Stdout.Write(out)
}
