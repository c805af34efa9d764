// valentime opens the scroll-driven 3D narrative in a window. Scroll with
// the mouse wheel or a touch drag, click the dots on the right to jump to a
// section, and press M to toggle sound.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/phanxgames/valentime"
	"go.uber.org/zap"
)

const sampleRate = 44100

func main() {
	configPath := flag.String("config", "", "YAML config file overlaid on the defaults")
	scriptPath := flag.String("script", "", "JSON test script to run, exiting when it finishes")
	debug := flag.Bool("debug", false, "log frame stats and show the FPS counter")
	flag.Parse()

	cfg := valentime.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = valentime.LoadConfigFile(*configPath, cfg); err != nil {
			log.Fatal(err)
		}
	}
	if err := valentime.ApplyEnv(&cfg); err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
		cfg.Window.ShowFPS = true
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := valentime.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	sounds := valentime.NewAudioService(audio.NewContext(sampleRate), cfg.Audio.Muted, logger)
	if err := sounds.Load(os.DirFS(cfg.Audio.Dir), cfg.Audio.Sounds); err != nil {
		logger.Warn("some sounds are unavailable", zap.Error(err))
	}
	if !cfg.Audio.Muted {
		sounds.Play(valentime.CueAmbient)
	}

	exp, err := valentime.NewExperience(cfg, sounds, logger,
		valentime.NewDeviceInput(cfg.Scroll.WheelScale))
	if err != nil {
		logger.Fatal("create experience", zap.Error(err))
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.Fatal("read script", zap.Error(err))
		}
		runner, err := valentime.LoadTestScript(data)
		if err != nil {
			logger.Fatal("load script", zap.Error(err))
		}
		exp.SetTestRunner(runner)
	}

	if err := valentime.Run(exp, cfg.Window); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
