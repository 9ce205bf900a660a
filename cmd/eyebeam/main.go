package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyebeam/audio"
	"github.com/lixenwraith/eyebeam/config"
	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/effect"
	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/internal/log"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/render"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the effect crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg); logFile != nil {
		defer logFile.Close()
	}
	log.Info("starting", "seed", cfg.Seed, "fps", cfg.FPS, "audio", cfg.AudioEnabled, "demo", cfg.Demo)

	term, err := render.NewTerminal(cfg.ColorMode())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashTerminal(term)
	// Normal exit terminal cleanup
	defer func() {
		core.SetCrashTerminal(nil)
		term.Fini()
	}()

	// A nil interface, not a typed nil pointer, selects the silent synthesizer
	var backend audio.Backend
	if cfg.AudioEnabled {
		if b, err := audio.OpenSpeaker(cfg.AudioConfig()); err == nil {
			backend = b
		} else {
			log.Warn("audio initialization failed, continuing without audio", "error", err)
		}
	}

	rng := engine.NewRand(cfg.Seed)
	clock := engine.NewPausableClock(nil)
	synth := audio.NewSynthesizer(backend, engine.NewTimerScheduler(), rng, log.L())
	orch := effect.NewOrchestrator(effect.Options{
		Synth:  synth,
		Rand:   rng,
		Clock:  clock,
		Logger: log.L(),
	})
	// Stops every oscillator and pending teardown before the speaker closes
	defer orch.Close()

	h := newHost(term.Projection(), clock, cfg.Demo)
	h.resize = func() render.Projection {
		term.Resize()
		return term.Projection()
	}

	eventChan := make(chan tcell.Event, 256)
	// Input polling goroutine, PollEvent returns nil once the screen is finalized
	core.Go(func() {
		for {
			ev := term.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	var (
		frame effect.Frame
		last  = time.Now()
	)
	for {
		select {
		case ev := <-eventChan:
			if !h.handleEvent(ev) {
				log.Info("exiting", "frames", frame.Number)
				return
			}

		case now := <-frameTicker.C:
			dt := now.Sub(last)
			last = now

			// During pause: skip effect updates and let the audio release, still render
			if clock.IsPaused() {
				orch.Hold()
			} else {
				frame = orch.Tick(min(dt, parameter.MaxFrameDelta), h.source().Next(), term.Viewport())
			}
			term.Draw(&frame, h.status(synth.Silent()))
		}
	}
}
