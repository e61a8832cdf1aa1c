// Package bootstrap assembles the runtime shared by the terminal and windowed frontends
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/audio"
	"github.com/lixenwraith/mathfall/config"
	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/hud"
	"github.com/lixenwraith/mathfall/logger"
	"github.com/lixenwraith/mathfall/status"
	"github.com/lixenwraith/mathfall/vmath"
)

const shutdownTimeout = 2 * time.Second

// Options are the command-line inputs
type Options struct {
	ConfigPath string
	Debug      bool
	// Seed overrides the configured seed when non-zero
	Seed uint64
}

// Runtime owns everything a frontend drives
type Runtime struct {
	Config    *config.Config
	Registry  *status.Registry
	Sound     *audio.SoundManager
	Clock     engine.TimeSource
	Scheduler *engine.Scheduler
	Session   *engine.Session
	HUD       *hud.Server

	log     *logrus.Entry
	logFile *os.File
}

// New loads configuration and builds the session
// Only configuration errors are fatal; audio and the spectator feed degrade to warnings
func New(opts Options) (*Runtime, error) {
	logFile := logger.Init(opts.Debug)
	core.SetCrashLogger(logger.Log)
	log := logger.Component("bootstrap")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}
	mode, err := engine.ParsePenaltyMode(cfg.Mode)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("mode: %w", err)
	}

	seed := cfg.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	rng := vmath.NewTimeSeededRand()
	if seed != 0 {
		rng = vmath.NewFastRand(seed)
	}

	rt := &Runtime{
		Config:   cfg,
		Registry: status.NewRegistry(),
		Sound:    audio.NewSoundManager(audio.FromConfig(cfg.Audio)),
		Clock:    engine.NewTimeProvider(),
		log:      log,
		logFile:  logFile,
	}

	if err := rt.Sound.Initialize(); err != nil {
		if errors.Is(err, audio.ErrAudioDisabled) {
			log.Info("audio disabled")
		} else {
			log.WithError(err).Warn("audio unavailable, continuing silently")
		}
	}

	rt.Scheduler = engine.NewScheduler(rt.Clock.Now())
	rt.Session = engine.NewSession(rt.Scheduler, engine.Options{
		Mode:     mode,
		Levels:   cfg.LevelTable(),
		Width:    float64(cfg.Field.Width),
		Height:   float64(cfg.Field.Height),
		Sound:    rt.Sound,
		Registry: rt.Registry,
		Rand:     rng,
	})

	if cfg.HUD.Addr != "" {
		srv := hud.NewServer(rt.Registry, cfg.HUD.Interval)
		if err := srv.Start(cfg.HUD.Addr); err != nil {
			log.WithError(err).WithField("addr", cfg.HUD.Addr).Warn("spectator feed unavailable")
		} else {
			rt.HUD = srv
			rt.Session.Observe(srv.Publish)
		}
	}

	log.WithFields(logrus.Fields{
		"mode": mode.String(),
		"seed": seed,
	}).Info("runtime ready")
	return rt, nil
}

// Close stops the session, audio and spectator feed, then closes the log file
func (rt *Runtime) Close() {
	rt.Session.Release()
	rt.Sound.Cleanup()

	if rt.HUD != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := rt.HUD.Shutdown(ctx); err != nil {
			rt.log.WithError(err).Warn("spectator feed shutdown")
		}
		cancel()
	}

	rt.log.Info("runtime closed")
	if rt.logFile != nil {
		rt.logFile.Close()
		rt.logFile = nil
	}
}
