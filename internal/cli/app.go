// Package cli wires configuration, logging and persistence for the command
// line entry points.
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/config"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/logging"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/player"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/state"
)

// App holds CLI dependencies.
type App struct {
	Config *config.Config
	Log    zerolog.Logger
	State  *state.Manager

	logFile io.Closer
}

// NewApp loads the configuration, opens the log file and the state
// database. Logging goes to the file so the terminal UI stays clean.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := logging.OpenFile(logPath)
	if err != nil {
		return nil, err
	}
	logCfg := logging.DefaultConfig().Apply(cfg.Log.Level, cfg.Log.Format).FromEnv()
	logCfg.Output = f
	log := logging.New(logCfg)

	st, err := state.Open()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open state: %w", err)
	}

	return &App{Config: cfg, Log: log, State: st, logFile: f}, nil
}

// Close releases the state database and the log file.
func (a *App) Close() error {
	err := a.State.Close()
	if cerr := a.logFile.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenKeys loads the keybind registry from the configured file.
func (a *App) OpenKeys() (*keymap.Registry, error) {
	path, err := a.Config.KeybindsPath()
	if err != nil {
		return nil, fmt.Errorf("resolve keybinds path: %w", err)
	}
	return keymap.Open(path, a.Log)
}

// NewPlayer builds the bookmark player on the simulated backend with the
// configured steps and loop settings.
func (a *App) NewPlayer(keys *keymap.Registry) *player.Player {
	backend := media.NewSimulator(a.Config.GetBackendConfig().SimulatedLength)
	pb := a.Config.GetPlaybackConfig()
	loop := a.Config.GetLoopConfig()
	return player.New(keys, backend, a.State, a.Log, player.Options{
		SeekStep:   pb.SeekStep,
		VolumeStep: pb.VolumeStep,
		SpeedStep:  pb.SpeedStep,
		Tolerance:  loop.Tolerance,
		Store: session.Options{
			SettleDelay:   loop.SettleDelay,
			PreviewWidth:  loop.PreviewWidth,
			PreviewHeight: loop.PreviewHeight,
		},
	})
}
