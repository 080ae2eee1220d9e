package cmd

import (
	"fmt"
	"time"

	"github.com/hpratama/taskbin/internal/config"
	"github.com/hpratama/taskbin/internal/credential"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/gate"
	"github.com/hpratama/taskbin/internal/logging"
	"github.com/hpratama/taskbin/internal/repo"
	"github.com/hpratama/taskbin/internal/store"
)

// app bundles the wired core components every command runs against.
type app struct {
	cfg  *config.Config
	log  *logging.Logger
	bus  *event.Bus
	gate *gate.Gate
	repo *repo.Repository
}

// buildApp loads configuration and constructs the core: credential store,
// access gate (initialized from the persisted credential), bin client, and
// repository. Each command builds one app, uses it, and closes it.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(config.StateDir(), cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
	}

	bus := event.NewBus()

	creds, err := credential.NewStore(config.StateDir())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	g := gate.New(cfg.Auth.Passcode, creds, bus, log)
	g.Initialize()

	client, err := store.NewClient(cfg.Bin.BaseURL, cfg.Bin.ID, cfg.Bin.AccessKey,
		store.WithTimeout(time.Duration(cfg.Bin.TimeoutSeconds)*time.Second),
		store.WithLogger(log))
	if err != nil {
		g.Close()
		log.Close()
		return nil, err
	}

	r := repo.New(client, g, cfg.TaskOptions(), bus, repo.WithLogger(log))

	return &app{
		cfg:  cfg,
		log:  log,
		bus:  bus,
		gate: g,
		repo: r,
	}, nil
}

// Close releases the gate watcher and the log file.
func (a *app) Close() {
	a.gate.Close()
	_ = a.log.Close()
}
