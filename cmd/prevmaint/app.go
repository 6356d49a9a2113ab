package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/clock"
	"github.com/ukydev/prevmaint/internal/config"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/handlers"
	"github.com/ukydev/prevmaint/internal/maintenance"
	"github.com/ukydev/prevmaint/internal/schedule"
)

// application wires the store, the scheduler and the use-case services.
// The caller must Close it.
type application struct {
	cfg        config.Config
	store      db.Store
	reconciler *schedule.Reconciler
	clients    *maintenance.ClientService
	equipment  *maintenance.EquipmentService
	schedule   *maintenance.ScheduleService
}

// newApp loads the configuration and builds the application from it.
func newApp(ctx context.Context, envFile string) (*application, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := configureLogging(cfg.Log); err != nil {
		return nil, err
	}
	return newAppFromConfig(ctx, cfg, clock.NewRealClock())
}

func newAppFromConfig(ctx context.Context, cfg config.Config, clk clock.Clock) (*application, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	store, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	rec := schedule.NewReconciler(store.Services(), store.Equipment(), clk,
		schedule.WithHorizon(cfg.Schedule.HorizonMonths),
		schedule.WithLocation(loc),
	)
	return &application{
		cfg:        cfg,
		store:      store,
		reconciler: rec,
		clients:    maintenance.NewClientService(store),
		equipment:  maintenance.NewEquipmentService(store, rec, clk),
		schedule:   maintenance.NewScheduleService(store, rec),
	}, nil
}

// router builds the HTTP engine serving the API.
func (a *application) router() *gin.Engine {
	engine := gin.New()
	handlers.NewRouter(engine, a.cfg, handlers.Handlers{
		Clients:   handlers.NewClientHandler(a.clients),
		Equipment: handlers.NewEquipmentHandler(a.equipment),
		Services:  handlers.NewServiceHandler(a.schedule),
		Store:     a.store,
	})
	return engine
}

func (a *application) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

// configureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func configureLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", cfg.Format)
	}

	if level >= log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}
