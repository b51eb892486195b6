package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Progxy/phalsophobia-multiplayer/config"
	"github.com/Progxy/phalsophobia-multiplayer/game"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/monitor"
	"github.com/Progxy/phalsophobia-multiplayer/persistence"
	"github.com/Progxy/phalsophobia-multiplayer/rpc"
	"github.com/Progxy/phalsophobia-multiplayer/server"
	"github.com/Progxy/phalsophobia-multiplayer/services"
	"github.com/Progxy/phalsophobia-multiplayer/term"
	"github.com/Progxy/phalsophobia-multiplayer/timer"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store, when configured
	var store persistence.Store
	if cfg.Database.Enabled {
		switch cfg.Database.Driver {
		case "pq":
			store, err = persistence.NewPostgreSQL(
				cfg.Database.Postgres.Host,
				cfg.Database.Postgres.Port,
				cfg.Database.Postgres.User,
				cfg.Database.Postgres.Password,
				cfg.Database.Postgres.DBName,
			)
		default:
			store, err = persistence.NewGormPostgreSQL(
				cfg.Database.Postgres.Host,
				cfg.Database.Postgres.Port,
				cfg.Database.Postgres.User,
				cfg.Database.Postgres.Password,
				cfg.Database.Postgres.DBName,
			)
		}
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()
		logger.Log.Info("Database connection successful.")
	}
	records := services.NewRecordService(store)

	// Metrics endpoint
	var mon *monitor.Monitor
	if cfg.Server.MetricsAddress != "" {
		mon = monitor.NewMonitor("phalsophobia")
		mon.StartServer(cfg.Server.MetricsAddress)
	}

	sess := game.NewSession(rand.New(rand.NewSource(time.Now().UnixNano())))
	prompter := term.NewPrompter(os.Stdin, os.Stdout)

	// Background scheduler: metrics refresh and the stalled-reply watchdog.
	timers := timer.NewTimerManager()
	defer timers.Stop()
	if mon != nil {
		timers.AddTimer(5*time.Second, 5*time.Second, func() {
			mon.SetPlayersAlive(sess.AliveCount())
		})
	}

	gameServer := server.NewGameServer(&cfg.Server, prompter, sess, mon, records, timers)

	// Admin RPC endpoint
	if cfg.Server.RPCAddress != "" {
		admin := rpc.NewAdminService(gameServer, records)
		if err := admin.Register(); err != nil {
			logger.Log.Fatalf("Failed to register the admin service: %v", err)
		}
		rpcServer, err := rpc.NewServer(cfg.Server.RPCAddress)
		if err != nil {
			logger.Log.Fatalf("Failed to start the RPC server: %v", err)
		}
		go rpcServer.Start()
		defer rpcServer.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gameServer.Run(ctx); err != nil && err != context.Canceled {
		logger.Log.Fatalf("Server error: %v", err)
	}
}
