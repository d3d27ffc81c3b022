package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordcards/internal/api"
	"github.com/vytor/wordcards/internal/config"
	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/db"
	"github.com/vytor/wordcards/internal/jobs"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/remote"
	"github.com/vytor/wordcards/internal/repository/sqlite"
	"github.com/vytor/wordcards/internal/scheduler"
	"github.com/vytor/wordcards/internal/services"
	"github.com/vytor/wordcards/internal/speech"
	"github.com/vytor/wordcards/internal/worker"
	"github.com/vytor/wordcards/web"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(cfg.LogFormat != "json"),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Wordcards Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("request_timeout=%s", cfg.RequestTimeout)
	log.Debug("client_cookie_ttl=%s", cfg.ClientCookieTTL)
	log.Debug("controller_idle_timeout=%s", cfg.ControllerIdleTimeout)
	log.Debug("sweep_interval=%s", cfg.SweepInterval)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	database, err := db.Open(context.Background(), cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(web.Templates)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	var speechCommand *speech.Command
	if cfg.SpeechCommand != "" {
		speechCommand, err = speech.NewCommand(cfg.SpeechCommand)
		if err != nil {
			log.Error("invalid SPEECH_COMMAND: %v", err)
			os.Exit(1)
		}
		log.Info("pronouncing cards with %q", cfg.SpeechCommand)
	}

	client := remote.New(remote.Endpoints{
		Auth:       cfg.AuthURL,
		Categories: cfg.CategoriesURL,
		Cards:      cfg.CardsURL,
		Translate:  cfg.TranslateURL,
		Accounts:   cfg.AccountsURL,
	}, cfg.RequestTimeout)

	sessionService := services.NewSessionService(sqlite.NewStorageRepository(database.DB))
	importService := services.NewImportService(client)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importQueue := jobs.NewWorkerQueue(importPool, importService)

	registry := controller.NewRegistry(func(clientID string) *controller.Controller {
		recorder := &speech.Recorder{}
		players := speech.Players{recorder}
		if speechCommand != nil {
			players = append(players, speechCommand)
		}
		return controller.New(clientID, controller.Deps{
			Client:   client,
			Sessions: sessionService,
			Speaker:  speech.NewLastWins(players),
			Recorder: recorder,
			Imports:  importQueue,
			Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		})
	})

	sweeper := scheduler.New(registry, sessionService, scheduler.Options{
		Interval:    cfg.SweepInterval,
		IdleTimeout: cfg.ControllerIdleTimeout,
		SessionTTL:  cfg.ClientCookieTTL,
	})

	srv := &api.Server{
		Registry:       registry,
		Cookies:        api.NewClientCookies(cfg.SessionSecret, cfg.ClientCookieTTL, cfg.CookieSecure),
		Templates:      tmpl,
		DB:             database.DB,
		HandlerTimeout: 2 * cfg.RequestTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)
	if err := sweeper.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	sweeper.Stop()

	// Running imports see a cancelled context and mark their remaining
	// rows failed.
	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	registry.Close()

	log.Info("===========================================")
	log.Info("Wordcards Server Stopped")
	log.Info("===========================================")
}
