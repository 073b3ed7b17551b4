package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatehouse.dev/internal/auth"
	"gatehouse.dev/internal/config"
	"gatehouse.dev/internal/httpapi"
	"gatehouse.dev/internal/migrations"
	"gatehouse.dev/internal/obs"
	"gatehouse.dev/internal/store/memory"
	"gatehouse.dev/internal/store/pg"
)

var version = "0.3.1"

func main() {
	obs.Init()
	obs.InitBuildInfo(version)

	cfg := config.Load()
	if cfg.TokenSecret == "" {
		log.Fatal("GATEHOUSE_TOKEN_SECRET is required")
	}

	var store auth.Store
	if cfg.DatabaseDSN != "" {
		pgStore, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()

		if cfg.MigrateOnStart {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			err := migrations.Up(ctx, pgStore.DB())
			cancel()
			if err != nil {
				log.Fatalf("migrate: %v", err)
			}
		}
		store = pgStore
	} else {
		// Development fallback: nothing survives a restart.
		log.Println("GATEHOUSE_PG_DSN not set, using in-memory store")
		mem := memory.NewStore()
		mem.SeedRoles("USER", "ADMIN", "MODERATOR")
		store = mem
	}

	tokens, err := auth.NewTokenService(cfg.TokenSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	svc, err := auth.NewService(store, auth.NewHasher(cfg.HashCost), tokens,
		auth.WithMinPasswordLength(cfg.MinPasswordLength))
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	api := httpapi.New(svc, store, httpapi.Options{
		Version:    version,
		Production: cfg.IsProduction(),
		CORSOrigin: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting gatehouse-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
