package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	router "busbooking/internal/http"
	"busbooking/internal/identity"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	addr := pflag.String("addr", "", "listen address (overrides APP_ADDR)")
	migrate := pflag.Bool("migrate", true, "create missing tables at start")
	seed := pflag.Bool("seed", false, "load demo data into an empty database and exit")
	pflag.Parse()

	env, err := intconfig.LoadEnv(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		env.AppAddr = *addr
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx := context.Background()
	db, err := intconfig.OpenDB(ctx, env.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if *migrate || *seed {
		if err := intdb.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	if *seed {
		res, err := services.SeedService{DB: db}.Run(ctx)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if res.Skipped {
			log.Println("seed skipped: users table is not empty")
			return
		}
		log.Printf("seed done: users=%d buses=%d bookings=%d", res.Users, res.Buses, res.Bookings)
		return
	}

	var provider identity.Provider
	if env.Firebase.Enabled() {
		fp, err := identity.NewFirebaseProvider(ctx, env.Firebase.ProjectID, env.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("identity provider: %v", err)
		}
		provider = fp
	} else {
		log.Println("warning: firebase is not configured, using the in-memory identity provider")
		provider = identity.NewMemoryProvider()
	}

	r := router.NewRouter(router.Deps{
		Env:      env,
		DB:       db,
		Provider: provider,
		Tokens:   identity.NewTokens(env.JWT.Secret, env.JWT.TTL()),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
