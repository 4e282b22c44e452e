package main

import (
	"activity-map-service/internal/adapters/cache"
	"activity-map-service/internal/adapters/strava"
	"activity-map-service/internal/adapters/tokens"
	"activity-map-service/internal/api"
	"activity-map-service/internal/auth"
	"activity-map-service/internal/config"
	"activity-map-service/internal/platform/db"
	"activity-map-service/internal/ports"
	"activity-map-service/internal/services"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Strava, SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	client, err := strava.NewStravaClient(cfg.StravaClientID, cfg.StravaClientSecret, cfg.RedirectURL())
	if err != nil {
		log.Fatal(err)
	}

	// Without Redis every dashboard request refetches from Strava.
	var activityCache ports.ActivityCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("redis unreachable, continuing without cache: addr=%s err=%v", cfg.RedisAddr, err)
		} else {
			activityCache = cache.NewRedisActivityCache(rdb, cfg.ActivityCacheTTL)
		}
		cancel()
	}

	activities, err := services.NewActivityService(
		client,
		auth.NewTokenSource(store, client),
		activityCache,
		cfg.ActivityPages,
		cfg.ActivityPerPage,
	)
	if err != nil {
		log.Fatal(err)
	}

	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.Deps{
		Auth:          client,
		Tokens:        store,
		Activities:    activities,
		Sessions:      sessions,
		Location:      cfg.Location,
		SecureCookies: strings.HasPrefix(cfg.PublicURL, "https://"),
	})

	// Timeouts leave room for a cold fetch of several activity pages.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: err=%v", err)
		}
	}()

	log.Printf("Server listening addr=:%s token_store=%s cache=%t", cfg.Port, cfg.TokenStore, activityCache != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openTokenStore opens the configured credential store and makes sure its schema exists.
func openTokenStore(ctx context.Context, cfg config.Config) (ports.TokenStore, func(), error) {
	switch cfg.TokenStore {
	case config.TokenStorePostgres:
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := tokens.InitPostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return tokens.NewPostgresTokenStore(pool), pool.Close, nil

	default:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create db dir %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := tokens.InitSqliteSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return tokens.NewSqliteTokenStore(conn), func() { conn.Close() }, nil
	}
}
