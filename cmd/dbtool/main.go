package main

import (
	"activity-map-service/internal/adapters/tokens"
	"activity-map-service/internal/config"
	"activity-map-service/internal/platform/db"
	"context"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool creates the credential schema ahead of deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := strings.ToLower(config.Get("TOKEN_STORE", config.TokenStoreSQLite))

	log.Printf("Initializing database schema... token_store=%s", store)
	switch store {
	case config.TokenStorePostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}

		pool, err := db.OpenPostgres(ctx, databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		if err := tokens.InitPostgresSchema(ctx, pool); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}

	case config.TokenStoreSQLite:
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := tokens.InitSqliteSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}

	default:
		log.Fatalf("unknown TOKEN_STORE %q", store)
	}
	log.Println("Schema ready.")
}
