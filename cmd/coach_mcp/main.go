// Package main runs the gym coach MCP server over stdio (for local editor / agent use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/2beens/gymcoach/internal/adaptation"
	"github.com/2beens/gymcoach/internal/catalog"
	coachmcp "github.com/2beens/gymcoach/internal/coach/mcp"
	"github.com/2beens/gymcoach/internal/config"
	"github.com/2beens/gymcoach/internal/db"
	"github.com/2beens/gymcoach/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("GYMCOACH_REDIS_PASS"),
	})
	defer func() {
		_ = rdb.Close()
	}()

	var store storage.Store
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     os.Getenv("GYMCOACH_POSTGRES_PASS"),
			MaxConns:       cfg.PostgresMaxConns,
			TracingEnabled: false,
		})
		if err != nil {
			log.Fatalf("db pool: %v", err)
		}
		defer dbPool.Close()
		store = storage.NewPostgresStore(dbPool)
	case config.StorageRedis:
		store = storage.NewRedisStore(rdb)
	default:
		log.Fatalf("storage backend [%s] has no data to serve over mcp", cfg.StorageBackend)
	}

	exercises := catalog.Default
	if cfg.CatalogPath != "" {
		exercises = func() (*catalog.Catalog, error) {
			return catalog.Load(cfg.CatalogPath)
		}
	}
	exerciseCatalog, err := exercises()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	analyzer := adaptation.NewAnalyzerClient(cfg.AnalyzerServiceURL, &http.Client{Timeout: 10 * time.Second}, rdb)
	suggestions := adaptation.NewSuggestions(store, analyzer)

	mcpServer := coachmcp.NewServer(store, exerciseCatalog, suggestions, "1.0.0")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal(err)
	}
}
