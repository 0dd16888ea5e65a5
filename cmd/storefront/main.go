package main

import (
	"context"
	"database/sql"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"DivineDazzle/internal/admin"
	"DivineDazzle/internal/broadcast"
	"DivineDazzle/internal/catalog"
	"DivineDazzle/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")
	adminUser := getenv("ADMIN_USER", "admin")
	adminPass := getenv("ADMIN_PASS", "admin123")
	snapshotKey := getenv("SNAPSHOT_KEY", catalog.DefaultSnapshotKey)
	syncTopic := getenv("SYNC_TOPIC", "product-sync")
	redisAddr := os.Getenv("REDIS_ADDR")

	var redisClient *redis.Client
	if redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	}

	snapshots, err := buildSnapshotStore(log, redisClient, snapshotKey)
	if err != nil {
		log.Fatal("snapshot store init failed", zap.Error(err))
	}

	var channel broadcast.Channel
	if redisClient != nil {
		channel = broadcast.NewRedis(redisClient, syncTopic)
	} else {
		log.Info("REDIS_ADDR not set, cross-instance sync disabled")
	}

	store, err := catalog.NewStore(context.Background(), catalog.StoreDeps{
		Log:       log,
		Snapshots: snapshots,
		Channel:   channel,
	})
	if err != nil {
		log.Fatal("catalog store init failed", zap.Error(err))
	}

	verifier, err := admin.NewStaticVerifier(adminUser, adminPass)
	if err != nil {
		log.Fatal("admin verifier init failed", zap.Error(err))
	}

	s := &catalog.Server{
		Store:    store,
		Log:      log,
		Verifier: verifier,
		JWT:      admin.NewTokenMaker(jwtSecret),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:      log,
		Service:  service,
		Registry: registry,

		MetricsEnabled: getenv("METRICS_ENABLED", "") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),

		RateLimit:         getenvInt("RATE_LIMIT", 0),
		RateWindowSeconds: getenvInt("RATE_WINDOW_SECONDS", 60),
	})

	teardown := func() {
		if err := store.Close(); err != nil {
			log.Warn("sync channel close failed", zap.Error(err))
		}
	}

	if err := kit.RunHTTPServer(":"+port, h, log, teardown); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildSnapshotStore(log *zap.Logger, redisClient *redis.Client, key string) (catalog.SnapshotStore, error) {
	driver := getenv("SNAPSHOT_DRIVER", "file")

	switch driver {
	case "file":
		path := getenv("SNAPSHOT_PATH", "data/products.json")
		log.Info("snapshot store: file", zap.String("path", path))
		return catalog.NewFileSnapshotStore(path), nil

	case "redis":
		if redisClient == nil {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     getenv("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
			})
		}
		log.Info("snapshot store: redis", zap.String("key", key))
		return catalog.NewRedisSnapshotStore(redisClient, key), nil

	case "postgres":
		db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		log.Info("snapshot store: postgres", zap.String("slot", key))
		return catalog.NewPostgresSnapshotStore(db, key), nil

	case "memory":
		log.Info("snapshot store: memory (nothing survives a restart)")
		return catalog.NewMemSnapshotStore(), nil
	}

	log.Warn("unknown SNAPSHOT_DRIVER, using file", zap.String("driver", driver))
	return catalog.NewFileSnapshotStore(getenv("SNAPSHOT_PATH", "data/products.json")), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
