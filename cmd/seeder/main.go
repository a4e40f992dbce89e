// cmd/seeder/main.go
//
// Seeds the store with demo depositors and articles so the API has
// something to serve during local development. Usage:
//
//	go run ./cmd/seeder -depositors 5 -articles 8
//	go run ./cmd/seeder -clear
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/adapters/pg_store"
	"github.com/tagit-app/tagit-be/internal/adapters/redis_store"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/internal/pkg/config"
	"github.com/tagit-app/tagit-be/internal/pkg/logger"
)

var demoNames = []struct {
	first, last, phone string
}{
	{"Marie", "Dupont", "0612345678"},
	{"Pierre", "Durand", "0623456789"},
	{"Sophie", "Martin", "0634567890"},
	{"Lucas", "Bernard", "0645678901"},
	{"Emma", "Petit", "0656789012"},
	{"Hugo", "Moreau", "0667890123"},
	{"Chloe", "Laurent", "0678901234"},
	{"Nathan", "Garcia", "0689012345"},
}

var demoSizes = []string{"3 mois", "6 mois", "12 mois", "2 ans", "4 ans", "6 ans", "8 ans", "10 ans"}
var demoSexes = []string{"M", "F", "Mixte"}
var demoLocations = []string{"Portant A", "Portant B", "Table 1", "Table 2", "Bac jouets"}

func main() {
	depositorCount := flag.Int("depositors", 5, "number of demo depositors to create")
	articlesPer := flag.Int("articles", 6, "number of articles per depositor")
	clear := flag.Bool("clear", false, "remove all collections before seeding")
	clearOnly := flag.Bool("clear-only", false, "remove all collections and exit")
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	store, closeStore, err := initStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	if *clear || *clearOnly {
		if err := clearCollections(ctx, store); err != nil {
			slogger.Error("failed to clear collections", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("collections cleared")
		if *clearOnly {
			return
		}
	}

	if err := seed(ctx, store, *depositorCount, *articlesPer, slogger); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func initStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.KeyValueStore, func(), error) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		store, err := pg_store.New(ctx, &pg_store.Config{
			Host:              cfg.Postgres.Host,
			Port:              cfg.Postgres.Port,
			User:              cfg.Postgres.User,
			Password:          cfg.Postgres.Password,
			Database:          cfg.Postgres.Name,
			SSLMode:           cfg.Postgres.SSLMode,
			MaxConnections:    2,
			MinConnections:    1,
			MaxConnLifetime:   cfg.Postgres.MaxConnLifetime,
			MaxConnIdleTime:   cfg.Postgres.MaxConnIdleTime,
			HealthCheckPeriod: cfg.Postgres.HealthCheckPeriod,
			ConnectTimeout:    cfg.Postgres.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		return store, store.Close, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return redis_store.New(client, slogger), func() { client.Close() }, nil
}

func clearCollections(ctx context.Context, store ports.KeyValueStore) error {
	for _, key := range []string{ports.KeyDepositors, ports.KeyArticles, ports.KeyCart, ports.KeySales} {
		if err := store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

func seed(ctx context.Context, store ports.KeyValueStore, depositorCount, articlesPer int, slogger *slog.Logger) error {
	depositorRepo := collections.NewDepositorRepository(store, slogger)
	articleRepo := collections.NewArticleRepository(store, slogger)

	clock := ports.ClockFunc(time.Now)
	depositorService := services.NewDepositorService(depositorRepo, articleRepo, clock, slogger)
	articleService := services.NewArticleService(articleRepo, depositorRepo, clock, slogger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if depositorCount > len(demoNames) {
		depositorCount = len(demoNames)
	}

	created := 0
	for i := 0; i < depositorCount; i++ {
		name := demoNames[i]
		dep, err := depositorService.Create(ctx, name.first, name.last, name.phone)
		if err != nil {
			return fmt.Errorf("failed to create depositor %s %s: %w", name.first, name.last, err)
		}

		for j := 0; j < articlesPer; j++ {
			price := decimal.NewFromInt(int64(1 + rng.Intn(20)))
			if rng.Intn(2) == 0 {
				price = price.Add(decimal.NewFromFloat(0.5))
			}
			article, err := articleService.Create(ctx, ports.NewArticle{
				DepositorCode: dep.Code,
				Size:          demoSizes[rng.Intn(len(demoSizes))],
				Sex:           demoSexes[rng.Intn(len(demoSexes))],
				Price:         price,
				Location:      demoLocations[rng.Intn(len(demoLocations))],
			})
			if err != nil {
				return fmt.Errorf("failed to create article for %s: %w", dep.Code, err)
			}
			created++
			slogger.Debug("seeded article",
				slog.String("code", article.Code),
				slog.String("price", article.Price.String()))
		}

		slogger.Info("seeded depositor",
			slog.String("code", dep.Code),
			slog.String("name", fmt.Sprintf("%s %s", dep.FirstName, dep.LastName)),
			slog.Int("articles", articlesPer))
	}

	slogger.Info("seeding complete",
		slog.Int("depositors", depositorCount),
		slog.Int("articles", created))
	return nil
}
