// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/test/helpers"
)

// benchEnv bundles the services a benchmark drives plus the store underneath.
type benchEnv struct {
	store      *helpers.MemoryStore
	depositors *services.DepositorService
	articles   *services.ArticleService
	cart       *services.CartService
	query      *services.QueryService
	scan       *services.ScanService
}

func benchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newBenchEnv(b *testing.B) *benchEnv {
	b.Helper()
	logger := benchLogger()
	store := helpers.NewMemoryStore()

	depositorRepo := collections.NewDepositorRepository(store, logger)
	articleRepo := collections.NewArticleRepository(store, logger)
	cartRepo := collections.NewCartRepository(store, logger)

	clock := ports.ClockFunc(time.Now)

	return &benchEnv{
		store:      store,
		depositors: services.NewDepositorService(depositorRepo, articleRepo, clock, logger),
		articles:   services.NewArticleService(articleRepo, depositorRepo, clock, logger),
		cart:       services.NewCartService(cartRepo, logger),
		query:      services.NewQueryService(articleRepo, logger),
		scan:       services.NewScanService(depositorRepo, articleRepo, logger),
	}
}

// seedCatalog creates depositors with articles and returns the article codes.
func seedCatalog(b *testing.B, env *benchEnv, depositorCount, articlesPer int) []string {
	b.Helper()
	ctx := context.Background()

	var codes []string
	for i := 0; i < depositorCount; i++ {
		dep, err := env.depositors.Create(ctx,
			fmt.Sprintf("First%d", i),
			fmt.Sprintf("Last%d", i),
			"0600000000")
		if err != nil {
			b.Fatalf("failed to seed depositor: %v", err)
		}
		for j := 0; j < articlesPer; j++ {
			article, err := env.articles.Create(ctx, ports.NewArticle{
				DepositorCode: dep.Code,
				Size:          "6 ans",
				Sex:           "M",
				Price:         decimal.NewFromInt(int64(1 + j%20)),
			})
			if err != nil {
				b.Fatalf("failed to seed article: %v", err)
			}
			codes = append(codes, article.Code)
		}
	}
	return codes
}
