package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

func BenchmarkCatalogOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("CreateArticle", func(b *testing.B) {
		env := newBenchEnv(b)
		dep, err := env.depositors.Create(ctx, "Marie", "Dupont", "0601020304")
		if err != nil {
			b.Fatalf("failed to create depositor: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.articles.Create(ctx, ports.NewArticle{
				DepositorCode: dep.Code,
				Size:          "4 ans",
				Sex:           "F",
				Price:         decimal.NewFromInt(int64(1 + i%20)),
			})
		}
	})

	b.Run("GetByCode", func(b *testing.B) {
		env := newBenchEnv(b)
		codes := seedCatalog(b, env, 5, 40)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.articles.GetByCode(ctx, codes[i%len(codes)])
		}
	})

	b.Run("Search", func(b *testing.B) {
		env := newBenchEnv(b)
		seedCatalog(b, env, 5, 40)
		params := ports.SearchParams{
			Query: "last2",
			Sold:  ports.SoldAvailable,
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.query.Search(ctx, params)
		}
	})

	b.Run("MarkSold", func(b *testing.B) {
		env := newBenchEnv(b)
		codes := seedCatalog(b, env, 5, 40)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.articles.MarkSold(ctx, codes[i%len(codes):i%len(codes)+1])
		}
	})
}

func BenchmarkScanResolution(b *testing.B) {
	ctx := context.Background()
	env := newBenchEnv(b)
	codes := seedCatalog(b, env, 10, 20)

	payloads := []string{
		codes[0],
		codes[len(codes)/2],
		codes[0][:4], // depositor code
		"ZZZ9-999",
		"not a code at all",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = env.scan.Resolve(ctx, payloads[i%len(payloads)])
	}
}

func BenchmarkCartOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("Add", func(b *testing.B) {
		env := newBenchEnv(b)
		article := domain.Article{
			Code:          "MAD3-001",
			DepositorCode: "MAD3",
			Price:         decimal.NewFromInt(5),
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.cart.Add(ctx, article)
		}
	})

	b.Run("View", func(b *testing.B) {
		env := newBenchEnv(b)
		for i := 0; i < 50; i++ {
			_, _ = env.cart.Add(ctx, domain.Article{
				Code:  fmt.Sprintf("MAD3-%03d", i+1),
				Price: decimal.NewFromInt(int64(i + 1)),
			})
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = env.cart.View(ctx)
		}
	})
}

// Memory allocation benchmarks
func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("Article", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = &domain.Article{
				Code:          "MAD3-001",
				DepositorCode: "MAD3",
				Size:          "M",
				Sex:           "F",
				Price:         decimal.NewFromInt(10),
			}
		}
	})

	b.Run("CartView", func(b *testing.B) {
		items := make([]domain.CartItem, 50)
		for i := range items {
			items[i] = domain.CartItem{
				Article: domain.Article{
					Code:  fmt.Sprintf("MAD3-%03d", i+1),
					Price: decimal.NewFromInt(int64(i + 1)),
				},
				Quantity: 1,
			}
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = &ports.CartView{
				Items: items,
				Total: decimal.NewFromInt(1275),
			}
		}
	})
}
