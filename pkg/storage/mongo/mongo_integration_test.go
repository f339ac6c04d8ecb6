package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/portfolio/pkg/storage"
	"github.com/matzehuels/portfolio/pkg/storage/storagetest"
)

func TestStore(t *testing.T) {
	url := os.Getenv("MONGO_URL")
	if url == "" {
		t.Skip("MONGO_URL not set")
	}

	n := 0
	storagetest.Run(t, func(t *testing.T) storage.Store {
		n++
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s, err := Connect(ctx, Config{
			URL:            url,
			Database:       fmt.Sprintf("portfolio_test_%d_%d", time.Now().UnixNano(), n),
			ConnectTimeout: 3 * time.Second,
		})
		if err != nil {
			t.Skipf("mongo unavailable: %v", err)
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			t.Fatalf("EnsureIndexes: %v", err)
		}
		t.Cleanup(func() {
			ctx := context.Background()
			_ = s.Drop(ctx)
			_ = s.Close(ctx)
		})
		return s
	})
}

func TestConnectValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := Connect(ctx, Config{Database: "x"}); err == nil {
		t.Error("missing URL should fail")
	}
	if _, err := Connect(ctx, Config{URL: "mongodb://localhost:27017"}); err == nil {
		t.Error("missing database should fail")
	}
}
