package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/server"
	"github.com/matzehuels/portfolio/pkg/service"
	"github.com/matzehuels/portfolio/pkg/storage"
	"github.com/matzehuels/portfolio/pkg/storage/memory"
	"github.com/matzehuels/portfolio/pkg/storage/mongo"
)

const closeTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio REST API",
		Long: `Serve runs the REST API under /api.

Data is stored in MongoDB when mongo.url (or MONGO_URL) is set and in memory
otherwise. Setting redis.addr (or REDIS_ADDR) caches portfolio snapshots in
Redis so several instances share them.`,
		Example: `  portfolio serve --seed
  MONGO_URL=mongodb://localhost:27017 portfolio serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
				defer cancel()
				if err := store.Close(closeCtx); err != nil {
					c.Logger.Warn("close store", "error", err)
				}
			}()

			snapshots := c.openSnapshotCache(ctx)
			defer snapshots.Close()

			svc := service.New(store, service.WithLogger(c.Logger))
			if seed {
				if err := seedIfEmpty(ctx, svc); err != nil {
					return err
				}
			}

			srv := server.New(svc,
				server.WithCache(snapshots, c.cfg.Server.SnapshotTTL.Duration),
				server.WithLogger(c.Logger))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8000\")")
	cmd.Flags().BoolVar(&seed, "seed", false, "load the bundled placeholder data when no portfolio exists")

	return cmd
}

func (c *CLI) openStore(ctx context.Context) (storage.Store, error) {
	if c.cfg.Mongo.URL == "" {
		c.Logger.Info("using in-memory store")
		return memory.New(), nil
	}
	store, err := mongo.Connect(ctx, mongo.Config{
		URL:      c.cfg.Mongo.URL,
		Database: c.cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		c.Logger.Warn("create indexes", "error", err)
	}
	c.Logger.Info("connected to MongoDB", "database", c.cfg.Mongo.Database)
	return store, nil
}

// openSnapshotCache returns the Redis snapshot cache, namespaced by
// database, or a NullCache when Redis is not configured or unreachable.
func (c *CLI) openSnapshotCache(ctx context.Context) cache.Cache {
	if c.cfg.Redis.Addr == "" {
		return cache.NewNullCache()
	}
	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
		UseTLS:   c.cfg.Redis.TLS,
	})
	if err := rc.Ping(ctx); err != nil {
		c.Logger.Warn("redis unavailable, snapshot caching disabled", "addr", c.cfg.Redis.Addr, "error", err)
		_ = rc.Close()
		return cache.NewNullCache()
	}
	c.Logger.Info("caching snapshots in Redis", "addr", c.cfg.Redis.Addr)
	return cache.NewScoped(rc, appName+":"+c.cfg.Mongo.Database+":")
}

func seedIfEmpty(ctx context.Context, svc *service.Service) error {
	_, err := svc.Portfolio(ctx)
	if err == nil || !errors.Is(err, errors.ErrCodeNotFound) {
		return err
	}
	seed, err := portfolio.PlaceholderSeed()
	if err != nil {
		return err
	}
	_, err = svc.Migrate(ctx, seed)
	return err
}
