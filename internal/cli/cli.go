// Package cli implements the portfolio command-line interface.
//
// The CLI talks to a portfolio API through [api.Client] and keeps the last
// good snapshot in a file cache so `show` works across invocations and
// while the API is down. `serve` runs the API itself.
//
// # Commands
//
//   - show: print the portfolio or one section
//   - health, watch: probe the API once or continuously
//   - update: edit the personal block or the about section
//   - skills, experience, projects, achievements, publications: CRUD
//   - migrate, export: bulk import and export
//   - serve: run the REST API
//   - cache: manage the snapshot cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// select a TOML configuration file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/buildinfo"
	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/config"
	"github.com/matzehuels/portfolio/pkg/loader"
	"github.com/matzehuels/portfolio/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "portfolio"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Portfolio manages a personal portfolio site through its REST API",
		Long:         `Portfolio reads and edits the content of a portfolio site (profile, skills, experience, projects, achievements and publications) through its REST API, and can serve that API itself.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/portfolio/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.healthCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.updateCommand())
	for _, r := range resources {
		root.AddCommand(c.resourceCommand(r))
	}
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates an API client from the loaded configuration. In verbose
// mode every request is logged.
func (c *CLI) newClient() *api.Client {
	opts := []api.Option{api.WithLogger(c.Logger)}
	if c.Logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, api.WithHooks(observability.NewLogHooks(c.Logger)))
	}
	return api.New(c.cfg.Client(), opts...)
}

// newLoader creates a loader for client backed by the snapshot file cache
// and restores the last persisted snapshot.
func (c *CLI) newLoader(ctx context.Context, client *api.Client, noCache bool) *loader.Loader {
	store, err := newCache(noCache || c.cfg.Cache.Disabled)
	if err != nil {
		c.Logger.Warn("snapshot cache unavailable", "error", err)
		store = cache.NewNullCache()
	}

	opts := []loader.Option{
		loader.WithTTL(c.cfg.Cache.TTL.Duration),
		loader.WithLogger(c.Logger),
		loader.WithStore(store, cache.SnapshotKey(client.BaseURL())),
	}
	if c.Logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, loader.WithCacheHooks(observability.NewLogHooks(c.Logger)))
	}

	l := loader.New(client, opts...)
	if ok, err := l.Restore(ctx); err != nil {
		c.Logger.Debug("restore snapshot", "error", err)
	} else if ok {
		c.Logger.Debug("restored snapshot", "valid", l.Valid())
	}
	return l
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/portfolio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
