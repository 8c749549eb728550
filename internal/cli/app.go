package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/odysseus0/slh/internal/aoc"
	"github.com/odysseus0/slh/internal/config"
	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/plugin"
	"github.com/odysseus0/slh/internal/store"
	"github.com/odysseus0/slh/internal/workspace"
)

type App struct {
	cfg    config.Config
	root   string
	layout daypart.Layout
	db     *sql.DB
	store  *store.Store
	plugin plugin.Plugin
	client *aoc.Client
	log    zerolog.Logger
	now    func() time.Time
}

type appOptions struct {
	root   string
	dbPath string
	log    zerolog.Logger
}

func NewApp(ctx context.Context, cfg config.Config, opts appOptions) (*App, error) {
	root := opts.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root, err = workspace.FindRoot(ctx, cwd)
		if err != nil {
			return nil, err
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	p, err := plugin.Default().Select(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
	}
	if l, ok := p.(interface{ SetLogger(zerolog.Logger) }); ok {
		l.SetLogger(opts.log)
	}

	dbPath := cfg.DBPath
	if opts.dbPath != "" {
		dbPath = opts.dbPath
	}
	cfg.DBPath = config.Resolve(root, dbPath)
	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	opts.log.Debug().Str("root", root).Str("db", cfg.DBPath).Str("language", p.Language()).Msg("app ready")

	return &App{
		cfg:    cfg,
		root:   root,
		layout: daypart.Layout{Root: root},
		db:     db,
		store:  store.NewStore(db),
		plugin: p,
		log:    opts.log,
		now:    time.Now,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Year is the puzzle year, taken from the workspace directory name.
func (a *App) Year() (int, error) {
	year, err := workspace.YearFromRoot(a.root)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
	}
	return year, nil
}

// Client returns the judge client, reading the session cookie on first use.
func (a *App) Client() (*aoc.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	session, err := workspace.ReadSession(config.Resolve(a.root, a.cfg.SessionFile))
	if err != nil {
		return nil, err
	}
	a.client = aoc.NewClient(aoc.Config{
		BaseURL:   a.cfg.BaseURL,
		Session:   session,
		UserAgent: a.cfg.UserAgent,
		Timeout:   a.cfg.HTTPTimeout,
		RetryMax:  a.cfg.RetryMax,
		Logger:    a.log,
	})
	return a.client, nil
}
