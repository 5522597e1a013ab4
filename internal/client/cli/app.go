package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/config"
	"github.com/dmitrijs2005/gophcatalog/internal/client/metrics"
	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophcatalog/internal/client/router"
	"github.com/dmitrijs2005/gophcatalog/internal/client/services"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	session  *services.SessionStore
	catalog  *services.CatalogStore
	router   *router.Router
	registry *prometheus.Registry
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database and wires the API client and stores.
// Diagnostics go to stderr; user-facing output goes to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	store := metadata.NewSQLiteStore(db)

	registry := prometheus.NewRegistry()
	apiClient, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTokenSource(client.StorageTokenSource{Repo: store}),
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit),
		client.WithLogger(logger),
		client.WithMetrics(metrics.NewCollector(registry)),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		db:       db,
		session:  services.NewSessionStore(apiClient, store, logger),
		catalog:  services.NewCatalogStore(apiClient, logger),
		router:   router.New(),
		registry: registry,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}, nil
}

// Run restores the persisted session and serves the REPL until exit.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.session.RestoreSession(ctx); err != nil {
		a.logger.Warn(ctx, "session not restored", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to the catalog CLI (type 'help' for commands)")
	runREPL(ctx, a, a.router, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.session.IsAuthenticated() {
		return ""
	}
	if u := a.session.User(); u != nil && u.Username != "" {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return "(authenticated)"
}
