package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	tanitiweb "finitefield.org/taniti-web"
	"finitefield.org/taniti-web/internal/cms"
	"finitefield.org/taniti-web/internal/dataset"
	handlersPkg "finitefield.org/taniti-web/internal/handlers"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/config"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

const shutdownTimeout = 10 * time.Second

// siteFS returns the template, asset and content trees. Dev mode reads them
// from the working directory so edits show up without a rebuild.
func siteFS(dev bool) (templates, assets, content fs.FS) {
	if dev {
		return os.DirFS("templates"), os.DirFS("public/assets"), os.DirFS("content")
	}
	return tanitiweb.Templates(), tanitiweb.Public(), tanitiweb.Content()
}

// openStore performs the startup fetch. The returned store always serves:
// on failure it holds the empty dataset and the load warning.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*dataset.Store, error) {
	if useSample {
		d, err := dataset.Decode(bytes.NewReader(tanitiweb.SampleData))
		if err != nil {
			return dataset.NewStaticStore(dataset.Empty()), err
		}
		return dataset.NewStaticStore(d), nil
	}
	src, err := dataset.ParseSource(cfg.Site.DataSource)
	if err != nil {
		logger.Warn("dataset source rejected", zap.String("source", cfg.Site.DataSource), zap.Error(err))
	}
	store := dataset.NewStore(src, logger)
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Site.LoadTimeout)
	defer cancel()
	_, err = store.Load(loadCtx)
	return store, err
}

func newServer(cfg config.Config, logger *zap.Logger, store *dataset.Store) (*server, error) {
	tmpl, assets, content := siteFS(cfg.Server.DevMode)
	v, err := newViews(tmpl, cfg.Server.DevMode)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	sessions, err := mw.NewSessions(cfg.Session, logger)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}
	return &server{
		logger:   logger,
		store:    store,
		content:  cms.NewLibrary(content, contentTTL(cfg)),
		pages:    site.Pages(),
		views:    v,
		layout:   newLayout(cfg),
		sessions: sessions,
		assets:   assets,
		metrics:  observability.NewMetrics(nil, logger),
	}, nil
}

func newLayout(cfg config.Config) handlersPkg.Layout {
	return handlersPkg.Layout{
		BaseURL:   cfg.Site.BaseURL,
		Analytics: handlersPkg.AnalyticsFromConfig(cfg.Analytics),
	}
}

func contentTTL(cfg config.Config) time.Duration {
	if cfg.Server.DevMode {
		return 0
	}
	return cfg.Site.ContentTTL
}

// cliLogger writes warnings to stderr so stdout stays clean for output.
func cliLogger() *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.WarnLevel))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := observability.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closer.Close()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := setupTracing(cfg.Telemetry)
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	// A failed load still serves: every page shows the warning banner.
	store, _ := openStore(ctx, cfg, logger)

	if cfg.Site.Watch && !useSample {
		if watcher, err := dataset.NewWatcher(store, logger); err != nil {
			logger.Warn("dataset watch disabled", zap.Error(err))
		} else if err := watcher.Start(ctx); err != nil {
			logger.Warn("dataset watch disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	s, err := newServer(cfg, logger, store)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.Bool("devMode", cfg.Server.DevMode),
			zap.String("dataset", store.Current().Source),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	full, _ := cmd.Flags().GetBool("full")
	fragment := "#/" + site.DefaultRoute
	if len(args) > 0 {
		fragment = args[0]
	}

	logger := cliLogger()
	store, _ := openStore(cmd.Context(), cfg, logger)
	tmpl, _, content := siteFS(cfg.Server.DevMode)
	v, err := newViews(tmpl, false)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	snap := store.Current()
	st := site.State{Data: snap.Data, Content: cms.NewLibrary(content, 0)}
	p := site.Pages().Dispatch(st, site.ParseRoute(fragment))
	pd := newLayout(cfg).Build(p, "", snap.Warning, false)

	layout := layoutFragment
	if full {
		layout = layoutFull
	}
	if err := v.page(cmd.OutOrStdout(), pd, layout); err != nil {
		return err
	}
	if p.NotFound {
		return fmt.Errorf("render %s: page not found", fragment)
	}
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg, cliLogger())
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	snap := store.Current()
	out := cmd.OutOrStdout()
	problems := snap.Data.Validate()
	for _, p := range problems {
		fmt.Fprintln(out, p.String())
	}
	if len(problems) > 0 {
		return fmt.Errorf("validate: %d problem(s) in %s", len(problems), snap.Source)
	}
	fmt.Fprintf(out, "ok: %s (%d stays, %d dining, %d itineraries, %d activities)\n",
		snap.Source, len(snap.Data.Stays), len(snap.Data.Dining), len(snap.Data.Itineraries), len(snap.Data.Activities))
	return nil
}
