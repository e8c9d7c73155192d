package app

import (
	"context"
	"errors"
	"net/http"
	"redblack/internal/config"
	"redblack/internal/metrics"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run serves the API and the metrics endpoint until ctx is cancelled
func (s *App) Run(ctx context.Context) error {
	err := config.Load(".env")
	s.initServiceProvider()

	sp := s.ServiceProvider
	log := sp.Logger()
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Warn("no .env file loaded", zap.Error(err))
	}

	r := sp.Router(ctx)

	apiSrv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := &http.Server{
		Addr: sp.HTTPCfg().MetricsAddress(),
		Handler: metrics.NewMux(sp.Collector().Registry(), func(ctx context.Context) error {
			_, err := sp.GameService(ctx).HouseReport(ctx)
			return err
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", apiSrv.Addr))
		return serve(apiSrv)
	})
	g.Go(func() error {
		log.Info("starting metrics server", zap.String("addr", metricsSrv.Addr))
		return serve(metricsSrv)
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown(apiSrv, metricsSrv)
	})

	return g.Wait()
}

func (s *App) shutdown(servers ...*http.Server) error {
	sp := s.ServiceProvider
	log := sp.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := sp.GameService(ctx).Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := sp.Dispatcher(ctx).Close(ctx); err != nil {
		errs = append(errs, err)
	}

	log.Info("server stopped")
	return errors.Join(errs...)
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
