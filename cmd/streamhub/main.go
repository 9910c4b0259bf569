package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/streamhub/core/config"
	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/core/server"
	"github.com/dmitrymomot/streamhub/internal/deeplink"
	"github.com/dmitrymomot/streamhub/internal/httpapi"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/internal/navigation"
	"github.com/dmitrymomot/streamhub/internal/service"
	"github.com/dmitrymomot/streamhub/internal/viewmodel"
	"github.com/dmitrymomot/streamhub/pkg/observable"
	"github.com/dmitrymomot/streamhub/pkg/streamreader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	log := logger.ForEnv(cfg.Env, cfg.AppName)

	models := service.NewHubService(
		service.WithInitialModel(model.New(cfg.InitialValue)),
		service.WithLogger(log.With(logger.Component("model"))),
	)
	defer models.Close()

	links := deeplink.NewHolder(
		deeplink.WithClearAfter(cfg.DeepLinkClearAfter),
		deeplink.WithLogger(log.With(logger.Component("deeplink"))),
	)
	defer links.Close()

	values := service.NewValueService(model.New(cfg.InitialValue))

	router := navigation.NewRouter()
	defer router.Close()

	readers := streamreader.New(streamreader.WithLogger(log.With(logger.Component("reader"))))
	defer readers.Close()
	router.Follow(readers, links)

	if cfg.LaunchDeepLink != "" {
		if err := links.Handle(cfg.LaunchDeepLink); err != nil {
			log.Warn("launch deep link ignored", logger.Component("deeplink"), logger.Error(err))
		}
	}
	if err := links.Ready(); err != nil {
		log.Warn("postponed deep link rejected", logger.Component("deeplink"), logger.Error(err))
	}

	vm := viewmodel.NewStreamViewModel(cfg.InitialValue, viewmodel.WithLogger(log.With(logger.Component("viewmodel"))))
	defer vm.Close()
	vm.Inject(ctx, models)

	combineVM := viewmodel.NewObservableViewModel(cfg.InitialValue)
	defer combineVM.Close()
	combineVM.Inject(values)

	var bag observable.Bag
	defer bag.CancelAll()
	bag.Add(combineVM.Observable().OnChange(func(m model.Model) {
		log.Info("combine model changed", logger.Component("viewmodel"), slog.Int("value", m.Value))
	}))

	streamreader.Add(readers, router.Subscribe(ctx), func(ctx context.Context, s navigation.State) error {
		log.InfoContext(ctx, "navigation changed",
			logger.Component("navigation"),
			slog.String("tab", string(s.Tab)),
			slog.Any("modal", s.Modal),
			slog.Int("stack", len(s.Path)))
		return nil
	})

	api := httpapi.New(models, values, links, router,
		httpapi.WithLogger(log.With(logger.Component("http"))),
		httpapi.WithKeepAlive(cfg.SSEKeepAlive),
		httpapi.WithReadinessChecks(models.Healthcheck, links.Healthcheck),
	)

	srv, err := server.NewFromConfig(cfg.Server,
		server.WithLogger(log),
		server.WithBaseContext(context.WithoutCancel(ctx)),
		server.WithOnShutdown(api.Shutdown),
	)
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, api.Handler()))

	if err := eg.Wait(); err != nil {
		log.Error("failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}
