package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/jademcosta/logroller/pkg/adapters/externalqueue"
	"github.com/jademcosta/logroller/pkg/adapters/httpin"
	"github.com/jademcosta/logroller/pkg/adapters/objstorage"
	"github.com/jademcosta/logroller/pkg/compressor"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/datetimeprovider"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/filepattern"
	"github.com/jademcosta/logroller/pkg/o11y/tracing"
	"github.com/jademcosta/logroller/pkg/rollover"
	"github.com/jademcosta/logroller/pkg/shutdown"
	"github.com/jademcosta/logroller/pkg/trigger"
	"github.com/jademcosta/logroller/pkg/uploader"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	conf         *config.Config
	logger       *slog.Logger
	ctx          context.Context
	stopFunc     context.CancelFunc
	shutdownDone chan struct{}
}

func New(c *config.Config, logger *slog.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		conf:         c,
		logger:       logger,
		ctx:          ctx,
		stopFunc:     cancel,
		shutdownDone: make(chan struct{}),
	}
}

func (a *App) Start() {
	defer close(a.shutdownDone)
	metricRegistry := prometheus.NewRegistry()
	registerDefaultMetrics(metricRegistry)

	tracer, tracerShutdown := tracing.NewTracer(a.conf.Tracing)

	objStorage := createObjStorage(a.logger, a.conf.ObjectStorage, metricRegistry)
	externalQueue := createExternalQueue(a.logger, a.conf.ExternalQueue, metricRegistry)

	uploaderCtx, uploaderCancel := context.WithCancel(context.Background())

	upldr := uploader.New(
		a.logger, objStorage, externalQueue, a.conf.Upload, a.conf.Compression.Type,
		domain.NewObservableTaskDropper(a.logger, metricRegistry, uploader.ComponentName),
		tracer, metricRegistry, time.Now)

	comp := compressor.NewService(a.logger, a.conf.Compression, metricRegistry)

	coordinator := rollover.NewCoordinator(
		a.logger, comp, upldr, a.conf.Compression.Type,
		a.conf.Rollover.CompressionTimeout(), metricRegistry, time.Now)

	namer := filepattern.New(datetimeprovider.New(), a.conf.Rollover.FileNamePattern)

	sequencer := shutdown.NewSequencer(
		a.logger, coordinator, upldr, namer, uploaderCancel, a.conf.Rollover)

	trig := trigger.NewTimedTrigger(
		a.logger, coordinator, namer, a.conf.Rollover.ActiveFile,
		a.conf.Rollover.TriggerInterval())

	api := httpin.New(a.logger, a.conf.API, metricRegistry, a.conf.Version)

	apiShutdownDone := make(chan struct{})
	uploaderShutdownDone := make(chan struct{})

	var g run.Group

	a.addShutdownRelatedActors(&g, sequencer)

	g.Add(
		func() error {
			defer close(apiShutdownDone)
			err := api.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("api listening and serving failed", "error", err)
			}

			return err
		},
		func(error) {
			a.logger.Info("shutting down api")
			if err := api.Shutdown(); err != nil {
				a.logger.Error("api shutdown failed", "error", err)
			}
		},
	)

	triggerCtx, triggerCancel := context.WithCancel(context.Background())
	g.Add(
		func() error {
			trig.Run(triggerCtx)
			return nil
		},
		func(error) {
			triggerCancel()
		},
	)

	g.Add(
		func() error {
			defer close(uploaderShutdownDone)
			upldr.Run(uploaderCtx)
			return nil
		},
		func(error) {
			uploaderCancel()
		},
	)

	compressorCtx, compressorCancel := context.WithCancel(context.Background())
	g.Add(
		func() error {
			comp.Run(compressorCtx)
			return nil
		},
		func(error) {
			// the uploader may still be draining artifacts the compressor
			// produced, so it goes down first
			<-uploaderShutdownDone
			compressorCancel()
		},
	)

	err := g.Run()
	if err != nil {
		a.logger.Error("something went wrong when running the components", "error", err)
	}

	if err := tracerShutdown(context.Background()); err != nil {
		a.logger.Error("tracer shutdown failed", "error", err)
	}

	a.logger.Info("logroller stopped")
}

func (a *App) addShutdownRelatedActors(g *run.Group, sequencer *shutdown.Sequencer) {
	signalsCh := make(chan os.Signal, 2)
	signal.Notify(signalsCh, syscall.SIGINT, syscall.SIGTERM)

	g.Add(func() error {
		select {
		case s := <-signalsCh:
			a.logger.Info("received signal, starting shutdown sequence", "signal", s.String())
		case <-a.ctx.Done():
		}

		// the exit hook runs to completion before anything is interrupted
		sequencer.Run()
		return nil
	}, func(error) {
		a.stopFunc()
		signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	})
}

func (a *App) stop() <-chan struct{} {
	a.logger.Debug("app stop called")
	a.stopFunc()
	return a.shutdownDone
}

func registerDefaultMetrics(registry *prometheus.Registry) {
	registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
		),
	)
}

func createObjStorage(
	l *slog.Logger, c config.ObjectStorageConfig, metricRegistry *prometheus.Registry,
) objstorage.ObjStorageWithMetadata {
	objStorage, err := objstorage.New(l, metricRegistry, &c)
	if err != nil {
		l.Error("error creating object storage", "error", err)
		panic("error creating object storage: " + err.Error())
	}

	return objStorage
}

func createExternalQueue(
	l *slog.Logger, c config.ExternalQueueConfig, metricRegistry *prometheus.Registry,
) externalqueue.ExtQueueWithMetadata {
	externalQueue, err := externalqueue.New(l, metricRegistry, &c)
	if err != nil {
		l.Error("error creating external queue", "error", err)
		panic("error creating external queue: " + err.Error())
	}

	return externalQueue
}
