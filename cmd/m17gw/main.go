package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/M17-Project/m17-core-go/pkg/config"
	"github.com/M17-Project/m17-core-go/pkg/database"
	"github.com/M17-Project/m17-core-go/pkg/logger"
	"github.com/M17-Project/m17-core-go/pkg/m17"
	"github.com/M17-Project/m17-core-go/pkg/m17gw"
	"github.com/M17-Project/m17-core-go/pkg/metrics"
	"github.com/M17-Project/m17-core-go/pkg/mqtt"
	"github.com/M17-Project/m17-core-go/pkg/web"
)

var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	var configFile string
	var validateOnly bool

	cmd := &cobra.Command{
		Use:               "m17gw",
		Version:           fmt.Sprintf("%s (%s)", version, gitCommit),
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(configFile, validateOnly)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "config.yaml", "path to configuration file")
	cmd.Flags().BoolVar(&validateOnly, "validate", false, "validate configuration and exit")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string, validateOnly bool) error {
	log := logger.New(logger.Config{Level: "info", Format: "text"})
	log.Info("starting m17gw",
		logger.String("version", version),
		logger.String("commit", gitCommit))

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if validateOnly {
		log.Info("configuration is valid")
		return nil
	}

	log = logger.New(logger.Config{Level: cfg.Logging.Level, Format: "text"})

	callsign, err := m17.AddressFromCallsign(cfg.Server.Callsign)
	if err != nil {
		return fmt.Errorf("invalid server callsign %q: %w", cfg.Server.Callsign, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	_ = collector

	db, err := database.NewDB(database.Config{Path: cfg.Database.Path}, log.WithComponent("database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	stationRepo := database.NewHeardStationRepository(db.GetDB())
	messageRepo := database.NewTextMessageRepository(db.GetDB())
	log.Info("database initialized", logger.String("path", cfg.Database.Path))

	if cfg.Metrics.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metricsServer := metrics.NewPrometheusServer(
				metrics.PrometheusConfig{
					Enabled: cfg.Metrics.Enabled,
					Port:    cfg.Metrics.Port,
					Path:    cfg.Metrics.Path,
				},
				registry,
				log.WithComponent("metrics"),
			)
			if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("prometheus metrics server error", logger.Error(err))
			}
		}()
		log.Info("prometheus metrics server started",
			logger.Int("port", cfg.Metrics.Port),
			logger.String("path", cfg.Metrics.Path))
	}

	var mqttPublisher *mqtt.Publisher
	if cfg.MQTT.Enabled {
		mqttPublisher = mqtt.New(mqtt.Config{
			Enabled:     cfg.MQTT.Enabled,
			Broker:      cfg.MQTT.Broker,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			ClientID:    cfg.MQTT.ClientID,
		}, log.WithComponent("mqtt"))

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := mqttPublisher.Start(ctx); err != nil && err != context.Canceled {
				log.Error("mqtt publisher error", logger.Error(err))
			}
		}()
		log.Info("mqtt publisher started", logger.String("broker", cfg.MQTT.Broker))
	}

	if cfg.Web.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := web.StartWithDeps(ctx, cfg.Web, log.WithComponent("web"), stationRepo, messageRepo); err != nil && err != context.Canceled {
				log.Error("web server error", logger.Error(err))
			}
		}()
		log.Info("web server started",
			logger.String("host", cfg.Web.Host),
			logger.Int("port", cfg.Web.Port))
	}

	gwClient := m17gw.NewClient(cfg.Gateway, callsign, log.WithComponent("m17gw"))
	gwClient.OnStream(func(lsf m17.LSF, frame m17.StreamFrame) {
		log.Debug("stream frame received",
			logger.String("src", lsf.Src.String()),
			logger.String("dst", lsf.Dst.String()))
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := gwClient.Start(ctx); err != nil && err != context.Canceled {
			log.Error("gateway client error", logger.Error(err))
		}
	}()
	log.Info("gateway client started",
		logger.String("reflector", cfg.Gateway.ReflectorAddr),
		logger.Int("port", cfg.Gateway.ReflectorPort))

	log.Info("m17gw initialized", logger.String("callsign", cfg.Server.Callsign))

	sig := <-sigChan
	log.Info("received shutdown signal", logger.String("signal", sig.String()))

	cancel()
	if mqttPublisher != nil {
		mqttPublisher.Stop()
	}
	wg.Wait()

	log.Info("m17gw stopped")
	return nil
}
