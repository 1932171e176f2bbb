package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/alerts"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/monitoring"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/scheduler"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/timeseries"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/presentation/api"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	k8shandlers "github.com/diwise/service-chassis/pkg/infrastructure/net/http/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
	"gopkg.in/yaml.v2"
)

const serviceName string = "iot-sensor-monitor"

type appConfig struct {
	AlertConfig      alerts.Config     `yaml:"alerts"`
	MonitoringConfig monitoring.Config `yaml:"monitoring"`
	SchedulerConfig  scheduler.Config  `yaml:"scheduler"`

	QueryTimeoutSeconds int `yaml:"queryTimeoutSeconds"`
}

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",
		enableTracing: "true",

		configurationFile: "/opt/diwise/config/config.yaml",
		thresholdsFile:    "/opt/diwise/config/thresholds.csv",
		datasourcesFile:   "/opt/diwise/config/datasources.csv",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "diwise",
		dbSSLMode:  "disable",

		allowedSeedTenants: "default",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfg, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	appCfg, err := parseExternalConfigFile(ctx, cfg)
	exitIf(err, logger, "could not create monitor config")

	thresholds, err := os.Open(flags[thresholdsFile])
	exitIf(err, logger, "could not open thresholds file")

	datasources, err := os.Open(flags[datasourcesFile])
	exitIf(err, logger, "could not open datasources file")

	runner, err := initialize(ctx, flags, appCfg, thresholds, datasources)
	exitIf(err, logger, "failed to initialize service runner")

	err = runner.Run(ctx)
	exitIf(err, logger, "failed to start service runner")
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig, thresholds, datasources io.ReadCloser) (servicerunner.Runner[appConfig], error) {
	log := logging.GetFromContext(ctx)

	probes := map[string]k8shandlers.ServiceProber{
		"rabbitmq": func(context.Context) (string, error) { return "ok", nil },
		"postgres": func(context.Context) (string, error) { return "ok", nil },
	}

	s, err := storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode],
	))
	exitIf(err, log, "could not create or connect to database")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	exitIf(err, log, "failed to init messenger")

	var alertSvc alerts.AlertService
	var monitor monitoring.Monitor
	var sched scheduler.Scheduler

	_, runner := servicerunner.New(ctx, *cfg,
		webserver("control", listen(flags[listenAddress]), port(flags[controlPort]),
			pprof(), liveness(func() error { return nil }), readiness(probes),
		),
		webserver("public", listen(flags[listenAddress]), port(flags[servicePort]), tracing(flags[enableTracing] == "true"),
			muxinit(func(ctx context.Context, identifier string, port string, appCfg *appConfig, handler *http.ServeMux) error {
				mux, err := api.RegisterHandlers(ctx, router.New(serviceName), alertSvc, monitor, s)
				if err != nil {
					return err
				}

				handler.Handle("/", mux)

				return nil
			}),
		),
		oninit(func(ctx context.Context, ac *appConfig) error {
			log.Debug("initializing servicerunner")

			queryTimeout := timeseries.DefaultQueryTimeout
			if ac.QueryTimeoutSeconds > 0 {
				queryTimeout = time.Duration(ac.QueryTimeoutSeconds) * time.Second
			}

			alertSvc = alerts.New(s, messenger, &ac.AlertConfig)
			monitor = monitoring.New(s, alertSvc, timeseries.New(queryTimeout), &ac.MonitoringConfig)
			sched = scheduler.New(s, monitor.RunScan, &ac.SchedulerConfig)

			return nil
		}),
		onstarting(func(ctx context.Context, appCfg *appConfig) (err error) {
			log.Debug("starting servicerunner")

			err = s.Initialize(ctx)
			if err != nil {
				return
			}

			allowedTenants := strings.Split(flags[allowedSeedTenants], ",")

			err = storage.SeedDatasources(ctx, s, datasources, allowedTenants)
			if err != nil {
				return
			}

			err = storage.SeedThresholds(ctx, s, thresholds, allowedTenants)
			if err != nil {
				return
			}

			messenger.Start()

			return sched.Start(ctx)
		}),
		onshutdown(func(ctx context.Context, appCfg *appConfig) error {
			log.Debug("shutdown servicerunner")

			stopCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			err := sched.Stop(stopCtx)
			messenger.Close()
			s.Close()

			return err
		}),
	)

	return runner, nil
}

func parseExternalConfigFile(_ context.Context, cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[allowedSeedTenants] = envOrDef(ctx, "ALLOWED_SEED_TENANTS", flags[allowedSeedTenants])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])
	flags[enableTracing] = envOrDef(ctx, "ENABLE_TRACING", flags[enableTracing])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "sensor monitor configuration file", apply(configurationFile))
	flag.Func("thresholds", "list of monitored sensor thresholds", apply(thresholdsFile))
	flag.Func("datasources", "list of tenant datasources", apply(datasourcesFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
