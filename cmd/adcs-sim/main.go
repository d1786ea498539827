package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/csdc6/adcs-sim/core"
	"github.com/csdc6/adcs-sim/internal/logging"
	"github.com/csdc6/adcs-sim/internal/observability"
	"github.com/csdc6/adcs-sim/timectrl"
)

type options struct {
	configPath  string
	exitPath    string
	duration    time.Duration
	metricsAddr string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "configs/satellite.yaml", "primary configuration document")
	flag.StringVar(&opts.exitPath, "exit-config", "", "optional exit configuration document, loaded at teardown")
	flag.DurationVar(&opts.duration, "duration", 60*time.Second, "total simulation duration")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "address for the /metrics endpoint (empty disables it)")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	if err := run(ctx, log, opts); err != nil {
		log.Error(ctx, "run failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log logging.Logger, opts options) error {
	collector, err := observability.NewConfigCollector(nil)
	if err != nil {
		return fmt.Errorf("metrics init: %w", err)
	}
	if opts.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(opts.metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "metrics server failed", logging.String("error", err.Error()))
			}
		}()
		log.Info(ctx, "metrics endpoint up", logging.String("addr", opts.metricsAddr))
	}

	tracer := otel.Tracer("adcs-sim")

	cfg := core.NewConfig()
	cfg.Metrics = collector
	cfg.Log = log

	_, span := tracer.Start(ctx, "config.Load",
		trace.WithAttributes(attribute.String("document", opts.configPath)))
	err = cfg.Load(opts.configPath)
	span.End()
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.configPath, err)
	}

	summary := cfg.Summary()
	log.Info(ctx, "configuration loaded",
		logging.String("path", opts.configPath),
		logging.Int("sensors", len(summary.SensorNames)),
		logging.Int("actuators", len(summary.ActuatorNames)),
		logging.Int("timeout_ms", cfg.GetTimeout()),
	)

	factory := core.NewDeviceFactory(cfg)
	factory.Metrics = collector

	_, buildSpan := tracer.Start(ctx, "factory.BuildAll")
	sensors := make(map[string]core.Sensor, len(summary.SensorNames))
	for _, name := range summary.SensorNames {
		sensor, ok := factory.GetSensor(name)
		if !ok {
			continue
		}
		sensors[name] = sensor
		log.Info(ctx, "sensor ready",
			logging.String("name", name),
			logging.Any("sampling", sensor.SamplingInterval()),
		)
	}
	actuators := make(map[string]core.Actuator, len(summary.ActuatorNames))
	for _, name := range summary.ActuatorNames {
		actuator, ok := factory.GetActuator(name)
		if !ok {
			continue
		}
		actuators[name] = actuator
		log.Info(ctx, "actuator ready",
			logging.String("name", name),
			logging.Any("sampling", actuator.SamplingInterval()),
		)
	}
	buildSpan.End()

	policy := timectrl.Policy{
		Fixed:    time.Duration(cfg.GetTimestepInMilliseconds()) * time.Millisecond,
		Variable: cfg.GetTimestepDecision(),
		Min:      time.Duration(cfg.GetMinTimestep() * float64(time.Millisecond)),
		Max:      time.Duration(cfg.GetMaxTimestep() * float64(time.Millisecond)),
	}
	tc := timectrl.New(time.Now().UTC(), policy)

	ticks := 0
	tc.AddListener(func(simTime time.Time) {
		ticks++
		log.Debug(ctx, "tick",
			logging.String("sim_time", simTime.Format(time.RFC3339Nano)),
			logging.Int("n", ticks),
		)
	})

	log.Info(ctx, "starting simulation clock",
		logging.Any("duration", opts.duration),
		logging.Any("fixed_step", policy.Fixed),
		logging.Any("variable", policy.Variable),
	)
	<-tc.Start(opts.duration)
	log.Info(ctx, "simulation clock finished", logging.Int("ticks", ticks))

	if opts.exitPath != "" {
		_, exitSpan := tracer.Start(ctx, "config.LoadExitFile",
			trace.WithAttributes(attribute.String("document", opts.exitPath)))
		err := cfg.LoadExitFile(opts.exitPath)
		exitSpan.End()
		if err != nil {
			return fmt.Errorf("load exit %s: %w", opts.exitPath, err)
		}
		log.Info(ctx, "exit configuration loaded", logging.String("path", opts.exitPath))
	}
	return nil
}
