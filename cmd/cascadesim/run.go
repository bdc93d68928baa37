package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sirikiddo/RandClusterModel/internal/config"
	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/runner"
	"github.com/Sirikiddo/RandClusterModel/internal/stats"
)

// shutdownTimeout bounds how long the metrics server is given to drain
// active scrapes during graceful shutdown.
const shutdownTimeout = 5 * time.Second

func runCmd() *cobra.Command {
	var (
		configPath string
		seed       uint64
		rho        float64
		fVal       float64
		maxTime    float64
		protocol   int
		loadTest   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single cascade-delivery simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.Deployment.Seed = seed
			}
			if flags.Changed("rho") {
				cfg.Deployment.Rho = rho
			}
			if flags.Changed("f-val") {
				cfg.Channel.FVal = fVal
			}
			if flags.Changed("max-time") {
				cfg.Run.MaxTime = maxTime
			}
			if flags.Changed("protocol") {
				cfg.Run.Protocol = protocol
			}
			if flags.Changed("load-test") {
				cfg.Run.LoadTest = loadTest
			}

			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("validate configuration: %w", err)
			}

			return runSimulation(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	flags.Uint64Var(&seed, "seed", 0, "deployment PRNG seed (overrides config)")
	flags.Float64Var(&rho, "rho", 0, "node density, nodes per unit area (overrides config)")
	flags.Float64Var(&fVal, "f-val", 0, "channel frequency scalar (overrides config)")
	flags.Float64Var(&maxTime, "max-time", 0, "simulated time budget (overrides config)")
	flags.IntVar(&protocol, "protocol", 0, "MAC protocol: 0=TDMA, 1=listen-before-transmit (overrides config)")
	flags.BoolVar(&loadTest, "load-test", false, "disable early termination on delivery (overrides config)")

	return cmd
}

// loadConfig loads configuration from a file path or returns defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// runSimulation sets up logging and the Prometheus metrics endpoint,
// then runs the configured cascade once on a signal-aware context.
// The metrics HTTP server and the simulation run concurrently under
// an errgroup, so a scrape can observe the final metrics before the
// process exits on SIGINT/SIGTERM.
func runSimulation(cfg *config.Config) error {
	logger := newLogger(cfg.Log)

	logger.Info("cascadesim starting",
		slog.Uint64("seed", cfg.Deployment.Seed),
		slog.Float64("rho", cfg.Deployment.Rho),
		slog.Int("protocol", cfg.Run.Protocol),
		slog.String("metrics_addr", cfg.Metrics.Addr),
	)

	reg := prometheus.NewRegistry()
	collector := stats.NewCollector(reg)

	metricsSrv := newMetricsServer(cfg.Metrics, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path),
		)
		return listenAndServe(gCtx, metricsSrv, cfg.Metrics.Addr)
	})

	g.Go(func() error {
		if err := runAndReport(gCtx, cfg, collector, logger); err != nil {
			return err
		}
		<-gCtx.Done()
		return gracefulShutdown(gCtx, metricsSrv)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run cascadesim: %w", err)
	}

	logger.Info("cascadesim stopped")
	return nil
}

// runAndReport executes one simulation run, publishes its outcome as
// Prometheus metrics, and prints the completion summary.
func runAndReport(ctx context.Context, cfg *config.Config, collector *stats.Collector, logger *slog.Logger) error {
	run, err := runner.Execute(ctx, cfg)
	if err != nil {
		return fmt.Errorf("execute simulation: %w", err)
	}

	publishMetrics(run, collector)
	printSummary(run)

	logger.Info("simulation complete",
		slog.Float64("final_time", run.Result.FinalTime),
		slog.Bool("delivered", run.Result.Delivered),
		slog.Int("nodes_with_message", len(run.Result.WithMessage)),
	)
	return nil
}

// publishMetrics pushes the completed run's free-slot estimator and
// per-edge attempt/collision counters onto collector; printSummary
// prints the totals of the same attempt and edge counters to stdout.
// The free-slot estimator counts, per node, the arrival times of its
// communication neighbors' sends (send time plus propagation delay).
func publishMetrics(run *runner.Run, collector *stats.Collector) {
	history := make([][]float64, len(run.Points))
	for i := range history {
		for _, nb := range run.Comm.Neighbors(i) {
			delay := geometry.Dist(run.Points[i], run.Points[nb]) / run.Table.Radius
			for _, ts := range run.Result.History.All(nb) {
				history[i] = append(history[i], ts+delay)
			}
		}
		sort.Float64s(history[i])
	}

	ticks := stats.TickCounts(history, run.Result.FinalTime)
	probabilities := stats.EmptyRunProbability(ticks, 1)
	for node, p := range probabilities {
		collector.ObserveEmptySlotProbability(node, p)
	}

	for _, e := range run.Result.Logger.Edges() {
		edgeStats := run.Result.Logger.EdgeStats(e)
		collector.ObserveEdge(e.From, e.To, edgeStats.Sent, edgeStats.Collisions)
	}

	collector.NodesReached.Set(float64(len(run.Result.WithMessage)))

	var attempts int
	for i := range run.Points {
		attempts += run.Result.Logger.Attempts(i)
	}
	collector.AttemptsTotal.Add(float64(attempts))
}

// printSummary renders the human-readable completion report: elapsed
// simulated time, delivery outcome, and per-protocol attempt/collision
// totals.
func printSummary(run *runner.Run) {
	fmt.Println()
	fmt.Println("cascadesim run summary")
	fmt.Printf("  nodes:              %d\n", len(run.Points))
	fmt.Printf("  interference radius: %.4f\n", run.Table.Radius)
	fmt.Printf("  final time:         %.4f\n", run.Result.FinalTime)
	fmt.Printf("  delivered:          %v\n", run.Result.Delivered)
	fmt.Printf("  nodes with message: %d/%d\n", len(run.Result.WithMessage), len(run.Points))

	var attempts, sent, collisions int
	for _, e := range run.Result.Logger.Edges() {
		es := run.Result.Logger.EdgeStats(e)
		sent += es.Sent
		collisions += es.Collisions
	}
	for i := range run.Points {
		attempts += run.Result.Logger.Attempts(i)
	}
	fmt.Printf("  batch attempts:     %d\n", attempts)
	fmt.Printf("  edge sends:         %d\n", sent)
	fmt.Printf("  edge collisions:    %d\n", collisions)
}

// newLogger creates a structured logger in the configured level/format.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// newMetricsServer creates an HTTP server for the Prometheus metrics endpoint.
func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// listenAndServe creates a TCP listener using a context-aware
// ListenConfig and serves HTTP requests until the server is shut down.
func listenAndServe(ctx context.Context, srv *http.Server, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	return nil
}

// gracefulShutdown stops the metrics server once the signal-aware
// context is cancelled, giving active scrapes shutdownTimeout to drain.
func gracefulShutdown(ctx context.Context, srv *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	return nil
}
