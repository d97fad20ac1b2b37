package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/logger"
)

// DaemonCmd delivers due notifications on a cron schedule and serves health
// and metrics endpoints until interrupted.
type DaemonCmd struct {
	Schedule    string `help:"Cron schedule for delivery runs. Defaults to daemon.schedule."`
	MetricsAddr string `help:"Listen address for /healthz and /metrics. Defaults to daemon.metrics_addr." name:"metrics-addr"`
	NoServer    bool   `help:"Do not start the HTTP server."`
}

func (c *DaemonCmd) Run(app *cli.Context) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return c.run(ctx, app)
}

func (c *DaemonCmd) run(ctx context.Context, app *cli.Context) error {
	schedule := c.Schedule
	if schedule == "" {
		schedule = app.Config.Daemon.Schedule
	}
	addr := c.MetricsAddr
	if addr == "" {
		addr = app.Config.Daemon.MetricsAddr
	}

	d := newDaemon(app)

	sched := cron.New(
		cron.WithLocation(app.Config.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)
	if _, err := sched.AddFunc(schedule, func() { d.tick(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.tick(ctx)
		sched.Start()
		logger.Info("Daemon started", "schedule", schedule, "backend", app.Sender().Name())
		<-ctx.Done()
		<-sched.Stop().Done()
		logger.Info("Daemon stopped")
		return nil
	})

	if !c.NoServer && addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           d.router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

type daemonStatus struct {
	Status    string    `json:"status"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastSent  int       `json:"last_sent"`
	LastError string    `json:"last_error,omitempty"`
}

type daemon struct {
	app *cli.Context

	mu     sync.Mutex
	status daemonStatus
}

func newDaemon(app *cli.Context) *daemon {
	return &daemon{app: app, status: daemonStatus{Status: "starting"}}
}

// tick delivers what is due, then reloads the list and reconciles so edits
// made by other processes are picked up. Delivery runs first so a due
// one-shot is sent before reconcile drops it as past.
func (d *daemon) tick(ctx context.Context) {
	sent, err := d.app.Dispatcher().DeliverDue(ctx, d.app.Now())
	if err != nil {
		logger.Error("Delivery run failed", "error", err)
	} else if sent > 0 {
		logger.Info("Delivered notifications", "count", sent)
	}

	if rerr := d.app.Manager.Load(); rerr != nil {
		logger.Warn("Failed to reload reminders", "error", rerr)
	} else if _, rerr := d.app.Manager.Reconcile(ctx); rerr != nil {
		logger.Warn("Reconcile failed", "error", rerr)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.status.Status = "ok"
	d.status.LastRun = d.app.Now()
	d.status.LastSent = sent
	d.status.LastError = ""
	if err != nil {
		d.status.Status = "degraded"
		d.status.LastError = err.Error()
	}
}

func (d *daemon) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", d.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(d.app.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

func (d *daemon) handleHealth(w http.ResponseWriter, _ *http.Request) {
	d.mu.Lock()
	status := d.status
	d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status.Status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// cronLogger routes cron's own messages to the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error(msg, append(keysAndValues, "error", err)...)
}
