package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/julianstephens/fitlife/internal/config"
	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/keyring"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/notifier"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/storage"
	"github.com/julianstephens/fitlife/internal/storage/postgres"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Config   *config.Config
	Store    storage.Provider
	Manager  *reminders.Manager
	Queue    *notifier.Queue
	Metrics  *notifier.Metrics
	Registry *prometheus.Registry
	Out      io.Writer

	// ConfigFile is the config path requested on the command line.
	ConfigFile string

	queueStarted bool
}

// OpenStore picks the storage backend for cfg. A connection string from
// FITLIFE_DB_CONNECTION or the OS keyring wins over the configured database;
// a PostgreSQL URL written in the config file must not carry a password.
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	connStr, source, err := keyring.ResolveConnectionString()
	if err != nil {
		logger.Warn("Keyring lookup failed", "error", err)
	}
	if source != keyring.SourceNone {
		logger.Debug("Using connection string", "source", source)
		return postgres.New(connStr, cfg.UserID), nil
	}

	if postgres.IsConnString(cfg.Database) {
		if err := postgres.ValidateConnString(cfg.Database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use %s, 'fitlife keyring set' or .pgpass instead", constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(cfg.Database, cfg.UserID), nil
	}
	return sqlite.NewStore(cfg.Database, cfg.UserID), nil
}

// NewContext wires the manager, queue and metrics around store. The queue is
// nil when notifications are disabled.
func NewContext(cfg *config.Config, store storage.Provider) *Context {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := notifier.NewMetrics(reg)

	var queue *notifier.Queue
	if cfg.Notifications.Enabled {
		queue = notifier.NewQueue(notifier.NewStoreScheduler(store), metrics)
	}

	mgr := reminders.NewManager(reminders.NewStore(), reminders.Options{
		Provider: store,
		Queue:    queue,
		Location: cfg.Location(),
	})

	return &Context{
		Config:   cfg,
		Store:    store,
		Manager:  mgr,
		Queue:    queue,
		Metrics:  metrics,
		Registry: reg,
		Out:      os.Stdout,
	}
}

// Start loads the reminder list and starts the notification worker.
func (c *Context) Start(ctx context.Context) error {
	if err := c.Manager.Load(); err != nil {
		return err
	}
	if c.Queue != nil && !c.queueStarted {
		c.Queue.Start(ctx)
		c.queueStarted = true
	}
	return nil
}

// Close drains queued notification commands and closes the store.
func (c *Context) Close() error {
	if c.Queue != nil && c.queueStarted {
		c.Queue.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*constants.NotifyTaskTimeout)
		defer cancel()
		if err := c.Queue.Wait(ctx); err != nil {
			logger.Warn("Notification queue did not drain", "error", err)
		}
		c.queueStarted = false
	}
	return c.Store.Close()
}

// Sender builds the delivery backend named in the config.
func (c *Context) Sender() notifier.Sender {
	if c.Config.Notifications.Backend == constants.NotifyBackendLog {
		return notifier.LogSink{}
	}
	return notifier.NewTray(uint32(c.Config.Notifications.DurationMs))
}

func (c *Context) Dispatcher() *notifier.Dispatcher {
	return notifier.NewDispatcher(c.Store, c.Sender(), c.Config.Location(), c.Metrics)
}

func (c *Context) Now() time.Time {
	return c.Manager.Now()
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Writer is where command output goes, stdout unless Out is set.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
