package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/models"
)

// ErrQueueClosed is the task error for commands enqueued after Close.
var ErrQueueClosed = errors.New("notification queue closed")

// TaskState is the lifecycle of a queued command.
type TaskState int32

const (
	TaskPending TaskState = iota
	TaskRunning
	TaskDone
	TaskFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskDone:
		return "done"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task tracks one command through the queue.
type Task struct {
	Command Command

	mu    sync.Mutex
	state TaskState
	err   error
	done  chan struct{}
}

func newTask(cmd Command) *Task {
	return &Task{Command: cmd, done: make(chan struct{})}
}

func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err is the command's failure, nil until the task finishes.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done is closed once the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) setRunning() {
	t.mu.Lock()
	t.state = TaskRunning
	t.mu.Unlock()
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	if err != nil {
		t.state = TaskFailed
		t.err = err
	} else {
		t.state = TaskDone
	}
	t.mu.Unlock()
	close(t.done)
}

// Queue runs schedule and cancel commands against a Scheduler on a single
// worker, in the order they were enqueued. Callers never block on the
// side effect; they get a Task to observe instead.
type Queue struct {
	scheduler Scheduler
	metrics   *Metrics
	timeout   time.Duration

	mu      sync.Mutex
	tasks   []*Task
	last    *Task
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

func NewQueue(scheduler Scheduler, metrics *Metrics) *Queue {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Queue{
		scheduler: scheduler,
		metrics:   metrics,
		timeout:   constants.NotifyTaskTimeout,
		wake:      make(chan struct{}, 1),
		stopped:   make(chan struct{}),
	}
}

// Scheduler returns the side channel the queue drives.
func (q *Queue) Scheduler() Scheduler {
	return q.scheduler
}

func (q *Queue) Schedule(n models.Notification) *Task {
	return q.Enqueue(ScheduleCommand(n))
}

func (q *Queue) Cancel(id string) *Task {
	return q.Enqueue(CancelCommand(id))
}

// Enqueue adds cmd and returns its task without waiting for it to run.
func (q *Queue) Enqueue(cmd Command) *Task {
	task := newTask(cmd)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		task.finish(ErrQueueClosed)
		return task
	}
	q.tasks = append(q.tasks, task)
	q.last = task
	depth := len(q.tasks)
	q.mu.Unlock()

	q.metrics.QueueDepth.Set(float64(depth))
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return task
}

// Start runs the worker in the background until ctx ends or the queue is closed.
func (q *Queue) Start(ctx context.Context) {
	go func() {
		if err := q.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Notification queue stopped", "error", err)
		}
	}()
}

// Run processes commands until ctx ends, or until Close is called and the
// backlog is drained.
func (q *Queue) Run(ctx context.Context) error {
	defer close(q.stopped)
	for {
		task, closed := q.next()
		if task != nil {
			q.execute(ctx, task)
			continue
		}
		if closed {
			return nil
		}
		select {
		case <-ctx.Done():
			q.abandon(ctx.Err())
			return ctx.Err()
		case <-q.wake:
		}
	}
}

func (q *Queue) next() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, q.closed
	}
	task := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.metrics.QueueDepth.Set(float64(len(q.tasks)))
	return task, q.closed
}

func (q *Queue) abandon(err error) {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.closed = true
	q.mu.Unlock()

	for _, task := range tasks {
		task.finish(err)
	}
	q.metrics.QueueDepth.Set(0)
}

func (q *Queue) execute(ctx context.Context, task *Task) {
	task.setRunning()

	runCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	var err error
	switch task.Command.Kind {
	case KindSchedule:
		err = q.scheduler.Schedule(runCtx, task.Command.Notification)
	case KindCancel:
		err = q.scheduler.Cancel(runCtx, task.Command.ID)
	default:
		err = errors.New("unknown notification command: " + string(task.Command.Kind))
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		logger.Warn("Notification command failed",
			"kind", task.Command.Kind, "id", task.Command.ID, "error", err)
	} else {
		logger.Debug("Notification command done", "kind", task.Command.Kind, "id", task.Command.ID)
	}
	q.metrics.Commands.WithLabelValues(string(task.Command.Kind), outcome).Inc()
	task.finish(err)
}

// Flush waits for every command enqueued so far to finish.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	last := q.last
	q.mu.Unlock()
	if last == nil {
		return nil
	}
	select {
	case <-last.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting commands. A running worker drains the backlog and exits.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until Run has returned or ctx ends.
func (q *Queue) Wait(ctx context.Context) error {
	select {
	case <-q.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
