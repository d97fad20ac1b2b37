package system

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/models"
)

func reminderFixture(title string) models.Reminder {
	return models.Reminder{Title: title}
}

func TestMigrateCmd(t *testing.T) {
	ctx, out := setupStartedContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("MigrateCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDoctorCmd(t *testing.T) {
	ctx, out := setupStartedContext(t)
	ctx.Config.Notifications.Backend = constants.NotifyBackendLog

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("DoctorCmd.Run() error = %v\n%s", err, out.String())
	}
	for _, want := range []string{"Database reachable: OK", "Schema version: OK", "Reminder data: OK"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on an uninitialized database")
	}
	if !strings.Contains(out.String(), "Schema version: SKIPPED") {
		t.Errorf("output = %q", out.String())
	}
}

func TestNotifyCmd(t *testing.T) {
	ctx, out := setupStartedContext(t)
	soon := ctx.Now().Add(2 * time.Minute)

	r, err := ctx.Manager.Add(models.Reminder{
		Title: "Hydrate",
		Date:  soon.Format(constants.DateFormat),
		Time:  soon.Format(constants.TimeFormat),
	})
	if err != nil {
		t.Fatal(err)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ctx.Queue.Flush(flushCtx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No notifications due") {
		t.Errorf("dry run before due = %q", out.String())
	}

	sent, err := ctx.Dispatcher().DeliverDue(context.Background(), soon.Add(time.Minute))
	if err != nil || sent != 1 {
		t.Fatalf("DeliverDue() = %d, %v", sent, err)
	}
	if _, err := ctx.Store.GetNotification(r.ID); err == nil {
		t.Error("one-shot notification should be removed after delivery")
	}

	ctx.Config.Notifications.Enabled = false
	out.Reset()
	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReconcileCmd(t *testing.T) {
	ctx, out := setupStartedContext(t)
	future := ctx.Now().AddDate(0, 0, 2)
	r, err := ctx.Manager.Add(models.Reminder{
		Title: "Rest day",
		Date:  future.Format(constants.DateFormat),
		Time:  "09:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ctx.Queue.Flush(flushCtx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.DeleteNotification(r.ID); err != nil {
		t.Fatal(err)
	}

	if err := (&ReconcileCmd{Timeout: time.Second}).Run(ctx); err != nil {
		t.Fatalf("ReconcileCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Scheduled 1, cancelled 0, failed 0") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := ctx.Store.GetNotification(r.ID); err != nil {
		t.Errorf("notification not restored: %v", err)
	}

	out.Reset()
	if err := (&ReconcileCmd{Timeout: time.Second}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("second reconcile output = %q", out.String())
	}
}

func TestDaemon_TickAndEndpoints(t *testing.T) {
	ctx, _ := setupStartedContext(t)
	d := newDaemon(ctx)
	srv := httptest.NewServer(d.router())
	defer srv.Close()

	d.tick(context.Background())

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}
	var status daemonStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "ok" || status.LastRun.IsZero() {
		t.Errorf("status = %+v", status)
	}

	metrics, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer metrics.Body.Close()
	if metrics.StatusCode != http.StatusOK {
		t.Errorf("/metrics status = %d", metrics.StatusCode)
	}
}

func TestDaemonCmd_StopsOnCancel(t *testing.T) {
	ctx, _ := setupStartedContext(t)
	runCtx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- (&DaemonCmd{Schedule: "@every 1h", NoServer: true}).run(runCtx, ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestDaemonCmd_InvalidSchedule(t *testing.T) {
	ctx, _ := setupStartedContext(t)
	if err := (&DaemonCmd{Schedule: "whenever", NoServer: true}).run(context.Background(), ctx); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
