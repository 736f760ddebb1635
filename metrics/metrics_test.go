package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/c360studio/semreg/instance"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type probe struct {
	Hits int
}

type widget struct {
	ID string
}

func TestCollectorTracksLifecycle(t *testing.T) {
	c := NewCollector()

	m := instance.NewModule()
	m.SetObserver(c)

	constructedBefore := testutil.ToFloat64(constructedTotal)
	finalizedBefore := testutil.ToFloat64(finalizedTotal)
	shutdownsBefore := testutil.ToFloat64(shutdownsTotal)

	instance.TouchIn[probe](m)
	instance.TouchIn[widget](m)

	m.Lock()
	if got := testutil.ToFloat64(gateLocked); got != 1 {
		t.Errorf("gate gauge = %v after lock, want 1", got)
	}
	m.Unlock()
	if got := testutil.ToFloat64(gateLocked); got != 0 {
		t.Errorf("gate gauge = %v after unlock, want 0", got)
	}

	m.Shutdown()

	if got := testutil.ToFloat64(constructedTotal) - constructedBefore; got != 2 {
		t.Errorf("constructed delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(finalizedTotal) - finalizedBefore; got != 2 {
		t.Errorf("finalized delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(shutdownsTotal) - shutdownsBefore; got != 1 {
		t.Errorf("shutdowns delta = %v, want 1", got)
	}
}

func TestCollectorCountsViolations(t *testing.T) {
	c := NewCollector()

	m := instance.NewModule()
	m.SetEnforcement(instance.Unchecked)
	m.SetObserver(c)

	before := testutil.ToFloat64(violationsTotal)

	m.Lock()
	instance.MutableIn[probe](m)

	if got := testutil.ToFloat64(violationsTotal) - before; got != 1 {
		t.Errorf("violations delta = %v, want 1", got)
	}
}

func TestNewCollectorRegistersOnce(t *testing.T) {
	NewCollector()
	NewCollector()
}

func TestServerServesMetrics(t *testing.T) {
	srv := NewServer("127.0.0.1:0", nil)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer srv.Stop(context.Background())

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "semreg_instance_constructed_total") {
		t.Error("exposition missing semreg counters")
	}
}

func TestServerEmptyAddrIsNoOp(t *testing.T) {
	srv := NewServer("", nil)

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if srv.Addr() != "" {
		t.Errorf("Addr() = %q, want empty", srv.Addr())
	}
	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}
