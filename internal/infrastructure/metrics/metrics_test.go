package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/storeledger/internal/usecase"
)

var _ usecase.Metrics = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.AccountCreated("cash")
	m.TransferCompleted()
	m.ObserveReport("trial_balance", 15*time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AccountCreated("bank")
	m.AccountCreated("bank")
	m.AccountClosed()
	m.EntryPosted("expense")
	m.EntryDeleted("income")
	m.TransferFailed("insufficient_funds")
	m.IntegrityViolation("missing_transfer_leg")

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"accounts created", testutil.ToFloat64(m.AccountsCreated.WithLabelValues("bank")), 2},
		{"accounts closed", testutil.ToFloat64(m.AccountsClosed), 1},
		{"entries posted", testutil.ToFloat64(m.EntriesPosted.WithLabelValues("expense")), 1},
		{"entries deleted", testutil.ToFloat64(m.EntriesDeleted.WithLabelValues("income")), 1},
		{"transfer errors", testutil.ToFloat64(m.TransferErrors.WithLabelValues("insufficient_funds")), 1},
		{"integrity", testutil.ToFloat64(m.IntegrityViolations.WithLabelValues("missing_transfer_leg")), 1},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	New(registry)
}
