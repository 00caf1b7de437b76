package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus collectors and implements usecase.Metrics.
type Metrics struct {
	// Account metrics
	AccountsCreated *prometheus.CounterVec
	AccountsClosed  prometheus.Counter

	// Entry metrics
	EntriesPosted  *prometheus.CounterVec
	EntriesDeleted *prometheus.CounterVec

	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferErrors     *prometheus.CounterVec

	// Integrity and reports
	IntegrityViolations *prometheus.CounterVec
	ReportDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storeledger_accounts_created_total",
				Help: "Total number of accounts created by type",
			},
			[]string{"type"},
		),
		AccountsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "storeledger_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),

		EntriesPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storeledger_entries_posted_total",
				Help: "Total number of entries posted by kind",
			},
			[]string{"kind"},
		),
		EntriesDeleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storeledger_entries_deleted_total",
				Help: "Total number of entries deleted by kind",
			},
			[]string{"kind"},
		),

		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "storeledger_transfers_completed_total",
			Help: "Total number of completed transfers",
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storeledger_transfer_errors_total",
				Help: "Total number of rejected transfers by reason",
			},
			[]string{"error_type"},
		),

		IntegrityViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storeledger_integrity_violations_total",
				Help: "Ledger inconsistencies found while reading data, by kind",
			},
			[]string{"kind"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storeledger_report_duration_seconds",
				Help:    "Duration of report generation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
	}
}

func (m *Metrics) AccountCreated(accountType string) {
	m.AccountsCreated.WithLabelValues(accountType).Inc()
}

func (m *Metrics) AccountClosed() {
	m.AccountsClosed.Inc()
}

func (m *Metrics) EntryPosted(kind string) {
	m.EntriesPosted.WithLabelValues(kind).Inc()
}

func (m *Metrics) EntryDeleted(kind string) {
	m.EntriesDeleted.WithLabelValues(kind).Inc()
}

func (m *Metrics) TransferCompleted() {
	m.TransfersCompleted.Inc()
}

func (m *Metrics) TransferFailed(reason string) {
	m.TransferErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) IntegrityViolation(kind string) {
	m.IntegrityViolations.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveReport(report string, d time.Duration) {
	m.ReportDuration.WithLabelValues(report).Observe(d.Seconds())
}
