package usecase

import "time"

type noopMetrics struct{}

func (noopMetrics) AccountCreated(string)                {}
func (noopMetrics) AccountClosed()                       {}
func (noopMetrics) EntryPosted(string)                   {}
func (noopMetrics) EntryDeleted(string)                  {}
func (noopMetrics) TransferCompleted()                   {}
func (noopMetrics) TransferFailed(string)                {}
func (noopMetrics) IntegrityViolation(string)            {}
func (noopMetrics) ObserveReport(string, time.Duration) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
