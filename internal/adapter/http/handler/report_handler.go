package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iho/storeledger/internal/adapter/http/dto"
	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetTrialBalance(ctx context.Context) (*domain.TrialBalance, error)
	GetBalanceSheet(ctx context.Context) (*domain.BalanceSheet, error)
	GetCashFlow(ctx context.Context, input usecase.PeriodInput) (*domain.CashFlow, error)
	GetPaymentAccountReport(ctx context.Context, input usecase.PeriodInput) (*domain.PaymentAccountReport, error)
	GetMonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyReport, error)
}

// ReportHandler serves the financial reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// TrialBalance returns the trial balance over all active accounts.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.reportUC.GetTrialBalance(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// BalanceSheet returns the current balance sheet.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	bs, err := h.reportUC.GetBalanceSheet(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to build balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(bs))
}

// CashFlow returns cash movements in the from/to window.
func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	cf, err := h.reportUC.GetCashFlow(r.Context(), usecase.PeriodInput{Start: from, End: to})
	if err != nil {
		writeDomainError(w, r, "failed to build cash flow", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowFromDomain(cf))
}

// PaymentAccounts returns per-account and per-method activity in the from/to window.
func (h *ReportHandler) PaymentAccounts(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	rep, err := h.reportUC.GetPaymentAccountReport(r.Context(), usecase.PeriodInput{Start: from, End: to})
	if err != nil {
		writeDomainError(w, r, "failed to build payment account report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentAccountReportFromDomain(rep))
}

// Monthly returns the expense and income summary of one calendar month.
// Year and month default to the current UTC month.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeDomainError(w, r, "invalid period", fmt.Errorf("%w: month %d", domain.ErrInvalidPeriod, month))
		return
	}

	rep, err := h.reportUC.GetMonthlyReport(r.Context(), year, time.Month(month))
	if err != nil {
		writeDomainError(w, r, "failed to build monthly report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyReportFromDomain(rep))
}
