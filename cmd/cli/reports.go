package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/storeledger/internal/adapter/http/dto"
)

func reportsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Financial reports",
	}

	cmd.AddCommand(
		trialBalanceCmd(opts),
		jsonReportCmd(opts, "balance-sheet", "Show the balance sheet", "/api/v1/reports/balance-sheet", &dto.BalanceSheetResponse{}, false),
		jsonReportCmd(opts, "cash-flow", "Show cash flow for a date range", "/api/v1/reports/cash-flow", &dto.CashFlowResponse{}, true),
		jsonReportCmd(opts, "payment-accounts", "Show activity per payment account and method", "/api/v1/reports/payment-accounts", &dto.PaymentAccountReportResponse{}, true),
		monthlyReportCmd(opts),
	)

	return cmd
}

func trialBalanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Show the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TrialBalanceResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/reports/trial-balance", nil, nil, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printTrialBalance(cmd.OutOrStdout(), &resp)
		},
	}
}

func printTrialBalance(w io.Writer, tb *dto.TrialBalanceResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tTYPE\tDEBIT\tCREDIT\t")
	for _, row := range tb.Accounts {
		name := truncate(row.AccountName, 30)
		if row.Abnormal {
			name += " (!)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", name, row.AccountType, row.Debit, row.Credit)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t%s\t\n", tb.TotalDebits, tb.TotalCredits)
	if err := tw.Flush(); err != nil {
		return err
	}

	if tb.IsBalanced {
		fmt.Fprintln(w, "Trial balance is balanced")
	} else {
		fmt.Fprintf(w, "Trial balance is OUT OF BALANCE by %s\n", tb.Difference)
	}
	return nil
}

func jsonReportCmd(opts *options, use, short, path string, out any, ranged bool) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIfNotEmpty(q, "from", from)
			setIfNotEmpty(q, "to", to)

			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, q, nil, out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	if ranged {
		cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD or RFC3339)")
		cmd.Flags().StringVar(&to, "to", "", "End date, inclusive when given as YYYY-MM-DD")
	}

	return cmd
}

func monthlyReportCmd(opts *options) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show expenses and incomes for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if year != 0 {
				q.Set("year", strconv.Itoa(year))
			}
			if month != 0 {
				q.Set("month", strconv.Itoa(month))
			}

			var resp dto.MonthlyReportResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/reports/monthly", q, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to the current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (defaults to the current month)")

	return cmd
}

// errLedgerInconsistent makes the CLI exit non-zero when reconciliation finds problems.
var errLedgerInconsistent = errors.New("ledger is inconsistent")

func reconcileCmd(opts *options) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(opts)
			out := cmd.OutOrStdout()

			if accountID != "" {
				var resp dto.ReconciliationResultResponse
				path := "/api/v1/accounts/" + url.PathEscape(accountID) + "/reconciliation"
				if _, err := client.do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
					return err
				}
				if err := printJSON(out, resp); err != nil {
					return err
				}
				if !resp.IsReconciled {
					return errLedgerInconsistent
				}
				return nil
			}

			var resp dto.ReconciliationReportResponse
			if _, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/ledger/reconciliation", nil, nil, &resp, http.StatusConflict); err != nil {
				return err
			}
			if opts.json {
				if err := printJSON(out, resp); err != nil {
					return err
				}
			} else {
				printReconciliation(out, &resp)
			}
			if !resp.LedgerConsistent {
				return errLedgerInconsistent
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Reconcile a single account")

	return cmd
}

func printReconciliation(w io.Writer, r *dto.ReconciliationReportResponse) {
	if r.LedgerConsistent {
		fmt.Fprintln(w, "Consistency check PASSED")
	} else {
		fmt.Fprintln(w, "Consistency check FAILED")
	}
	fmt.Fprintf(w, "Accounts reconciled: %d/%d\n", r.ReconciledAccounts, r.TotalAccounts)
	fmt.Fprintf(w, "Transfer pairs:      %d\n", r.TransferPairs)

	for _, d := range r.Discrepancies {
		fmt.Fprintf(w, "  account %s (%s): recorded %s, calculated %s, difference %s\n",
			d.AccountID, d.AccountName, d.RecordedBalance, d.CalculatedBalance, d.Difference)
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s: %s %s\n", issue.Kind, issue.Reference, issue.Detail)
	}
}
