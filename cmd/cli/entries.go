package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/storeledger/internal/adapter/http/dto"
)

func entriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Record and inspect expenses and incomes",
	}

	cmd.AddCommand(
		postEntryCmd(opts, "expense", "/api/v1/entries/expenses"),
		postEntryCmd(opts, "income", "/api/v1/entries/incomes"),
		listEntriesCmd(opts),
		getEntryCmd(opts),
		deleteEntryCmd(opts),
	)

	return cmd
}

func postEntryCmd(opts *options, kind, path string) *cobra.Command {
	var req dto.PostEntryRequest

	cmd := &cobra.Command{
		Use:   kind,
		Short: "Record an " + kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.EntryResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.AccountID, "account", "", "Account ID")
	f.StringVar(&req.Amount, "amount", "", "Amount, e.g. 125.50")
	f.StringVar(&req.Description, "description", "", "Description")
	f.StringVar(&req.Category, "category", "", "Category")
	f.StringVar(&req.Status, "status", "", "Status")
	f.StringVar(&req.PaymentMethod, "payment-method", "", "Payment method")
	f.StringVar(&req.Reference, "reference", "", "External reference")
	f.StringVar(&req.Notes, "notes", "", "Notes")
	f.StringVar(&req.Date, "date", "", "Date (YYYY-MM-DD or RFC3339)")
	f.StringVar(&req.CreatedBy, "created-by", "", "Author")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listEntriesCmd(opts *options) *cobra.Command {
	var (
		accountID, category, kind, from, to string
		limit                               int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			setIfNotEmpty(q, "account_id", accountID)
			setIfNotEmpty(q, "category", category)
			setIfNotEmpty(q, "kind", kind)
			setIfNotEmpty(q, "from", from)
			setIfNotEmpty(q, "to", to)

			var resp dto.ListEntriesResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/entries/", q, nil, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tKIND\tACCOUNT\tAMOUNT\tCATEGORY\tSTATUS\tDESCRIPTION")
			for _, e := range resp.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Date.Format("2006-01-02"), e.Kind, e.AccountID, e.Amount, e.Category, e.Status, truncate(e.Description, 40))
			}
			fmt.Fprintf(tw, "\nTotal: %d\n", resp.Total)
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&accountID, "account", "", "Filter by account ID")
	f.StringVar(&category, "category", "", "Filter by category")
	f.StringVar(&kind, "kind", "", "Filter by kind (expense or income)")
	f.StringVar(&from, "from", "", "Start date")
	f.StringVar(&to, "to", "", "End date")
	f.IntVar(&limit, "limit", 100, "Maximum number of entries")

	return cmd
}

func getEntryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.EntryResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/entries/"+url.PathEscape(args[0]), nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func deleteEntryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/api/v1/entries/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry %s deleted\n", args[0])
			return nil
		},
	}
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
