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

func transfersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer"},
		Short:   "Move money between accounts",
	}

	cmd.AddCommand(createTransferCmd(opts), listTransfersCmd(opts), getTransferCmd(opts))

	return cmd
}

func createTransferCmd(opts *options) *cobra.Command {
	var req dto.CreateTransferRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Transfer funds between two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TransferResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/transfers/", nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.FromAccountID, "from", "", "Source account ID")
	f.StringVar(&req.ToAccountID, "to", "", "Destination account ID")
	f.StringVar(&req.Amount, "amount", "", "Amount, e.g. 200.00")
	f.StringVar(&req.Description, "description", "", "Description")
	f.StringVar(&req.Reference, "reference", "", "Reference")
	f.StringVar(&req.Date, "date", "", "Date (YYYY-MM-DD or RFC3339)")
	f.StringVar(&req.CreatedBy, "created-by", "", "Author")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listTransfersCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show transfer history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))

			var resp dto.ListTransfersResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/transfers/", q, nil, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tFROM\tTO\tAMOUNT\tSTATUS\tREFERENCE")
			for _, t := range resp.Transfers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.FromAccountID, t.ToAccountID, t.Amount, t.Status, truncate(t.Reference, 24))
			}
			fmt.Fprintf(tw, "\nTotal: %d\n", resp.Total)
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transfers")

	return cmd
}

func getTransferCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a transfer with both legs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TransferResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/transfers/"+url.PathEscape(args[0]), nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
