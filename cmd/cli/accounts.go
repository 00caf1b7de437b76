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

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage payment and balance accounts",
	}

	cmd.AddCommand(
		listAccountsCmd(opts),
		getAccountCmd(opts),
		createAccountCmd(opts),
		updateAccountCmd(opts),
		deleteAccountCmd(opts),
	)

	return cmd
}

func listAccountsCmd(opts *options) *cobra.Command {
	var (
		limit, offset int
		includeClosed bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			if includeClosed {
				q.Set("include_closed", "true")
			}

			var resp dto.ListAccountsResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/accounts/", q, nil, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBALANCE\tSTATUS")
			for _, a := range resp.Accounts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, truncate(a.Name, 30), a.Type, a.Balance, a.Status)
			}
			fmt.Fprintf(tw, "\nTotal: %d\n", resp.Total)
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of accounts")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of accounts to skip")
	cmd.Flags().BoolVar(&includeClosed, "include-closed", false, "Include closed accounts")

	return cmd
}

func getAccountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func createAccountCmd(opts *options) *cobra.Command {
	var req dto.CreateAccountRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/accounts/", nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Account name")
	cmd.Flags().StringVar(&req.Type, "type", "", "Account type (cash, bank, asset, liability, credit, equity, revenue, expense)")
	cmd.Flags().StringVar(&req.AccountNumber, "account-number", "", "Bank account number")
	cmd.Flags().StringVar(&req.BankName, "bank-name", "", "Bank name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func updateAccountCmd(opts *options) *cobra.Command {
	var name, accountNumber, bankName, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateAccountRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("account-number") {
				req.AccountNumber = &accountNumber
			}
			if flags.Changed("bank-name") {
				req.BankName = &bankName
			}
			if flags.Changed("description") {
				req.Description = &description
			}

			var resp dto.AccountResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPatch, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name")
	cmd.Flags().StringVar(&accountNumber, "account-number", "", "Bank account number")
	cmd.Flags().StringVar(&bankName, "bank-name", "", "Bank name")
	cmd.Flags().StringVar(&description, "description", "", "Description")

	return cmd
}

func deleteAccountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Close an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s closed\n", args[0])
			return nil
		},
	}
}
