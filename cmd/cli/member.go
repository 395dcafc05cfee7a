package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/memberledger/internal/adapter/http/dto"
)

func memberCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member operations",
	}

	cmd.AddCommand(
		memberGetCmd(opts),
		memberMutationCmd(opts, "increment", "Add to a member's balance and/or integral"),
		memberMutationCmd(opts, "decrement", "Subtract from a member's balance and/or integral"),
		memberBillsCmd(opts),
		memberReconcileCmd(opts),
	)
	return cmd
}

func memberPath(arg string) (string, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("invalid member id %q", arg)
	}
	return "/api/v1/members/" + strconv.FormatInt(id, 10), nil
}

func memberGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memberPath(args[0])
			if err != nil {
				return err
			}

			var member dto.MemberResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &member); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), member)
		},
	}
}

func memberMutationCmd(opts *options, action, short string) *cobra.Command {
	var (
		balance  string
		integral int64
		key      string
	)

	cmd := &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memberPath(args[0])
			if err != nil {
				return err
			}

			req := dto.MutationRequest{}
			if cmd.Flags().Changed("balance") {
				amount, err := decimal.NewFromString(strings.TrimSpace(balance))
				if err != nil {
					return fmt.Errorf("invalid --balance %q: %w", balance, err)
				}
				req.Balance = &amount
			}
			if cmd.Flags().Changed("integral") {
				req.Integral = &integral
			}
			if req.Balance == nil && req.Integral == nil {
				return fmt.Errorf("at least one of --balance or --integral is required")
			}

			client := newAPIClient(opts)
			client.idempotencyKey = key

			var member dto.MemberResponse
			if err := client.do(cmd.Context(), http.MethodPost, path+"/"+action, req, &member); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), member)
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "", "Balance amount, e.g. 12.50")
	cmd.Flags().Int64Var(&integral, "integral", 0, "Integral points")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency key for safe retries")
	return cmd
}

func memberBillsCmd(opts *options) *cobra.Command {
	var (
		kind      string
		direction string
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "bills <id>",
		Short: "List a member's bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memberPath(args[0])
			if err != nil {
				return err
			}

			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			if kind != "" {
				q.Set("kind", kind)
			}
			if direction != "" {
				q.Set("direction", direction)
			}

			var resp dto.ListBillsResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path+"/bills?"+q.Encode(), nil, &resp); err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tKIND\tDIRECTION\tAMOUNT\tPREVIOUS\tCURRENT\tCREATED")
			for _, b := range resp.Bills {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					truncate(b.ID, 12), b.Kind, b.Direction, b.Amount, b.PreviousValue, b.CurrentValue,
					b.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(tw, "total: %d\n", resp.Total)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (balance or integral)")
	cmd.Flags().StringVar(&direction, "direction", "", "Filter by direction (increment or decrement)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

func memberReconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <id>",
		Short: "Compare a member's stored values with the sum of its bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memberPath(args[0])
			if err != nil {
				return err
			}

			var report dto.ReconciliationResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path+"/reconciliation", nil, &report); err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Consistent {
				return fmt.Errorf("member %d is inconsistent with its bills", report.MemberID)
			}
			return nil
		},
	}
}
