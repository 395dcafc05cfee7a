package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iho/memberledger/internal/adapter/http/dto"
)

func dictCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Dictionary operations",
	}
	cmd.AddCommand(dictListCmd(opts), dictGetCmd(opts))
	return cmd
}

func dictListCmd(opts *options) *cobra.Command {
	var (
		keyword string
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dictionary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			if keyword != "" {
				q.Set("keyword", keyword)
			}

			var resp dto.ListDictsResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/dicts?"+q.Encode(), nil, &resp); err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tSIGN\tNAME\tSTATUS\tREMARK")
			for _, d := range resp.Dicts {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", d.ID, d.Sign, d.Name, d.Status, truncate(d.Remark, 40))
			}
			fmt.Fprintf(tw, "total: %d\n", resp.Total)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "Match name or sign")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

func dictGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <sign>",
		Short: "Show a dictionary entry by sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d dto.DictResponse
			path := "/api/v1/dicts/sign/" + url.PathEscape(args[0])
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &d); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
}
