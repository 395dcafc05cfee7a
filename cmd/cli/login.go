package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/iho/memberledger/internal/adapter/http/dto"
)

func loginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp dto.LoginResponse
			req := dto.LoginRequest{Email: email, Password: password}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&password, "password", "", "User password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
