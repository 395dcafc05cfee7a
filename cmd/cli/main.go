package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "memberledger-cli",
		Short:         "MemberLedger CLI tool",
		Long:          `A command line interface for the MemberLedger member admin API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("MEMBERLEDGER_URL", "http://localhost:8080"), "Base URL of the MemberLedger API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("MEMBERLEDGER_TOKEN"), "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		loginCmd(opts),
		memberCmd(opts),
		dictCmd(opts),
		migrateCmd(),
		hashPasswordCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
