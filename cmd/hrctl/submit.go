package main

import (
	"time"

	"github.com/spf13/cobra"

	"rppg_backend/internal/app/di"
)

func newSubmitCmd() *cobra.Command {
	o := &analyzeOptions{}
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:     "submit",
		Short:   "Send a signal to a running analysis server",
		Example: `  hrctl simulate --bpm 90 | hrctl submit --server http://localhost:5000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, di.NewRemoteClient(server, timeout), o)
		},
	}
	addAnalyzeFlags(cmd, o)
	cmd.Flags().StringVar(&server, "server", "http://localhost:5000", "base URL of the analysis server")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}
