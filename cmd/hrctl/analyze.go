package main

import (
	"github.com/spf13/cobra"

	"rppg_backend/internal/app/di"
	"rppg_backend/internal/feature/heartrate/domain/entity"
)

func newAnalyzeCmd() *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Estimate heart rate in-process",
		Example: `  hrctl simulate --bpm 72 | hrctl analyze
  hrctl analyze -i trace.txt --fs 25 --mode image -o trace.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, di.NewLocalAnalyzer(entity.ModeValue), o)
		},
	}
	addAnalyzeFlags(cmd, o)
	return cmd
}
