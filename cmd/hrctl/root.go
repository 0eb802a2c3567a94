package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/platform/logger"
)

// Version is the application version.
const Version = "0.1.0"

// analyzer is satisfied by both the in-process use case and the remote client.
type analyzer interface {
	Analyze(ctx context.Context, samples []float64, fs *float64, mode entity.Mode) (*entity.Analysis, error)
}

// analyzeOptions holds flags shared by analyze and submit.
type analyzeOptions struct {
	input   string
	fs      float64
	mode    string
	out     string
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrctl",
		Short:         "Remote photoplethysmography heart-rate toolkit",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Diagnostics go to stderr so stdout stays machine readable.
			logger.InitWriter(cmd.ErrOrStderr(), "production")
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newAnalyzeCmd(), newSubmitCmd(), newSimulateCmd())
	return root
}

func addAnalyzeFlags(cmd *cobra.Command, o *analyzeOptions) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "-", "signal file (JSON or whitespace/comma separated numbers); - reads stdin")
	cmd.Flags().Float64Var(&o.fs, "fs", 30, "sample rate in Hz; overrides any rate stored in the input")
	cmd.Flags().StringVarP(&o.mode, "mode", "m", string(entity.ModeValue), "output mode: value or image")
	cmd.Flags().StringVarP(&o.out, "out", "o", "heart_rate.png", "PNG destination in image mode")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "print the value-mode result as JSON")
}

// runAnalysis reads the input, calls a and writes the outcome.
func runAnalysis(cmd *cobra.Command, a analyzer, o *analyzeOptions) error {
	in, err := readInput(cmd.InOrStdin(), o.input)
	if err != nil {
		return err
	}

	fs := in.fs
	if cmd.Flags().Changed("fs") || fs == nil {
		v := o.fs
		fs = &v
	}

	res, err := a.Analyze(cmd.Context(), in.samples, fs, entity.Mode(o.mode))
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), res, o)
}

func writeResult(w io.Writer, res *entity.Analysis, o *analyzeOptions) error {
	if res.Mode == entity.ModeImage {
		if err := os.WriteFile(o.out, res.Image, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.out, err)
		}
		_, err := fmt.Fprintf(w, "Diagnostics written to %s\n", o.out)
		return err
	}

	if o.jsonOut {
		return json.NewEncoder(w).Encode(map[string]float64{"heart_rate": res.Estimate.BPM})
	}
	_, err := fmt.Fprintf(w, "Heart rate: %.1f BPM\n", res.Estimate.BPM)
	return err
}
