package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rppg_backend/internal/feature/heartrate/transport/http/dto"
	"rppg_backend/internal/platform/signal"
)

func newSimulateCmd() *cobra.Command {
	opts := signal.DefaultPPGOptions()
	var (
		seconds float64
		out     string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Emit a synthetic PPG trace as an /analyze request body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.SampleRate <= 0 {
				return fmt.Errorf("--fs must be positive, got %v", opts.SampleRate)
			}
			if seconds <= 0 {
				return fmt.Errorf("--seconds must be positive, got %v", seconds)
			}

			fs := opts.SampleRate
			body := dto.AnalyzeRequest{
				GreenSignal: signal.NewPPGSim(opts).Seconds(seconds),
				Fs:          &fs,
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return json.NewEncoder(w).Encode(body)
		},
	}

	cmd.Flags().Float64Var(&opts.BPM, "bpm", opts.BPM, "pulse rate")
	cmd.Flags().Float64Var(&opts.SampleRate, "fs", opts.SampleRate, "sample rate in Hz")
	cmd.Flags().Float64Var(&seconds, "seconds", 30, "trace duration")
	cmd.Flags().Float64Var(&opts.Baseline, "baseline", opts.Baseline, "mean intensity")
	cmd.Flags().Float64Var(&opts.Amplitude, "amplitude", opts.Amplitude, "pulse amplitude")
	cmd.Flags().Float64Var(&opts.Drift, "drift", opts.Drift, "intensity drift per sample")
	cmd.Flags().Float64Var(&opts.Noise, "noise", opts.Noise, "peak noise amplitude")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "destination file; - writes stdout")
	return cmd
}
