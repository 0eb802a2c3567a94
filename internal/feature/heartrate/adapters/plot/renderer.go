// Package plot renders heart-rate diagnostics as a PNG with gonum/plot.
package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/feature/heartrate/usecase"
)

const (
	// SpectrumMinBPM and SpectrumMaxBPM clip the spectrum panel.
	SpectrumMinBPM = 40.0
	SpectrumMaxBPM = 180.0

	figureSize = 10 * vg.Inch
	dpi        = 100
)

var (
	colorRaw      = color.RGBA{G: 128, A: 255}
	colorFiltered = color.RGBA{R: 255, A: 255}
	colorSpectrum = color.RGBA{B: 255, A: 255}
	colorPeak     = color.RGBA{R: 255, G: 165, A: 255}
)

var _ usecase.DiagnosticsRenderer = (*Renderer)(nil)

// Renderer draws three stacked panels: raw signal, filtered signal and power spectrum.
type Renderer struct {
	lowHz  float64
	highHz float64
}

// NewRenderer returns a Renderer that labels the filtered panel with the given band.
func NewRenderer(lowHz, highHz float64) *Renderer {
	return &Renderer{lowHz: lowHz, highHz: highHz}
}

// Render encodes the diagnostics figure as PNG.
func (r *Renderer) Render(ctx context.Context, raw []float64, est *entity.Estimate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if est == nil {
		return nil, errors.New("plot: nil estimate")
	}

	rawPlot, err := r.signalPanel("Raw Green Signal", "Intensity", raw, colorRaw)
	if err != nil {
		return nil, err
	}
	filteredPlot, err := r.signalPanel(fmt.Sprintf("Filtered Signal (%.2f–%.1f Hz)", r.lowHz, r.highHz), "Amplitude", est.Filtered, colorFiltered)
	if err != nil {
		return nil, err
	}
	spectrumPlot, err := r.spectrumPanel(est)
	if err != nil {
		return nil, err
	}

	img := vgimg.NewWith(vgimg.UseWH(figureSize, figureSize), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      3,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  4 * vg.Millimeter,
	}
	plots := [][]*gplot.Plot{{rawPlot}, {filteredPlot}, {spectrumPlot}}
	canvases := gplot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("plot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) signalPanel(title, yLabel string, ys []float64, c color.Color) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot: %s: %w", title, err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

func (r *Renderer) spectrumPanel(est *entity.Estimate) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = "Power Spectrum"
	p.X.Label.Text = "Frequency (BPM)"
	p.Y.Label.Text = "Power"

	var pts plotter.XYs
	maxPower := 0.0
	for k, f := range est.Spectrum.Frequencies {
		bpm := f * 60
		if bpm < SpectrumMinBPM || bpm > SpectrumMaxBPM {
			continue
		}
		pw := est.Spectrum.Power[k]
		pts = append(pts, plotter.XY{X: bpm, Y: pw})
		maxPower = max(maxPower, pw)
	}
	if maxPower == 0 {
		maxPower = 1
	}

	spectrum, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot: spectrum: %w", err)
	}
	spectrum.Color = colorSpectrum
	spectrum.Width = vg.Points(1)

	peak, err := plotter.NewLine(plotter.XYs{{X: est.BPM, Y: 0}, {X: est.BPM, Y: maxPower}})
	if err != nil {
		return nil, fmt.Errorf("plot: peak marker: %w", err)
	}
	peak.Color = colorPeak
	peak.Width = vg.Points(1.5)
	peak.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(spectrum, peak)
	p.Legend.Add(fmt.Sprintf("Peak: %.1f BPM", est.BPM), peak)
	p.Legend.Top = true
	p.X.Min = SpectrumMinBPM
	p.X.Max = SpectrumMaxBPM
	return p, nil
}
