// Package render draws the simulated paths and the terminal price
// distribution as PNG images.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/contactkeval/option-mc/internal/logger"
	"github.com/contactkeval/option-mc/internal/simulate"
)

const (
	PathsFile    = "mc_gbm_paths.png"
	TerminalFile = "mc_terminal_dist.png"
)

var (
	strikeColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	markerColor = color.Black
	strikeDash  = []vg.Length{vg.Points(6), vg.Points(4)}
)

var ErrNothingToDraw = errors.New("nothing to draw")

// PathsPNG draws every stride-th simulated path against the step index,
// with the strike as a dashed line and the initial price marked at step 0.
func PathsPNG(paths *simulate.PathSet, s0, strike float64, stride int, file string) error {
	if paths == nil || paths.Paths() == 0 {
		return ErrNothingToDraw
	}
	if stride < 1 {
		stride = 1
	}

	p := plot.New()
	p.Title.Text = "Monte Carlo Simulation of GBM Price Paths"
	p.X.Label.Text = "Time Steps"
	p.Y.Label.Text = "Price"
	p.Add(plotter.NewGrid())

	drawn := 0
	for i := 0; i < paths.Paths(); i += stride {
		col := paths.Path(i)
		xys := make(plotter.XYs, len(col))
		for t, v := range col {
			xys[t].X = float64(t)
			xys[t].Y = v
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		l.Width = vg.Points(0.8)
		l.Color = plotutil.Color(drawn)
		p.Add(l)
		drawn++
	}

	strikeLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: strike},
		{X: float64(paths.Steps()), Y: strike},
	})
	if err != nil {
		return err
	}
	strikeLine.Color = strikeColor
	strikeLine.Dashes = strikeDash
	strikeLine.Width = vg.Points(1.5)

	start, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: s0}})
	if err != nil {
		return err
	}
	start.Shape = draw.CrossGlyph{}
	start.Color = markerColor
	start.Radius = vg.Points(4)

	p.Add(strikeLine, start)
	p.Legend.Add("Strike Price", strikeLine)
	p.Legend.Add("Initial Price", start)

	logger.Debugf("render: %d of %d paths to %s", drawn, paths.Paths(), file)
	return p.Save(14*vg.Inch, 6*vg.Inch, file)
}

// TerminalHistogramPNG draws the density of the terminal prices in bins
// buckets with the strike as a dashed vertical line.
func TerminalHistogramPNG(terminal []float64, strike float64, bins int, file string) error {
	if len(terminal) == 0 {
		return ErrNothingToDraw
	}
	if bins < 1 {
		bins = 1
	}

	p := plot.New()
	p.Title.Text = "Distribution of Terminal Stock Prices (S_T)"
	p.X.Label.Text = "Price"
	p.Y.Label.Text = "Density"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(terminal), bins)
	if err != nil {
		return err
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 31, G: 119, B: 180, A: 153}

	top := 0.0
	for _, b := range h.Bins {
		top = math.Max(top, b.Weight)
	}
	strikeLine, err := plotter.NewLine(plotter.XYs{{X: strike, Y: 0}, {X: strike, Y: top}})
	if err != nil {
		return err
	}
	strikeLine.Color = strikeColor
	strikeLine.Dashes = strikeDash
	strikeLine.Width = vg.Points(1.5)

	p.Add(h, strikeLine)
	p.Legend.Add("Strike Price", strikeLine)

	logger.Debugf("render: histogram of %d prices in %d bins to %s", len(terminal), bins, file)
	return p.Save(7*vg.Inch, 5*vg.Inch, file)
}
