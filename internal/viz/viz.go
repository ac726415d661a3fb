// Package viz renders quick-look visualisations of evaluated fields: an
// interactive midplane heatmap (HTML) and a radial strength profile (PNG).
// These are debugging aids for tuning model parameters, not pipeline outputs.
package viz

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/imagine-consortium/galmag-go/fields"
)

// viridis color stops for the echarts visual map.
var viridisColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// MidplaneHeatmapHTML renders the field strength on the z-plane nearest the
// midplane as an interactive heatmap.
func MidplaneHeatmapHTML(fa *fields.FieldArray, title string, w io.Writer) error {
	g := fa.Grid
	if g == nil {
		return fmt.Errorf("viz: field array has no grid")
	}

	res := g.Resolution()
	kMid := midplaneIndex(g.AxisZ())

	xLabels := make([]string, res[0])
	for i, x := range g.AxisX() {
		xLabels[i] = fmt.Sprintf("%.1f", x)
	}
	yLabels := make([]string, res[1])
	for j, y := range g.AxisY() {
		yLabels[j] = fmt.Sprintf("%.1f", y)
	}

	data := make([]opts.HeatMapData, 0, res[0]*res[1])
	maxVal := 0.0
	for i := 0; i < res[0]; i++ {
		for j := 0; j < res[1]; j++ {
			s := fa.Strength(g.Index(i, j, kMid))
			if s > maxVal {
				maxVal = s
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, s}})
		}
	}
	if maxVal == 0 {
		maxVal = 1.0
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("z = %.2f kpc, max |B| = %.3g microgauss", g.AxisZ()[kMid], maxVal),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels, Name: "x (kpc)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "y (kpc)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxVal),
			InRange:    &opts.VisualMapInRange{Color: viridisColors},
		}),
	)
	hm.AddSeries("|B|", data)

	return hm.Render(w)
}

// RadialProfilePNG plots the mean midplane field strength against cylindrical
// radius and saves it to path.
func RadialProfilePNG(fa *fields.FieldArray, title, path string) error {
	g := fa.Grid
	if g == nil {
		return fmt.Errorf("viz: field array has no grid")
	}

	res := g.Resolution()
	kMid := midplaneIndex(g.AxisZ())

	// Bin midplane cells by cylindrical radius.
	const nBins = 40
	rCyl := g.RCylindrical()
	maxR := 0.0
	for i := 0; i < res[0]; i++ {
		for j := 0; j < res[1]; j++ {
			if r := rCyl[g.Index(i, j, kMid)]; r > maxR {
				maxR = r
			}
		}
	}
	if maxR == 0 {
		return fmt.Errorf("viz: degenerate grid, zero radial extent")
	}

	sums := make([]float64, nBins)
	counts := make([]int, nBins)
	binWidth := maxR / nBins
	for i := 0; i < res[0]; i++ {
		for j := 0; j < res[1]; j++ {
			idx := g.Index(i, j, kMid)
			bin := int(rCyl[idx] / binWidth)
			if bin >= nBins {
				bin = nBins - 1
			}
			sums[bin] += fa.Strength(idx)
			counts[bin]++
		}
	}

	pts := make(plotter.XYs, 0, nBins)
	for b := 0; b < nBins; b++ {
		if counts[b] == 0 {
			continue
		}
		pts = append(pts, plotter.XY{
			X: (float64(b) + 0.5) * binWidth,
			Y: sums[b] / float64(counts[b]),
		})
	}
	sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (kpc)"
	p.Y.Label.Text = "mean |B| (microgauss)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("midplane", line)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save radial profile plot: %w", err)
	}
	return nil
}

// midplaneIndex returns the z-axis index closest to z = 0.
func midplaneIndex(az []float64) int {
	best := 0
	for k, z := range az {
		if math.Abs(z) < math.Abs(az[best]) {
			best = k
		}
	}
	return best
}
