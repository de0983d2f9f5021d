package trend

import (
	"image/color"
	"io"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot renders the panel with gonum/plot: solid history, dashed projection.
func (p Panel) Plot() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "Year"
	pl.Y.Label.Text = "Population (thousands)"
	pl.X.Min, pl.X.Max = p.X.Domain[0], p.X.Domain[1]

	start, end := p.DashYears[0], p.DashYears[1]
	runs := []struct {
		samples []Sample
		dashed  bool
	}{
		{samples: samplesBetween(p.Samples, minYear, start), dashed: false},
		{samples: samplesBetween(p.Samples, start, end), dashed: true},
		{samples: samplesBetween(p.Samples, end, maxYear), dashed: false},
	}

	for _, run := range runs {
		if len(run.samples) < 2 {
			continue
		}
		xys := make(plotter.XYs, len(run.samples))
		for i, s := range run.samples {
			xys[i].X = float64(s.Year)
			xys[i].Y = s.Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, eris.Wrap(err, "trend: plot line")
		}
		line.LineStyle.Color = color.Black
		line.LineStyle.Width = vg.Points(1.5)
		if run.dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(p.dashPoints()), vg.Points(p.dashPoints())}
		}
		pl.Add(line)
	}
	return pl, nil
}

// SavePlot writes the chart to path; the extension picks the format
// (.png, .svg, .pdf, ...).
func (p Panel) SavePlot(path string) error {
	pl, err := p.Plot()
	if err != nil {
		return err
	}
	if err := pl.Save(vg.Points(p.Width), vg.Points(p.Height), path); err != nil {
		return eris.Wrapf(err, "trend: save plot %s", path)
	}
	return nil
}

// WritePlot encodes the chart to w in the given format (png, svg, pdf, ...).
func (p Panel) WritePlot(w io.Writer, format string) error {
	pl, err := p.Plot()
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(vg.Points(p.Width), vg.Points(p.Height), format)
	if err != nil {
		return eris.Wrapf(err, "trend: %s plot writer", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return eris.Wrap(err, "trend: write plot")
	}
	return nil
}

func (p Panel) dashPoints() float64 {
	if p.DashLength > 0 {
		return p.DashLength
	}
	return DefaultConfig().DashLength
}

const (
	minYear = -1 << 31
	maxYear = 1<<31 - 1
)

// samplesBetween returns the samples with from <= year <= to.
func samplesBetween(samples []Sample, from, to int) []Sample {
	var out []Sample
	for _, s := range samples {
		if s.Year >= from && s.Year <= to {
			out = append(out, s)
		}
	}
	return out
}
