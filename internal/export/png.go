package export

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Figure describes a line chart rendered with gonum/plot.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	// Width and Height in inches; zero means 8x5.
	Width  float64
	Height float64
}

func (f Figure) plot(xs []float64, series []Series) (*plot.Plot, error) {
	if len(xs) < 2 || len(series) == 0 {
		return nil, ErrEmptyTrace
	}
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Ys) != len(xs) {
			return nil, fmt.Errorf("export: series %q has %d points, want %d", s.Name, len(s.Ys), len(xs))
		}
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = s.Ys[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders the series against xs as a PNG image.
func (f Figure) WritePNG(w io.Writer, xs []float64, series []Series) error {
	p, err := f.plot(xs, series)
	if err != nil {
		return err
	}
	width, height := f.Width, f.Height
	if width <= 0 || height <= 0 {
		width, height = 8, 5
	}
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func (f Figure) SavePNG(path string, xs []float64, series []Series) error {
	return toFile(path, func(w io.Writer) error { return f.WritePNG(w, xs, series) })
}

// TraceSeries pulls the named columns out of a trace for plotting.
func TraceSeries(get func(string) ([]float64, error), names ...string) ([]Series, error) {
	out := make([]Series, 0, len(names))
	for _, name := range names {
		ys, err := get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Series{Name: name, Ys: ys})
	}
	return out, nil
}
