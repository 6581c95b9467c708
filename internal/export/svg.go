package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/hapticsim/internal/profile"
)

// Series is one named line of a plot.
type Series struct {
	Name  string
	Color string
	Ys    []float64
}

var palette = []string{"#00ff00", "#ff8800", "#00aaff", "#ff00ff", "#ffff00"}

// LineSVG draws each series against xs, scaled to a shared y range.
func LineSVG(xs []float64, series []Series, width, height int) (string, error) {
	if len(xs) < 2 || len(series) == 0 {
		return "", ErrEmptyTrace
	}
	for _, s := range series {
		if len(s.Ys) != len(xs) {
			return "", fmt.Errorf("export: series %q has %d points, want %d", s.Name, len(s.Ys), len(xs))
		}
	}

	minX, maxX := extent(xs)
	minY, maxY := extent(series[0].Ys)
	for _, s := range series[1:] {
		lo, hi := extent(s.Ys)
		minY = min(minY, lo)
		maxY = max(maxY, hi)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if minY < 0 && maxY > 0 {
		y0 := float64(height) - (0-minY)/rangeY*float64(height)
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333" stroke-width="1"/>
`, y0, width, y0)
	}

	for i, s := range series {
		color := s.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for i, y := range s.Ys {
			px := (xs[i] - minX) / rangeX * float64(width)
			py := float64(height) - (y-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
			}
		}
		sb.WriteString("\"><title>" + s.Name + "</title></path>\n")
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// ProfileSVG plots U(x) and F(x) of prof over [from, to].
func ProfileSVG(w io.Writer, prof *profile.Profile, from, to float64, n, width, height int) error {
	xs, us, fs := prof.Sample(from, to, n)
	svg, err := LineSVG(xs, []Series{
		{Name: "potential", Color: "#00ff00", Ys: us},
		{Name: "force", Color: "#ff8800", Ys: fs},
	}, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}

func extent(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
