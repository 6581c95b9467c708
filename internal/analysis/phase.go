package analysis

import (
	"math"
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	Points []Point
}

// NewPhasePortrait pairs positions with velocities. Extra values in the
// longer slice are ignored.
func NewPhasePortrait(xs, vs []float64) *PhasePortrait2D {
	n := min(len(xs), len(vs))
	portrait := &PhasePortrait2D{Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		portrait.Points[i] = Point{X: xs[i], Y: vs[i]}
	}
	return portrait
}

type span struct{ lo, hi float64 }

func (s span) padded() span {
	r := s.hi - s.lo
	if r == 0 {
		r = 1
	}
	return span{s.lo - 0.1*r, s.hi + 0.1*r}
}

func (s span) cell(v float64, cells int) int {
	return int((v - s.lo) / (s.hi - s.lo) * float64(cells-1))
}

// PhasePortraitToASCII draws the trajectory with position across and
// velocity up. The vx = 0 line is drawn when in view; the start is marked
// 'o' and the end '@'.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := span{portrait.Points[0].X, portrait.Points[0].X}
	ys := span{portrait.Points[0].Y, portrait.Points[0].Y}
	for _, p := range portrait.Points {
		xs.lo, xs.hi = math.Min(xs.lo, p.X), math.Max(xs.hi, p.X)
		ys.lo, ys.hi = math.Min(ys.lo, p.Y), math.Max(ys.hi, p.Y)
	}
	xs, ys = xs.padded(), ys.padded()

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	if ys.lo <= 0 && ys.hi >= 0 {
		row := height - 1 - ys.cell(0, height)
		for col := range canvas[row] {
			canvas[row][col] = '─'
		}
	}

	plot := func(p Point, r rune) {
		col := xs.cell(p.X, width)
		row := height - 1 - ys.cell(p.Y, height)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}
	for _, p := range portrait.Points {
		plot(p, '•')
	}
	plot(portrait.Points[0], 'o')
	plot(portrait.Points[len(portrait.Points)-1], '@')

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossing is a pass of the trajectory through a level.
type Crossing struct {
	Index int
	// Velocity is the slope at the crossing, linearly interpolated.
	Velocity float64
	Rising   bool
}

// Crossings finds every step where xs passes through level. Touching the
// level without passing through it does not count.
func Crossings(xs, vs []float64, level float64) []Crossing {
	n := min(len(xs), len(vs))
	var out []Crossing
	prev := 0.0
	for i := 0; i < n; i++ {
		d := xs[i] - level
		if d == 0 {
			continue
		}
		if prev != 0 && (prev < 0) != (d < 0) {
			frac := -prev / (d - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			v := vs[i]
			if i > 0 {
				v = vs[i-1] + frac*(vs[i]-vs[i-1])
			}
			out = append(out, Crossing{Index: i, Velocity: v, Rising: d > 0})
		}
		prev = d
	}
	return out
}
