package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid of Width x Height cells, each holding 2x4
// sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels returns the sub-pixel resolution.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Curve draws ys as a polyline across the full canvas width, mapping lo to
// the bottom row and hi to the top.
func (c *Canvas) Curve(ys []float64, lo, hi float64) {
	if len(ys) < 2 {
		return
	}
	pw, _ := c.Pixels()
	px, py := -1, -1
	for i, v := range ys {
		x := i * (pw - 1) / (len(ys) - 1)
		y := c.Row(v, lo, hi)
		if i > 0 {
			c.DrawLine(px, py, x, y)
		}
		px, py = x, y
	}
}

// Row maps v in [lo, hi] to a sub-pixel row.
func (c *Canvas) Row(v, lo, hi float64) int {
	_, ph := c.Pixels()
	if hi <= lo {
		return ph / 2
	}
	return int(float64(ph-1) * (hi - v) / (hi - lo))
}

// VLine draws a dotted vertical line at sub-pixel column x.
func (c *Canvas) VLine(x int, step int) {
	_, ph := c.Pixels()
	if step < 1 {
		step = 1
	}
	for y := 0; y < ph; y += step {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
