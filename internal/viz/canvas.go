package viz

import "strings"

// Braille Patterns: each cell packs 2x4 dots.
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

// Canvas is a braille-cell drawing surface with a world-coordinate
// projection. World space is the simulation's X/Z plane centered on the
// origin; Extent is the half-width of the visible square.
type Canvas struct {
	Width, Height int
	Extent        float64
	grid          [][]rune
}

func NewCanvas(w, h int, extent float64) *Canvas {
	c := &Canvas{Width: w, Height: h, Extent: extent}
	c.grid = make([][]rune, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Set lights one sub-pixel. Coordinates are in sub-pixel space:
// (Width*2) x (Height*4). Out-of-range points are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot projects a world-space point onto the canvas. Y-down flip keeps
// +Z up on screen.
func (c *Canvas) Plot(wx, wz float64) {
	if c.Extent <= 0 {
		return
	}

	subW := float64(c.Width * 2)
	subH := float64(c.Height * 4)

	x := int((wx + c.Extent) / (2 * c.Extent) * subW)
	y := int((c.Extent - wz) / (2 * c.Extent) * subH)
	c.Set(x, y)
}

// Disc plots a filled circle of world-space radius r, so heavier bodies
// read larger than test particles.
func (c *Canvas) Disc(wx, wz, r float64) {
	if r <= 0 {
		c.Plot(wx, wz)
		return
	}

	step := c.Extent * 2 / float64(c.Width*2)
	if step <= 0 {
		return
	}
	for dx := -r; dx <= r; dx += step {
		for dz := -r; dz <= r; dz += step {
			if dx*dx+dz*dz <= r*r {
				c.Plot(wx+dx, wz+dz)
			}
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
