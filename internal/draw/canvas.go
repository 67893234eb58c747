package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Canvas is a monochrome pixel buffer with two pixels per terminal cell, stacked
// vertically. It shows a window of the play-field that is viewW wide and viewH
// tall, starting at play-field y Top, scaled to the terminal.
type Canvas struct {
	cols, rows int
	pixels     []bool // [y*cols + x], y in half-cells

	viewW, viewH float64
	top          float64
	sx, sy       float64

	offCol, offRow int

	hits []float64 // Scanline intersections, reused between fills
	out  []byte    // Render buffer, reused between frames
}

// NewCanvas creates a canvas of cols x rows terminal cells showing a viewW x viewH
// window of the play-field.
func NewCanvas(cols, rows int, viewW, viewH float64) *Canvas {
	c := &Canvas{viewW: viewW, viewH: viewH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area, keeping the play-field window.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows = cols, rows
		c.pixels = make([]bool, cols*rows*2)
	}
	c.sx = float64(cols) / c.viewW
	c.sy = float64(rows*2) / c.viewH
}

// SetOffset places the canvas at a 0-based terminal column and row.
func (c *Canvas) SetOffset(col, row int) {
	c.offCol, c.offRow = col, row
}

// SetTop scrolls the window so that play-field y is at the top edge.
func (c *Canvas) SetTop(y float64) {
	c.top = y
}

// Size returns the canvas size in terminal cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Pixel reports whether the pixel at pixel coordinates (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows*2 {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) set(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows*2 {
		c.pixels[y*c.cols+x] = true
	}
}

func (c *Canvas) toPixel(p Point) (float64, float64) {
	return p.X * c.sx, (p.Y - c.top) * c.sy
}

// Plot sets the pixel under a play-field point.
func (c *Canvas) Plot(p Point) {
	x, y := c.toPixel(p)
	c.set(int(math.Floor(x)), int(math.Floor(y)))
}

// Line draws a line between two play-field points with Bresenham's algorithm.
func (c *Canvas) Line(a, b Point) {
	fx1, fy1 := c.toPixel(a)
	fx2, fy2 := c.toPixel(b)
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	x2, y2 := int(math.Floor(fx2)), int(math.Floor(fy2))

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills the play-field rectangle at (x, y) of size w x h. Every pixel
// whose centre lies inside is set, and a rectangle never vanishes entirely.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := c.toPixel(Point{x, y})
	x1, y1 := c.toPixel(Point{x + w, y + h})

	px0, px1 := int(math.Round(x0)), int(math.Round(x1))-1
	py0, py1 := int(math.Round(y0)), int(math.Round(y1))-1
	if px1 < px0 {
		px1 = px0
	}
	if py1 < py0 {
		py1 = py0
	}
	px0, px1 = max(px0, 0), min(px1, c.cols-1)
	py0, py1 = max(py0, 0), min(py1, c.rows*2-1)
	for py := py0; py <= py1; py++ {
		row := c.pixels[py*c.cols : (py+1)*c.cols]
		for px := px0; px <= px1; px++ {
			row[px] = true
		}
	}
}

// StrokeRect draws the outline of a play-field rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	a, b := Point{x, y}, Point{x + w, y}
	d, e := Point{x, y + h}, Point{x + w, y + h}
	c.Line(a, b)
	c.Line(b, e)
	c.Line(e, d)
	c.Line(d, a)
}

// FillPolygon fills a polygon given in play-field coordinates with a scanline pass.
func (c *Canvas) FillPolygon(points []Point) {
	if len(points) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		_, y := c.toPixel(p)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	for y := max(int(math.Floor(minY)), 0); y <= min(int(math.Ceil(maxY)), c.rows*2-1); y++ {
		scan := float64(y) + 0.5
		c.hits = c.hits[:0]
		for i := range points {
			ax, ay := c.toPixel(points[i])
			bx, by := c.toPixel(points[(i+1)%len(points)])
			if (ay <= scan && by > scan) || (by <= scan && ay > scan) {
				c.hits = append(c.hits, ax+(scan-ay)/(by-ay)*(bx-ax))
			}
		}
		sort.Float64s(c.hits)
		for i := 0; i+1 < len(c.hits); i += 2 {
			for x := int(math.Ceil(c.hits[i] - 0.5)); x <= int(math.Floor(c.hits[i+1]-0.5)); x++ {
				c.set(x, y)
			}
		}
	}
}

// Cell converts a play-field point to a 1-based terminal column and row, including
// the canvas offset. Useful for placing text next to drawn shapes.
func (c *Canvas) Cell(p Point) (col, row int) {
	x, y := c.toPixel(p)
	return int(math.Floor(x)) + 1 + c.offCol, int(math.Floor(y))/2 + 1 + c.offRow
}

// Render writes the set pixels to w. Runs of cells in a row share one cursor move.
func (c *Canvas) Render(w io.Writer) error {
	out := c.out[:0]
	for row := 0; row < c.rows; row++ {
		upper := c.pixels[2*row*c.cols : (2*row+1)*c.cols]
		lower := c.pixels[(2*row+1)*c.cols : (2*row+2)*c.cols]
		inRun := false
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case upper[col] && lower[col]:
				ch = BlockFull
			case upper[col]:
				ch = BlockUpperHalf
			case lower[col]:
				ch = BlockLowerHalf
			default:
				inRun = false
				continue
			}
			if !inRun {
				out = append(out, "\033["...)
				out = strconv.AppendInt(out, int64(row+1+c.offRow), 10)
				out = append(out, ';')
				out = strconv.AppendInt(out, int64(col+1+c.offCol), 10)
				out = append(out, 'H')
				inRun = true
			}
			out = utf8.AppendRune(out, ch)
		}
	}
	c.out = out
	_, err := w.Write(out)
	return err
}
