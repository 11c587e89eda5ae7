package draw

import (
	"math"

	"github.com/tomz197/catcher/internal/physics"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. It maps a square world region centered on the origin onto the
// terminal with +Y pointing up and square pixels.
type Canvas struct {
	width     int    // Terminal columns
	height    int    // Terminal rows
	subHeight int    // height * 2
	pixels    []bool // [y * width + x]

	viewHalf float64 // World half-extent that must fit on screen
	scale    float64 // Pixels per world unit
	originX  float64 // Pixel position of the world origin
	originY  float64

	prev  []rune // Glyph last written to each cell
	force bool
}

// NewCanvas creates a canvas for a width x height terminal showing the world
// square [-viewHalf, viewHalf] on both axes.
func NewCanvas(width, height int, viewHalf float64) *Canvas {
	c := &Canvas{viewHalf: viewHalf}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions. A size change
// forces the next Render to repaint every cell.
func (c *Canvas) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width != c.width || height != c.height {
		c.width = width
		c.height = height
		c.subHeight = height * 2
		c.pixels = make([]bool, c.subHeight*width)
		c.prev = make([]rune, width*height)
		c.force = true
	}

	fit := math.Min(float64(c.width), float64(c.subHeight))
	c.scale = fit / (2 * c.viewHalf)
	c.originX = float64(c.width) / 2
	c.originY = float64(c.subHeight) / 2
}

// Width returns the terminal column count.
func (c *Canvas) Width() int { return c.width }

// Height returns the terminal row count.
func (c *Canvas) Height() int { return c.height }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, not only changed ones.
// Use it after anything else has drawn over the canvas area.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.width && y >= 0 && y < c.subHeight {
		c.pixels[y*c.width+x] = true
	}
}

// toPixel converts a world position to fractional pixel coordinates.
func (c *Canvas) toPixel(p physics.Vec) (float64, float64) {
	return c.originX + p.X*c.scale, c.originY - p.Y*c.scale
}

// span returns the inclusive pixel range covered by [center-half, center+half].
// Every shape covers at least one pixel.
func span(center, half float64) (lo, hi int) {
	lo = int(math.Round(center - half))
	hi = int(math.Round(center+half)) - 1
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (c *Canvas) rectPixels(center physics.Vec, half float64) (x0, x1, y0, y1 int) {
	px, py := c.toPixel(center)
	x0, x1 = span(px, half*c.scale)
	y0, y1 = span(py, half*c.scale)
	return
}

// FillRect fills the axis-aligned square with the given world half-size.
func (c *Canvas) FillRect(center physics.Vec, half float64) {
	x0, x1, y0, y1 := c.rectPixels(center, half)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.setPixel(x, y)
		}
	}
}

// StrokeRect draws the outline of the axis-aligned square with the given
// world half-size.
func (c *Canvas) StrokeRect(center physics.Vec, half float64) {
	x0, x1, y0, y1 := c.rectPixels(center, half)
	for x := x0; x <= x1; x++ {
		c.setPixel(x, y0)
		c.setPixel(x, y1)
	}
	for y := y0; y <= y1; y++ {
		c.setPixel(x0, y)
		c.setPixel(x1, y)
	}
}

func (c *Canvas) glyph(col, row int) rune {
	top := c.pixels[(row*2)*c.width+col]
	bottom := c.pixels[(row*2+1)*c.width+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.height; row++ {
		// Consecutive changed cells share one cursor move.
		cursorAt := -1
		for col := 0; col < c.width; col++ {
			i := row*c.width + col
			ch := c.glyph(col, row)
			if !c.force && c.prev[i] == ch {
				continue
			}
			if cursorAt != col {
				cw.MoveCursor(col+1, row+1)
			}
			cw.WriteRune(ch)
			c.prev[i] = ch
			cursorAt = col + 1
		}
	}
	c.force = false
}
