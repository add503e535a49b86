package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// Buffer is the render target: packed 0xRRGGBB pixels plus a depth
// value per pixel. It is allocated once and reused across frames; a
// single goroutine owns it.
type Buffer struct {
	Width  int
	Height int
	Pixels []uint32
	Depth  []float64
}

// NewBuffer allocates a cleared buffer.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
		Depth:  make([]float64, width*height),
	}
	b.Clear(0)
	return b
}

// Clear fills every pixel with the given color and resets the depth
// buffer to +Inf. Uses doubling copies, much faster than a plain loop.
func (b *Buffer) Clear(color uint32) {
	b.Pixels[0] = color
	for i := 1; i < len(b.Pixels); i *= 2 {
		copy(b.Pixels[i:], b.Pixels[:i])
	}
	b.Depth[0] = math.Inf(1)
	for i := 1; i < len(b.Depth); i *= 2 {
		copy(b.Depth[i:], b.Depth[:i])
	}
}

// InsideScreen reports whether the point is a valid pixel coordinate.
func (b *Buffer) InsideScreen(p image.Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// OutsideScreen is the complement of InsideScreen.
func (b *Buffer) OutsideScreen(p image.Point) bool {
	return !b.InsideScreen(p)
}

// SetPixel writes a pixel, ignoring out-of-bounds coordinates.
func (b *Buffer) SetPixel(x, y int, color uint32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pixels[y*b.Width+x] = color
}

// PixelAt reads a pixel; out-of-bounds coordinates read as 0.
func (b *Buffer) PixelAt(x, y int) uint32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pixels[y*b.Width+x]
}

// bringInside moves an off-screen endpoint onto the screen along the
// line toward other. Endpoints that cannot reach the screen along
// their axis of excess (vertical lines past the sides, horizontal
// lines past the top or bottom) come back unchanged and the caller
// skips the line.
func (b *Buffer) bringInside(p, other image.Point) image.Point {
	if b.InsideScreen(p) {
		return p
	}

	slope := float64(other.Y-p.Y) / float64(other.X-p.X)
	if math.IsNaN(slope) {
		// Coincident endpoints off screen.
		return p
	}

	if p.X < 0 || p.X >= b.Width {
		if math.IsInf(slope, 0) {
			return p
		}
		clamped := clampInt(p.X, 0, b.Width-1)
		p.Y += int(math.Round(float64(clamped-p.X) * slope))
		p.X = clamped
	}
	if p.Y < 0 || p.Y >= b.Height {
		if slope == 0 {
			return p
		}
		clamped := clampInt(p.Y, 0, b.Height-1)
		if !math.IsInf(slope, 0) {
			p.X += int(math.Round(float64(clamped-p.Y) / slope))
		}
		p.Y = clamped
	}
	return p
}

// DrawLine rasterizes the segment between p1 and p2. Off-screen
// endpoints are first brought inside along the segment's slope; if
// either endpoint stays outside the line is skipped entirely. The
// pixel set is symmetric in the endpoints.
func (b *Buffer) DrawLine(p1, p2 image.Point, color uint32) {
	p1 = b.bringInside(p1, p2)
	p2 = b.bringInside(p2, p1)
	if b.OutsideScreen(p1) || b.OutsideScreen(p2) {
		return
	}

	dx := absInt(p2.X - p1.X)
	dy := absInt(p2.Y - p1.Y)

	// Steep lines walk Y as the driving axis.
	steep := dy > dx
	if steep {
		p1.X, p1.Y = p1.Y, p1.X
		p2.X, p2.Y = p2.Y, p2.X
		dx, dy = dy, dx
	}
	if p1.X > p2.X {
		p1, p2 = p2, p1
	}

	yStep := 1
	if p2.Y < p1.Y {
		yStep = -1
	}

	// Fractional error accumulator; NaN for a single-point segment,
	// where the comparison stays false and one pixel lands.
	errStep := float64(dy) / float64(dx)
	slopeErr := -0.5
	y := p1.Y
	for x := p1.X; x <= p2.X; x++ {
		if steep {
			b.SetPixel(y, x, color)
		} else {
			b.SetPixel(x, y, color)
		}
		slopeErr += errStep
		if slopeErr >= 0 {
			y += yStep
			slopeErr--
		}
	}
}

// FillTriangle rasterizes a solid triangle with the scanline strategy:
// split at the middle vertex into a flat-bottom and a flat-top half,
// then walk both edges a row at a time.
func (b *Buffer) FillTriangle(p1, p2, p3 image.Point, color uint32) {
	if !b.boxOverlapsScreen(p1, p2, p3) {
		return
	}

	// Sort by Y so p1 is the top vertex.
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}
	if p3.Y < p1.Y {
		p1, p3 = p3, p1
	}
	if p3.Y < p2.Y {
		p2, p3 = p3, p2
	}

	switch {
	case p2.Y == p3.Y:
		b.fillFlatBottom(p1, p2, p3, color)
	case p1.Y == p2.Y:
		b.fillFlatTop(p1, p2, p3, color)
	default:
		// Split on the horizontal through the middle vertex.
		t := float64(p2.Y-p1.Y) / float64(p3.Y-p1.Y)
		p4 := image.Point{
			X: p1.X + int(math.Round(t*float64(p3.X-p1.X))),
			Y: p2.Y,
		}
		b.fillFlatBottom(p1, p2, p4, color)
		b.fillFlatTop(p2, p4, p3, color)
	}
}

// FillTriangleEdged fills the triangle and outlines its edges with the
// same color, closing the seams the scanline fill can leave between
// adjacent triangles.
func (b *Buffer) FillTriangleEdged(p1, p2, p3 image.Point, color uint32) {
	b.FillTriangle(p1, p2, p3, color)
	b.DrawLine(p1, p2, color)
	b.DrawLine(p2, p3, color)
	b.DrawLine(p3, p1, color)
}

// fillFlatBottom scans a triangle whose bottom edge v2-v3 is horizontal.
func (b *Buffer) fillFlatBottom(v1, v2, v3 image.Point, color uint32) {
	dy := float64(v2.Y - v1.Y)
	if dy == 0 {
		b.drawSpan(v1.Y, min(v1.X, v2.X, v3.X), max(v1.X, v2.X, v3.X), color)
		return
	}
	invSlope1 := float64(v2.X-v1.X) / dy
	invSlope2 := float64(v3.X-v1.X) / dy

	x1 := float64(v1.X)
	x2 := float64(v1.X)
	for y := v1.Y; y <= v2.Y; y++ {
		b.drawSpan(y, int(x1), int(x2), color)
		x1 += invSlope1
		x2 += invSlope2
	}
}

// fillFlatTop scans a triangle whose top edge v1-v2 is horizontal.
func (b *Buffer) fillFlatTop(v1, v2, v3 image.Point, color uint32) {
	dy := float64(v3.Y - v1.Y)
	if dy == 0 {
		b.drawSpan(v1.Y, min(v1.X, v2.X, v3.X), max(v1.X, v2.X, v3.X), color)
		return
	}
	invSlope1 := float64(v3.X-v1.X) / dy
	invSlope2 := float64(v3.X-v2.X) / dy

	x1 := float64(v3.X)
	x2 := float64(v3.X)
	for y := v3.Y; y > v1.Y; y-- {
		x1 -= invSlope1
		x2 -= invSlope2
		b.drawSpan(y, int(x1), int(x2), color)
	}
}

// drawSpan fills one horizontal scanline segment, clamped to the screen.
func (b *Buffer) drawSpan(y, xa, xb int, color uint32) {
	if y < 0 || y >= b.Height {
		return
	}
	if xa > xb {
		xa, xb = xb, xa
	}
	xa = clampInt(xa, 0, b.Width-1)
	xb = clampInt(xb, 0, b.Width-1)
	row := b.Pixels[y*b.Width : (y+1)*b.Width]
	for x := xa; x <= xb; x++ {
		row[x] = color
	}
}

// boxOverlapsScreen rejects triangles whose bounding box misses the
// screen entirely.
func (b *Buffer) boxOverlapsScreen(p1, p2, p3 image.Point) bool {
	minX := min(p1.X, p2.X, p3.X)
	maxX := max(p1.X, p2.X, p3.X)
	minY := min(p1.Y, p2.Y, p3.Y)
	maxY := max(p1.Y, p2.Y, p3.Y)
	return maxX >= 0 && minX < b.Width && maxY >= 0 && minY < b.Height
}

// FillTriangleDepth rasterizes a triangle with depth testing: three
// edge functions evaluated incrementally over the clamped bounding box,
// 1/z interpolated barycentrically and inverted per pixel so depth is
// perspective correct. Pixels write only where they beat the stored
// depth. Zero-area triangles are rejected before any division.
func (b *Buffer) FillTriangleDepth(tri ProjectedTriangle, color uint32) {
	v0, v1, v2 := tri.V[0], tri.V[1], tri.V[2]

	area2 := orient2d(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		// Normalize winding so the edge weights come out positive.
		v1, v2 = v2, v1
		area2 = -area2
	}

	minX := clampInt(min(v0.X, v1.X, v2.X), 0, b.Width-1)
	maxX := clampInt(max(v0.X, v1.X, v2.X), 0, b.Width-1)
	minY := clampInt(min(v0.Y, v1.Y, v2.Y), 0, b.Height-1)
	maxY := clampInt(max(v0.Y, v1.Y, v2.Y), 0, b.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Edge function steps: A is the per-column delta, B the per-row delta.
	a12, b12 := v1.Y-v2.Y, v2.X-v1.X
	a20, b20 := v2.Y-v0.Y, v0.X-v2.X
	a01, b01 := v0.Y-v1.Y, v1.X-v0.X

	w0Row := orient2d(v1.X, v1.Y, v2.X, v2.Y, minX, minY)
	w1Row := orient2d(v2.X, v2.Y, v0.X, v0.Y, minX, minY)
	w2Row := orient2d(v0.X, v0.Y, v1.X, v1.Y, minX, minY)

	invZ0 := 1 / v0.Z
	invZ1 := 1 / v1.Z
	invZ2 := 1 / v2.Z
	invArea := 1 / float64(area2)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		rowBase := y * b.Width

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				invZ := (float64(w0)*invZ0 + float64(w1)*invZ1 + float64(w2)*invZ2) * invArea
				depth := 1 / invZ

				idx := rowBase + x
				if depth < b.Depth[idx] {
					b.Depth[idx] = depth
					b.Pixels[idx] = color
				}
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}

		w0Row += b12
		w1Row += b20
		w2Row += b01
	}
}

// DrawTriangles renders a culled triangle list through the depth-tested
// fill; draw order does not matter. shadeToColor maps each triangle's
// shade intensity to a pixel color.
func (b *Buffer) DrawTriangles(tris []ProjectedTriangle, shadeToColor func(float64) uint32) {
	for _, tri := range tris {
		b.FillTriangleDepth(tri, shadeToColor(tri.Shade))
	}
}

// DrawTrianglesEdged renders with the scanline fill plus outlines,
// sorting back to front first since this path has no depth testing.
func (b *Buffer) DrawTrianglesEdged(tris []ProjectedTriangle, shadeToColor func(float64) uint32) {
	SortBackToFront(tris)
	for _, tri := range tris {
		color := shadeToColor(tri.Shade)
		p1 := image.Point{X: tri.V[0].X, Y: tri.V[0].Y}
		p2 := image.Point{X: tri.V[1].X, Y: tri.V[1].Y}
		p3 := image.Point{X: tri.V[2].X, Y: tri.V[2].Y}
		b.FillTriangleEdged(p1, p2, p3, color)
	}
}

// GrayColor maps a shade intensity in [0, 1] to a gray 0xRRGGBB pixel.
func GrayColor(intensity float64) uint32 {
	c := uint32(min(max(intensity, 0), 1) * 255)
	return c<<16 | c<<8 | c
}

// ToImage unpacks the pixel buffer into an RGBA image.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, p := range b.Pixels {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// SavePNG writes the buffer to a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, b.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// orient2d is the edge function: twice the signed area of abc.
func orient2d(ax, ay, bx, by, cx, cy int) int {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
