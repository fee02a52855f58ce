package scratchoff

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ErrNoBackingStore is returned when pixels are requested before the first
// Resize.
var ErrNoBackingStore = errors.New("scratchoff: raster has no backing store")

// Raster is the backing store a Surface paints the overlay into and erases
// from. Coordinates passed in are logical pixels; the raster applies its own
// device scale.
type Raster interface {
	// Resize recreates the backing store at width×height device pixels. scale
	// maps logical to device pixels for all later drawing.
	Resize(width, height int, scale float64)
	// Clear sets every pixel to transparent.
	Clear()
	// DrawImage paints src stretched over the logical rectangle (0, 0, w, h).
	DrawImage(src image.Image, w, h float64)
	// FillGradient paints g over the logical rectangle (0, 0, w, h).
	FillGradient(g *gg.LinearGradientBrush, w, h float64)
	// Erase removes coverage along the polyline pts with a round brush of the
	// given logical diameter (destination-out).
	Erase(pts []Vec2, width float64)
	// Pixels returns premultiplied RGBA bytes, row-major, 4 bytes per pixel.
	Pixels() ([]byte, error)
}

// Presentable is implemented by rasters whose contents a host can upload.
type Presentable interface {
	RGBA() *image.RGBA
	// TakeDirty reports whether pixels changed since the last call.
	TakeDirty() bool
}

// circleKappa approximates a quarter circle with one cubic Bézier.
const circleKappa = 0.5522847498307936

// Canvas is the in-memory Raster: a premultiplied RGBA image plus a reusable
// path rasterizer for the brush.
type Canvas struct {
	img   *image.RGBA
	scale float64
	z     vector.Rasterizer
	dirty bool
}

// NewCanvas returns a Canvas with no backing store. Call Resize before use.
func NewCanvas() *Canvas {
	return &Canvas{scale: 1}
}

// Resize implements Raster.
func (c *Canvas) Resize(width, height int, scale float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if scale <= 0 {
		scale = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.scale = scale
	c.dirty = true
}

// Scale returns the logical-to-device scale.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Bounds returns the backing store bounds in device pixels.
func (c *Canvas) Bounds() image.Rectangle {
	if c.img == nil {
		return image.Rectangle{}
	}
	return c.img.Rect
}

// Clear implements Raster.
func (c *Canvas) Clear() {
	if c.img == nil {
		return
	}
	clear(c.img.Pix)
	c.dirty = true
}

// deviceRect converts a logical (0, 0, w, h) rectangle to device pixels,
// rounding outward so the overlay covers every partially covered pixel.
func (c *Canvas) deviceRect(w, h float64) image.Rectangle {
	r := image.Rect(0, 0, int(math.Ceil(w*c.scale)), int(math.Ceil(h*c.scale)))
	return r.Intersect(c.img.Rect)
}

// DrawImage implements Raster.
func (c *Canvas) DrawImage(src image.Image, w, h float64) {
	if c.img == nil || src == nil || src.Bounds().Empty() {
		return
	}
	r := c.deviceRect(w, h)
	if r.Empty() {
		return
	}
	xdraw.BiLinear.Scale(c.img, r, src, src.Bounds(), xdraw.Over, nil)
	c.dirty = true
}

// FillGradient implements Raster. Horizontal gradients are evaluated once per
// column.
func (c *Canvas) FillGradient(g *gg.LinearGradientBrush, w, h float64) {
	if c.img == nil || g == nil {
		return
	}
	r := c.deviceRect(w, h)
	if r.Empty() {
		return
	}
	horizontal := g.Start.Y == g.End.Y
	for x := r.Min.X; x < r.Max.X; x++ {
		lx := (float64(x) + 0.5) / c.scale
		px := premultiplied(g.ColorAt(lx, 0))
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if !horizontal {
				px = premultiplied(g.ColorAt(lx, (float64(y)+0.5)/c.scale))
			}
			i := c.img.PixOffset(x, y)
			copy(c.img.Pix[i:i+4], px[:])
		}
	}
	c.dirty = true
}

// premultiplied converts a straight-alpha gg colour to premultiplied bytes.
func premultiplied(col gg.RGBA) [4]uint8 {
	p := col.Premultiply()
	return [4]uint8{unit8(p.R), unit8(p.G), unit8(p.B), unit8(col.A)}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

// Erase implements Raster. Each polyline vertex gets a disc and each edge a
// rectangle, which together form the round-capped, round-joined stroke. The
// pieces are accumulated into a coverage mask over the stroke's bounding box
// and then applied to the image as destination-out.
func (c *Canvas) Erase(pts []Vec2, width float64) {
	if c.img == nil || len(pts) == 0 || width <= 0 {
		return
	}
	r := width * c.scale / 2

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	dev := make([]Vec2, len(pts))
	for i, p := range pts {
		d := Vec2{X: p.X * c.scale, Y: p.Y * c.scale}
		dev[i] = d
		minX, minY = math.Min(minX, d.X), math.Min(minY, d.Y)
		maxX, maxY = math.Max(maxX, d.X), math.Max(maxY, d.Y)
	}
	box := image.Rect(
		int(math.Floor(minX-r)), int(math.Floor(minY-r)),
		int(math.Ceil(maxX+r)), int(math.Ceil(maxY+r)),
	).Intersect(c.img.Rect)
	if box.Empty() {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for i, d := range dev {
		d.X -= ox
		d.Y -= oy
		c.fillDisc(mask, d, r)
		if i == 0 {
			continue
		}
		prev := Vec2{X: dev[i-1].X - ox, Y: dev[i-1].Y - oy}
		c.fillSegment(mask, prev, d, r)
	}
	c.applyErase(mask, box)
	c.dirty = true
}

func (c *Canvas) fillDisc(mask *image.Alpha, ctr Vec2, r float64) {
	k := circleKappa * r
	b := mask.Rect
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(f32(ctr.X+r), f32(ctr.Y))
	c.z.CubeTo(f32(ctr.X+r), f32(ctr.Y+k), f32(ctr.X+k), f32(ctr.Y+r), f32(ctr.X), f32(ctr.Y+r))
	c.z.CubeTo(f32(ctr.X-k), f32(ctr.Y+r), f32(ctr.X-r), f32(ctr.Y+k), f32(ctr.X-r), f32(ctr.Y))
	c.z.CubeTo(f32(ctr.X-r), f32(ctr.Y-k), f32(ctr.X-k), f32(ctr.Y-r), f32(ctr.X), f32(ctr.Y-r))
	c.z.CubeTo(f32(ctr.X+k), f32(ctr.Y-r), f32(ctr.X+r), f32(ctr.Y-k), f32(ctr.X+r), f32(ctr.Y))
	c.z.ClosePath()
	c.z.Draw(mask, b, image.Opaque, image.Point{})
}

func (c *Canvas) fillSegment(mask *image.Alpha, a, b Vec2, r float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	bounds := mask.Rect
	c.z.Reset(bounds.Dx(), bounds.Dy())
	c.z.MoveTo(f32(a.X+nx), f32(a.Y+ny))
	c.z.LineTo(f32(b.X+nx), f32(b.Y+ny))
	c.z.LineTo(f32(b.X-nx), f32(b.Y-ny))
	c.z.LineTo(f32(a.X-nx), f32(a.Y-ny))
	c.z.ClosePath()
	c.z.Draw(mask, bounds, image.Opaque, image.Point{})
}

// applyErase scales every channel of the premultiplied pixels under box by
// (1 - coverage). Full coverage leaves alpha at exactly zero.
func (c *Canvas) applyErase(mask *image.Alpha, box image.Rectangle) {
	w := box.Dx()
	for y := 0; y < box.Dy(); y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		off := c.img.PixOffset(box.Min.X, box.Min.Y+y)
		for x, m := range row {
			if m == 0 {
				continue
			}
			i := off + 4*x
			px := c.img.Pix[i : i+4 : i+4]
			if m == 0xff {
				px[0], px[1], px[2], px[3] = 0, 0, 0, 0
				continue
			}
			keep := uint32(0xff - m)
			for k := range px {
				px[k] = uint8((uint32(px[k])*keep + 0x7f) / 0xff)
			}
		}
	}
}

func f32(v float64) float32 { return float32(v) }

// Pixels implements Raster.
func (c *Canvas) Pixels() ([]byte, error) {
	if c.img == nil {
		return nil, ErrNoBackingStore
	}
	return c.img.Pix, nil
}

// RGBA implements Presentable.
func (c *Canvas) RGBA() *image.RGBA {
	return c.img
}

// TakeDirty implements Presentable.
func (c *Canvas) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}
