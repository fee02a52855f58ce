package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scratchoff"
)

// presenter mirrors a CPU raster into a GPU texture. Pixels are uploaded
// only when the raster reports changes or its size differs from the texture.
type presenter struct {
	img     *ebiten.Image
	uploads int
}

func (p *presenter) sync(src scratchoff.Presentable) {
	rgba := src.RGBA()
	if rgba == nil || rgba.Rect.Empty() {
		return
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if p.img == nil || p.img.Bounds().Dx() != w || p.img.Bounds().Dy() != h {
		if p.img != nil {
			p.img.Deallocate()
		}
		p.img = ebiten.NewImage(w, h)
		src.TakeDirty()
		p.upload(rgba.Pix)
		return
	}
	if src.TakeDirty() {
		p.upload(rgba.Pix)
	}
}

// upload writes premultiplied RGBA bytes, which is the layout both sides
// use.
func (p *presenter) upload(pix []byte) {
	p.img.WritePixels(pix)
	p.uploads++
}

// draw renders the texture into r, mapping device pixels back to logical
// ones, at the given opacity.
func (p *presenter) draw(dst *ebiten.Image, r scratchoff.Rect, scale, opacity float64) {
	if p.img == nil || opacity <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/scale, 1/scale)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(p.img, op)
}
