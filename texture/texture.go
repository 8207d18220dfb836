// Package texture provides a common datastructure for images in the pixel
// formats used by console textures, e.g. font atlases and framebuffers.
package texture

import (
	"image"
	"image/color"

	"github.com/DragonMinded/dragontext/debug"
)

type Format uint8

const (
	RGBA32 Format = iota // 8:8:8:8
	RGBA16               // 5:5:5:1
	I8                   // 8bit intensity
	I4                   // 4bit intensity, two pixels per byte
	CI8                  // 8bit palette index
)

// Bits returns the format's size per pixel in bits.
func (f Format) Bits() int {
	switch f {
	case RGBA32:
		return 32
	case RGBA16:
		return 16
	case I8, CI8:
		return 8
	case I4:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case RGBA32:
		return "rgba32"
	case RGBA16:
		return "rgba16"
	case I8:
		return "i8"
	case I4:
		return "i4"
	case CI8:
		return "ci8"
	}
	return "unknown"
}

// For a number of pixels returns their size in bytes, rounded up to whole
// bytes.
func PixelsToBytes(pixels int, f Format) int {
	return (pixels*f.Bits() + 7) >> 3
}

// Texture is an image backed by one of the console pixel formats. It
// implements draw.Image for all formats, though Set on CI8 does a nearest
// palette lookup and is not cheap.
type Texture struct {
	pix     []byte
	stride  int // in bytes
	rect    image.Rectangle
	format  Format
	premult bool
	palette *Palette
}

func newTexture(r image.Rectangle, f Format, premult bool, pal *Palette) *Texture {
	stride := PixelsToBytes(r.Dx(), f)
	return &Texture{
		pix:     make([]byte, stride*r.Dy()),
		stride:  stride,
		rect:    r,
		format:  f,
		premult: premult,
		palette: pal,
	}
}

func (p *Texture) Bounds() image.Rectangle { return p.rect }
func (p *Texture) Format() Format          { return p.format }
func (p *Texture) Premult() bool           { return p.premult }
func (p *Texture) Palette() *Palette       { return p.palette }

// Pix returns the raw pixel storage. Pixels are stored left to right, top
// to bottom, high nibble first for I4.
func (p *Texture) Pix() []byte { return p.pix }

// Stride returns the distance between vertically adjacent pixels in pixels.
func (p *Texture) Stride() int { return (p.stride << 3) / p.format.Bits() }

func (p *Texture) ColorModel() color.Model {
	switch p.format {
	case RGBA32:
		if p.premult {
			return color.RGBAModel
		}
		return color.NRGBAModel
	case RGBA16:
		return RGBA16Model
	case CI8:
		return p.palette
	}
	return color.AlphaModel
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Texture) PixOffset(x, y int) int {
	return (y-p.rect.Min.Y)*p.stride + PixelsToBytes(x-p.rect.Min.X, p.format)
}

func (p *Texture) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.rect)) {
		return color.RGBA{}
	}
	off := p.PixOffset(x, y)
	switch p.format {
	case RGBA32:
		s := p.pix[off : off+4 : off+4]
		if p.premult {
			return color.RGBA{s[0], s[1], s[2], s[3]}
		}
		return color.NRGBA{s[0], s[1], s[2], s[3]}
	case RGBA16:
		return colorRGBA16(uint16(p.pix[off])<<8 | uint16(p.pix[off+1]))
	case I8:
		return color.Alpha{p.pix[off]}
	case I4:
		v := p.pix[off]
		if (x-p.rect.Min.X)&1 == 0 {
			v >>= 4
		}
		return color.Alpha{(v & 0xf) * 0x11}
	case CI8:
		return p.palette.Color(int(p.pix[off]))
	}
	return color.RGBA{}
}

func (p *Texture) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.rect)) {
		return
	}
	off := p.PixOffset(x, y)
	switch p.format {
	case RGBA32:
		s := p.pix[off : off+4 : off+4]
		if p.premult {
			col := color.RGBAModel.Convert(c).(color.RGBA)
			s[0], s[1], s[2], s[3] = col.R, col.G, col.B, col.A
		} else {
			col := color.NRGBAModel.Convert(c).(color.NRGBA)
			s[0], s[1], s[2], s[3] = col.R, col.G, col.B, col.A
		}
	case RGBA16:
		col, _ := rgba16Model(c).(colorRGBA16)
		p.pix[off] = uint8(col >> 8)
		p.pix[off+1] = uint8(col & 0xff)
	case I8:
		p.pix[off] = color.AlphaModel.Convert(c).(color.Alpha).A
	case I4:
		v := color.AlphaModel.Convert(c).(color.Alpha).A >> 4
		if (x-p.rect.Min.X)&1 == 0 {
			p.pix[off] = p.pix[off]&0x0f | v<<4
		} else {
			p.pix[off] = p.pix[off]&0xf0 | v
		}
	case CI8:
		p.pix[off] = uint8(p.palette.Index(c))
	}
}

// SubImage returns a texture sharing pixels with p, visible through r. For
// I4 the rectangle must start at an even x coordinate.
func (p *Texture) SubImage(r image.Rectangle) *Texture {
	r = r.Intersect(p.rect)
	if r.Empty() {
		return &Texture{format: p.format, premult: p.premult, palette: p.palette}
	}
	debug.Assert(p.format != I4 || (r.Min.X-p.rect.Min.X)&1 == 0, "unaligned subimage")
	off := p.PixOffset(r.Min.X, r.Min.Y)
	return &Texture{
		pix:     p.pix[off:],
		stride:  p.stride,
		rect:    r,
		format:  p.format,
		premult: p.premult,
		palette: p.palette,
	}
}
