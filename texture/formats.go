package texture

import (
	"errors"
	"image"
	"image/draw"
)

// Stores pixels in RGBA with 32bit (8:8:8:8), premultiplied-alpha.
func NewRGBA32(r image.Rectangle) *Texture { return newTexture(r, RGBA32, true, nil) }

// Same as [NewRGBA32], but not premultiplied-alpha.
func NewNRGBA32(r image.Rectangle) *Texture { return newTexture(r, RGBA32, false, nil) }

// Stores pixels in RGBA with 16bit (5:5:5:1).
func NewRGBA16(r image.Rectangle) *Texture { return newTexture(r, RGBA16, true, nil) }

// Stores pixel intensity with 8bit.
func NewI8(r image.Rectangle) *Texture { return newTexture(r, I8, false, nil) }

// Stores pixel intensity with 4bit, packed two pixels per byte.
func NewI4(r image.Rectangle) *Texture { return newTexture(r, I4, false, nil) }

// Stores pixels as 8bit indices into a color palette.
func NewCI8(r image.Rectangle, pal *Palette) *Texture { return newTexture(r, CI8, false, pal) }

// NewRGBA32FromImage wraps img's pixel storage without copying.
func NewRGBA32FromImage(img *image.RGBA) *Texture {
	return &Texture{
		pix:     img.Pix,
		stride:  img.Stride,
		rect:    img.Rect,
		format:  RGBA32,
		premult: true,
	}
}

// NewNRGBA32FromImage wraps img's pixel storage without copying.
func NewNRGBA32FromImage(img *image.NRGBA) *Texture {
	return &Texture{
		pix:    img.Pix,
		stride: img.Stride,
		rect:   img.Rect,
		format: RGBA32,
	}
}

// NewI8FromImage wraps img's pixel storage without copying.
func NewI8FromImage(img *image.Alpha) *Texture {
	return &Texture{
		pix:    img.Pix,
		stride: img.Stride,
		rect:   img.Rect,
		format: I8,
	}
}

// NewCI8FromPaletted copies img's indices and converts its palette to
// RGBA16 entries.
func NewCI8FromPaletted(img *image.Paletted) *Texture {
	tex := NewCI8(img.Rect, FromPalette(img.Palette))
	for y := 0; y < img.Rect.Dy(); y++ {
		copy(tex.pix[y*tex.stride:(y+1)*tex.stride], img.Pix[y*img.Stride:])
	}
	return tex
}

// Convert draws img into a newly allocated texture of the given format.
// CI8 is not supported, use [NewCI8FromPaletted] with a quantized image
// instead.
func Convert(img image.Image, f Format) (*Texture, error) {
	var tex *Texture
	r := image.Rectangle{Max: img.Bounds().Size()}
	switch f {
	case RGBA32:
		tex = NewRGBA32(r)
	case RGBA16:
		tex = NewRGBA16(r)
	case I8:
		tex = NewI8(r)
	case I4:
		tex = NewI4(r)
	default:
		return nil, errors.New("unsupported format: " + f.String())
	}
	draw.Draw(tex, r, img, img.Bounds().Min, draw.Src)
	return tex, nil
}
