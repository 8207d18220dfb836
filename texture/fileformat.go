package texture

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"image"
	"io"

	"github.com/sigurn/crc8"
)

var (
	ErrChecksum = errors.New("texture: bad header checksum")
)

var fileCRC8 = crc8.MakeTable(crc8.Params{Poly: 0x85, Init: 0x00, RefIn: false, RefOut: false, XorOut: 0x00, Check: 0xF4, Name: "CRC-8 N64 Pak"})

type header struct {
	Format        Format
	Premult       bool
	Width, Height uint16
	PaletteSize   uint16
}

func Load(r io.Reader) (tex *Texture, err error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	buf := make([]byte, binary.Size(header{})+1)
	if _, err := io.ReadFull(zr, buf); err != nil {
		return nil, err
	}
	csum := crc8.Init(fileCRC8)
	csum = crc8.Update(csum, buf[:len(buf)-1], fileCRC8)
	csum = crc8.Complete(csum, fileCRC8)
	if csum != buf[len(buf)-1] {
		return nil, ErrChecksum
	}

	var hdr header
	err = binary.Read(bytes.NewReader(buf), binary.BigEndian, &hdr)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, int(hdr.Width), int(hdr.Height))
	switch hdr.Format {
	case RGBA32:
		if hdr.Premult {
			tex = NewRGBA32(rect)
		} else {
			tex = NewNRGBA32(rect)
		}
	case RGBA16:
		tex = NewRGBA16(rect)
	case I8:
		tex = NewI8(rect)
	case I4:
		tex = NewI4(rect)
	case CI8:
		tex = NewCI8(rect, NewColorPalette(int(hdr.PaletteSize)))
	default:
		return nil, errors.New("unsupported format")
	}

	_, err = io.ReadFull(zr, tex.pix)
	if err != nil && err != io.EOF {
		return nil, err
	}

	if hdr.PaletteSize > 0 {
		_, err = io.ReadFull(zr, tex.palette.pix)
		if err != nil && err != io.EOF {
			return nil, err
		}
	}

	return tex, nil
}

func (p *Texture) Store(w io.Writer) error {
	if p.stride != PixelsToBytes(p.rect.Dx(), p.format) {
		return errors.New("is subimage")
	}

	var hdr = header{
		Format:  p.format,
		Premult: p.premult,
		Width:   uint16(p.rect.Dx()),
		Height:  uint16(p.rect.Dy()),
	}

	if p.palette != nil {
		hdr.PaletteSize = uint16(p.palette.Len())
	}

	buf := bytes.NewBuffer(nil)
	err := binary.Write(buf, binary.BigEndian, hdr)
	if err != nil {
		return err
	}
	csum := crc8.Init(fileCRC8)
	csum = crc8.Update(csum, buf.Bytes(), fileCRC8)
	csum = crc8.Complete(csum, fileCRC8)
	buf.WriteByte(csum)

	zw := zlib.NewWriter(w)
	defer zw.Close()
	if _, err := zw.Write(buf.Bytes()); err != nil {
		return err
	}

	if _, err := zw.Write(p.pix); err != nil {
		return err
	}

	if p.palette != nil {
		if _, err := zw.Write(p.palette.pix); err != nil {
			return err
		}
	}

	return nil
}
