package fonts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"

	"github.com/sigurn/crc8"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/text"
	"github.com/DragonMinded/dragontext/texture"
)

var (
	ErrFormat   = errors.New("fonts: not a font64 file")
	ErrVersion  = errors.New("fonts: unsupported font64 version")
	ErrChecksum = errors.New("fonts: bad header checksum")
)

const (
	fileMagic   = "FN64"
	fileVersion = 1
)

var fileCRC8 = crc8.MakeTable(crc8.Params{Poly: 0x85, Init: 0x00, RefIn: false, RefOut: false, XorOut: 0x00, Check: 0xF4, Name: "CRC-8 N64 Pak"})

// The tables follow the header uncompressed in big-endian order, then
// one length-prefixed texture container per atlas page. The atlases
// bring their own compression.
type header struct {
	Magic           [4]byte
	Version         uint8
	PointSize       uint16
	Ascent          int16
	Descent         int16
	LineGap         int16
	SpaceWidth      int16
	EllipsisGlyph   int16
	EllipsisReps    uint8
	EllipsisAdvance fixed.Int10_6
	EllipsisWidth   fixed.Int10_6
	NumRanges       uint16
	NumGlyphs       uint16
	NumKerns        uint16
	NumStyles       uint16
	NumAtlases      uint16
}

type styleEntry struct {
	ID         uint8
	R, G, B, A uint8
}

// Load reads a font from a font64 container.
func Load(r io.Reader) (*Font, error) {
	buf := make([]byte, binary.Size(header{})+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	csum := crc8.Init(fileCRC8)
	csum = crc8.Update(csum, buf[:len(buf)-1], fileCRC8)
	csum = crc8.Complete(csum, fileCRC8)
	if csum != buf[len(buf)-1] {
		return nil, ErrChecksum
	}

	var hdr header
	err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &hdr)
	if err != nil {
		return nil, err
	}
	if string(hdr.Magic[:]) != fileMagic {
		return nil, ErrFormat
	}
	if hdr.Version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, hdr.Version)
	}

	f := &Font{
		PointSize:  int(hdr.PointSize),
		Ascent:     int(hdr.Ascent),
		Descent:    int(hdr.Descent),
		LineGap:    int(hdr.LineGap),
		SpaceWidth: int(hdr.SpaceWidth),
		ellipsis: text.EllipsisMetrics{
			Glyph:   text.Glyph(hdr.EllipsisGlyph),
			Reps:    int(hdr.EllipsisReps),
			Advance: float32(hdr.EllipsisAdvance) / 64,
			Width:   float32(hdr.EllipsisWidth) / 64,
		},
		Ranges: make([]Range, hdr.NumRanges),
		Glyphs: make([]Glyph, hdr.NumGlyphs),
		Kerns:  make([]Kern, hdr.NumKerns),
	}
	if err := binary.Read(r, binary.BigEndian, f.Ranges); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, f.Glyphs); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, f.Kerns); err != nil {
		return nil, err
	}
	for i := 0; i < int(hdr.NumStyles); i++ {
		var s styleEntry
		if err := binary.Read(r, binary.BigEndian, &s); err != nil {
			return nil, err
		}
		f.SetStyle(text.StyleID(s.ID), Style{color.RGBA{s.R, s.G, s.B, s.A}})
	}

	f.Atlases = make([]*texture.Texture, hdr.NumAtlases)
	for i := range f.Atlases {
		var size uint32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, err
		}
		blob := make([]byte, size)
		if _, err := io.ReadFull(r, blob); err != nil {
			return nil, err
		}
		if f.Atlases[i], err = texture.Load(bytes.NewReader(blob)); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Store writes the font as a font64 container.
func (f *Font) Store(w io.Writer) error {
	styles := make([]text.StyleID, 0, len(f.Styles))
	for id := range f.Styles {
		styles = append(styles, id)
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i] < styles[j] })

	hdr := header{
		Version:         fileVersion,
		PointSize:       uint16(f.PointSize),
		Ascent:          int16(f.Ascent),
		Descent:         int16(f.Descent),
		LineGap:         int16(f.LineGap),
		SpaceWidth:      int16(f.SpaceWidth),
		EllipsisGlyph:   int16(f.ellipsis.Glyph),
		EllipsisReps:    uint8(f.ellipsis.Reps),
		EllipsisAdvance: fixed.Int10_6F(f.ellipsis.Advance),
		EllipsisWidth:   fixed.Int10_6F(f.ellipsis.Width),
		NumRanges:       uint16(len(f.Ranges)),
		NumGlyphs:       uint16(len(f.Glyphs)),
		NumKerns:        uint16(len(f.Kerns)),
		NumStyles:       uint16(len(styles)),
		NumAtlases:      uint16(len(f.Atlases)),
	}
	copy(hdr.Magic[:], fileMagic)

	buf := bytes.NewBuffer(nil)
	if err := binary.Write(buf, binary.BigEndian, hdr); err != nil {
		return err
	}
	csum := crc8.Init(fileCRC8)
	csum = crc8.Update(csum, buf.Bytes(), fileCRC8)
	csum = crc8.Complete(csum, fileCRC8)
	buf.WriteByte(csum)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if err := binary.Write(w, binary.BigEndian, f.Ranges); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, f.Glyphs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, f.Kerns); err != nil {
		return err
	}
	for _, id := range styles {
		c := f.Styles[id].Color
		s := styleEntry{uint8(id), c.R, c.G, c.B, c.A}
		if err := binary.Write(w, binary.BigEndian, s); err != nil {
			return err
		}
	}

	for _, tex := range f.Atlases {
		blob := bytes.NewBuffer(nil)
		if err := tex.Store(blob); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(blob.Len())); err != nil {
			return err
		}
		if _, err := w.Write(blob.Bytes()); err != nil {
			return err
		}
	}

	return nil
}
