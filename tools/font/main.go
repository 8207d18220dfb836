// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package font

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	xfixed "golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/rangetable"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/fonts"
	"github.com/DragonMinded/dragontext/text"
	"github.com/DragonMinded/dragontext/texture"
)

var (
	flags = flag.NewFlagSet("font", flag.ExitOnError)

	dpi      = flags.Float64("dpi", 72, "screen resolution in Dots Per Inch")
	hinting  = flags.String("hinting", "none", "none | vertical | full")
	size     = flags.Float64("size", 12, "font size in points")
	start    = flags.Uint("start", 0x20, "Unicode value of first character")
	end      = flags.Uint("end", 0xff, "Unicode value of last character")
	scripts  = flags.String("scripts", "", "comma separated Unicode script names, overrides -start/-end")
	i4       = flags.Bool("i4", false, "store atlases with 4 bit intensity instead of 8")
	kerning  = flags.Bool("kerning", true, "extract kerning pairs")
	ellipsis = flags.String("ellipsis", "2e,3", "ellipsis codepoint (hex) and repeat count")
	out      = flags.String("o", "", "output filename")
	gopkg    = flags.String("go", "", "emit an embeddable Go package with this name")

	fontfile string
)

const usageString = `TrueType font to font64 converter.

Usage: %s [flags] <ttffile>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "font")
	flags.PrintDefaults()
}

const (
	dim     = 256
	padding = 1
)

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		fontfile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	// Read the font data.
	fontBytes, err := os.ReadFile(fontfile)
	if err != nil {
		log.Fatalln(err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		log.Fatalln(err)
	}

	options := &truetype.Options{
		Size: *size,
		DPI:  *dpi,
	}
	switch *hinting {
	default:
		options.Hinting = font.HintingNone
	case "vertical":
		options.Hinting = font.HintingVertical
	case "full":
		options.Hinting = font.HintingFull
	}
	face := truetype.NewFace(ttf, options)
	defer face.Close()
	name := ttf.Name(truetype.NameIDFontFullName)

	f := generate(face, runeSet())

	if *ellipsis != "" {
		r, reps, err := parseEllipsis(*ellipsis)
		if err != nil {
			log.Fatalln(err)
		}
		if err := f.SetEllipsis(r, reps); err != nil {
			log.Println("ellipsis not set:", err)
		}
	}

	pkgname := strings.ReplaceAll(name, " ", "")
	pkgname = fmt.Sprintf("%s%.0f", strings.ToLower(pkgname), *size)

	if *gopkg != "" {
		pkgname = *gopkg
		directory := filepath.Join("fonts", pkgname)
		os.MkdirAll(directory, 0775)
		filename := pkgname + ".font64"

		store(f, filepath.Join(directory, filename))

		tmpl, err := template.New("fontGoTemplate").Parse(fontGoTemplate)
		if err != nil {
			log.Fatalln(err)
		}
		goFile, err := os.Create(filepath.Join(directory, "font.go"))
		if err != nil {
			log.Fatalln(err)
		}
		defer goFile.Close()

		err = tmpl.Execute(goFile, struct {
			Name, Package, File string
			PointSize, Ascent   int
		}{
			Name:      fmt.Sprintf("%s %g", name, *size),
			Package:   pkgname,
			File:      filename,
			PointSize: f.PointSize,
			Ascent:    f.Ascent,
		})
		if err != nil {
			log.Fatalln(err)
		}
		return
	}

	outfile := *out
	if outfile == "" {
		outfile = pkgname + ".font64"
	}
	store(f, outfile)
}

// runeSet returns the codepoints to cover, in ascending order.
func runeSet() []rune {
	if *scripts == "" {
		var runes []rune
		for r := rune(*start); r <= rune(*end); r++ {
			runes = append(runes, r)
		}
		return runes
	}

	var tables []*unicode.RangeTable
	for _, s := range strings.Split(*scripts, ",") {
		t, ok := unicode.Scripts[s]
		if !ok {
			log.Fatalln("unknown script:", s)
		}
		tables = append(tables, t)
	}
	var runes []rune
	rangetable.Visit(rangetable.Merge(tables...), func(r rune) {
		runes = append(runes, r)
	})
	return runes
}

func parseEllipsis(s string) (rune, int, error) {
	cp, reps, found := strings.Cut(s, ",")
	if !found {
		reps = "3"
	}
	r, err := strconv.ParseUint(cp, 16, 21)
	if err != nil {
		return 0, 0, fmt.Errorf("bad ellipsis codepoint %q: %w", cp, err)
	}
	n, err := strconv.Atoi(reps)
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("bad ellipsis repeat count %q", reps)
	}
	return rune(r), n, nil
}

func newPage() *texture.Texture {
	if *i4 {
		return texture.NewI4(image.Rect(0, 0, dim, dim))
	}
	return texture.NewI8(image.Rect(0, 0, dim, dim))
}

// generate rasterizes all covered glyphs into atlas pages and assembles
// the font tables.  Codepoints without a glyph are left out, splitting
// the affected range.
func generate(face font.Face, runes []rune) *fonts.Font {
	var (
		ranges   []fonts.Range
		glyphs   []fonts.Glyph
		atlases  []*texture.Texture
		accepted []rune
		glyphOf  = make(map[rune]text.Glyph, len(runes))
	)

	page := newPage()
	atlases = append(atlases, page)
	drawer := font.Drawer{Dst: page, Src: image.White, Face: face}

	penX, penY, rowH := 0, 0, 0
	spaceWidth := 0
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		xmin, ymin := b.Min.X.Floor(), b.Min.Y.Floor()
		xmax, ymax := b.Max.X.Ceil(), b.Max.Y.Ceil()
		if xmin < -128 || ymin < -128 || xmax > 127 || ymax > 127 {
			log.Fatalf("glyph %#x exceeds representable ink bounds", r)
		}
		w, h := xmax-xmin, ymax-ymin

		if penX+w > dim {
			penX, penY = 0, penY+rowH+padding
			rowH = 0
		}
		if penY+h > dim {
			if len(atlases) == 256 {
				log.Fatalln("too many atlas pages")
			}
			page = newPage()
			atlases = append(atlases, page)
			drawer.Dst = page
			penX, penY, rowH = 0, 0, 0
		}
		if w > 0 {
			// Place the ink box exactly at the cell origin.
			drawer.Dot = xfixed.P(penX-xmin, penY-ymin)
			drawer.DrawString(string(r))
		}

		if len(glyphs) == 1<<15 {
			log.Fatalln("too many glyphs")
		}
		g := text.Glyph(len(glyphs))
		glyphs = append(glyphs, fonts.Glyph{
			Advance: fixed.Int10_6(adv),
			Ink:     fixed.Rect(fixed.Int8(xmin), fixed.Int8(ymin), fixed.Int8(xmax), fixed.Int8(ymax)),
			ST:      fixed.Pt(fixed.UInt8(penX), fixed.UInt8(penY)),
			Atlas:   uint8(len(atlases) - 1),
		})
		if n := len(ranges); n > 0 && ranges[n-1].Last == r-1 {
			ranges[n-1].Last = r
		} else {
			ranges = append(ranges, fonts.Range{First: r, Last: r, FirstGlyph: g})
		}
		glyphOf[r] = g
		accepted = append(accepted, r)

		if r == ' ' {
			spaceWidth = adv.Round()
		}
		if w > 0 {
			penX += w + padding
			rowH = max(rowH, h)
		}
	}
	if len(glyphs) == 0 {
		log.Fatalln("no glyphs covered")
	}

	m := face.Metrics()
	f := &fonts.Font{
		PointSize:  int(*size + 0.5),
		Ascent:     m.Ascent.Round(),
		Descent:    -m.Descent.Round(),
		LineGap:    (m.Height - m.Ascent - m.Descent).Round(),
		SpaceWidth: spaceWidth,
		Ranges:     ranges,
		Glyphs:     glyphs,
		Atlases:    atlases,
	}
	if *kerning {
		f.Kerns = kernTable(face, f, accepted, glyphOf)
	}
	return f
}

// kernTable extracts all nonzero kerning pairs between covered glyphs.
// Entry 0 is a dummy so that a zero window means no pairs.
func kernTable(face font.Face, f *fonts.Font, accepted []rune, glyphOf map[rune]text.Glyph) []fonts.Kern {
	kerns := []fonts.Kern{{}}
	for _, r1 := range accepted {
		lo := len(kerns)
		for _, r2 := range accepted {
			k := face.Kern(r1, r2)
			if k == 0 {
				continue
			}
			adjust := int(math.Round(float64(k) / 64 * 127 / float64(f.PointSize)))
			adjust = min(max(adjust, -128), 127)
			if adjust == 0 {
				continue
			}
			kerns = append(kerns, fonts.Kern{Glyph2: glyphOf[r2], Adjust: int8(adjust)})
		}
		if len(kerns) > 0xffff {
			log.Fatalln("too many kerning pairs")
		}
		if len(kerns) > lo {
			g1 := &f.Glyphs[glyphOf[r1]]
			g1.KernLo = uint16(lo)
			g1.KernHi = uint16(len(kerns) - 1)
		}
	}
	if len(kerns) == 1 {
		return nil
	}
	return kerns
}

func store(f *fonts.Font, path string) {
	w, err := os.Create(path)
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()
	if err := f.Store(w); err != nil {
		log.Fatalln(err)
	}
}

const fontGoTemplate = `// {{ .Name }}
package {{ .Package }}

import (
	"bytes"
	_ "embed"

	"github.com/DragonMinded/dragontext/fonts"
)

const (
	PointSize = {{ .PointSize }}
	Ascent    = {{ .Ascent }}
)

//go:embed {{ .File }}
var fontData []byte

func New() *fonts.Font {
	f, err := fonts.Load(bytes.NewReader(fontData))
	if err != nil {
		panic(err)
	}
	return f
}
`
