package texture

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/DragonMinded/dragontext/texture"
)

var (
	flags = flag.NewFlagSet("texture", flag.ExitOnError)

	format  = flags.String("format", "rgba32", "pixel format and bit depth")
	dither  = flags.Bool("dither", false, "enable Floyd-Steinberg error diffusion")
	palette = flags.Int("palette", 256, "number of colors in ci8 format")
	out     = flags.String("o", "", "output filename")

	imagefile string
)

const usageString = `Image to texture container converter.

Usage: %s [flags] <image>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "texture")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		imagefile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	var dst *texture.Texture

	switch *format {
	case "rgba32":
		dst = texture.NewRGBA32(src.Bounds())
	case "nrgba32":
		dst = texture.NewNRGBA32(src.Bounds())
	case "rgba16":
		dst = texture.NewRGBA16(src.Bounds())
	case "i8":
		dst = texture.NewI8(src.Bounds())
	case "i4":
		dst = texture.NewI4(src.Bounds())
	case "ci8":
		q := quantize.MedianCutQuantizer{}
		p := q.Quantize(make([]color.Color, 0, *palette), src)
		dst = texture.NewCI8(src.Bounds(), texture.FromPalette(p))
	default:
		log.Fatalln("unsupported format:", *format)
	}

	var d draw.Drawer = draw.Src
	if *dither {
		d = draw.FloydSteinberg
	}

	d.Draw(dst, dst.Bounds(), src, src.Bounds().Min)

	outfile := *out
	if outfile == "" {
		outfile = strings.TrimSuffix(imagefile, filepath.Ext(imagefile)) + ".tex64"
	}
	w, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()

	err = dst.Store(w)
	if err != nil {
		log.Fatalln(err)
	}
}
