package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DragonMinded/dragontext/tools/font"
	"github.com/DragonMinded/dragontext/tools/texture"
)

const usageString = `dragontext is a tool for generating font and texture assets.

Usage:

	%s <command> [arguments]

The commands are:

	font     convert TrueType fonts to font64 files
	texture  convert images to texture containers
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "font":
		font.Main(flag.Args())
	case "texture":
		texture.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
