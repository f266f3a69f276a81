// Command svgsprite combines a directory of SVG icons into one hidden SVG
// sprite with a <symbol> per icon.
//
//	svgsprite [input-dir] [output]
package main

import (
	"os"

	"github.com/wrnrlr/svgbundle"
	"github.com/wrnrlr/svgbundle/internal/cli"
)

func main() {
	os.Exit(cli.Main("svgsprite", cli.Fixed(svgbundle.ModeSprite), os.Args[1:], os.Stderr))
}
