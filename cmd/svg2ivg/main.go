package main

import (
	"os"

	"github.com/wrnrlr/svgbundle"
	"github.com/wrnrlr/svgbundle/internal/cli"
)

// svg2ivg [input-dir] [output]
//
// Writes a Go file with one IconVG []byte variable per icon. The package name
// and variable prefix come from SVGBUNDLE_PACKAGE and SVGBUNDLE_VAR_PREFIX.
func main() {
	os.Exit(cli.Main("svg2ivg", cli.Fixed(svgbundle.ModeIVG), os.Args[1:], os.Stderr))
}
