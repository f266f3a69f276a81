// Command svgbundle bundles a directory of SVG icons into a JavaScript or Go
// file mapping icon names to data URIs.
//
//	svgbundle [input-dir] [output]
//
// The format and optimizer settings come from SVGBUNDLE_* environment
// variables.
package main

import (
	"os"

	"github.com/wrnrlr/svgbundle"
	"github.com/wrnrlr/svgbundle/internal/cli"
)

func main() {
	mode := func(cfg svgbundle.Config) (svgbundle.Mode, error) {
		return svgbundle.BundleMode(cfg.Format)
	}
	os.Exit(cli.Main("svgbundle", mode, os.Args[1:], os.Stderr))
}
