// Package svgbundle converts directories of SVG icons into build artifacts:
// a JavaScript or Go bundle of data URIs, an SVG sprite, or IconVG data.
//
// Each icon passes through an Optimizer, a fixed sequence of text rewrites
// that shrink the markup without parsing it, and is then encoded or
// assembled. Files are processed one at a time in name order; a file that
// cannot be read or converted is logged and skipped.
package svgbundle
