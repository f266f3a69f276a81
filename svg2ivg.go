// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is a modification from https://gist.github.com/Inkeliz/728993bf10abfa6d8832302b2f2e87cd
// which is an modification from https://github.com/golang/exp/blob/00229845015e38294862ecd9909318241789d41c/shiny/materialdesign/icons/gen.go
// DON'T supports all types of SVG.

package svgbundle

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"go/format"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/image/math/f32"
)

type SVG struct {
	Width   float32 `xml:"width,attr"`
	Height  float32 `xml:"height,attr"`
	ViewBox string  `xml:"viewBox,attr"`
	Paths   []Path  `xml:"path"`
	// Some of the SVG files contain <circle> elements, not just <path>
	// elements. IconVG doesn't have circles per se. Instead, we convert such
	// circles to be paired arcTo commands, tacked on to the first path.
	//
	// In general, this isn't correct if the circles and the path overlap, but
	// that doesn't happen in the specific case of the Material Design icons.
	Circles []Circle `xml:"circle"`
}

// NewSVG reads the given reader as an SVG
func NewSVG(r io.Reader) (svg *SVG, err error) {
	bsvg, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	svg = new(SVG)
	if err := xml.Unmarshal(bsvg, svg); err != nil {
		return nil, err
	}

	return svg, nil
}

// viewBox returns the origin and size of the SVG's viewBox, falling back to
// its width and height.
func (svg *SVG) viewBox() (min, size f32.Vec2, err error) {
	fields := strings.FieldsFunc(svg.ViewBox, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 0 && len(fields) != 4 {
		return min, size, fmt.Errorf("malformed viewBox %q", svg.ViewBox)
	}
	var vb [4]float32
	for i, v := range fields {
		if vb[i], err = atof([]byte(v)); err != nil {
			return min, size, err
		}
	}

	size = f32.Vec2{svg.Width, svg.Height}
	if size[0] == 0 {
		size[0] = vb[2]
	}
	if size[1] == 0 {
		size[1] = vb[3]
	}
	if size[0] <= 0 || size[1] <= 0 {
		return min, size, fmt.Errorf("no usable width, height or viewBox")
	}
	return f32.Vec2{vb[0], vb[1]}, size, nil
}

// IVG creates the IVG from active SVG
func (svg *SVG) IVG() (iconVG IVG, err error) {
	var enc iconvg.Encoder

	enc.Reset(iconvg.Metadata{
		ViewBox: iconvg.Rectangle{
			Min: f32.Vec2{-24, -24},
			Max: f32.Vec2{+24, +24},
		},
		Palette: iconvg.DefaultPalette,
	})

	vbMin, size, err := svg.viewBox()
	if err != nil {
		return nil, err
	}
	offset := f32.Vec2{
		vbMin[0] * outSize / size[0],
		vbMin[1] * outSize / size[0],
	}

	// adjs maps from opacity to a cReg adj value.
	adjs := map[float32]uint8{}

	circles := svg.Circles
	for i := range svg.Paths {
		if err := genPath(&enc, &svg.Paths[i], adjs, size[0], offset, circles); err != nil {
			return nil, err
		}
		circles = nil
	}

	if len(circles) != 0 {
		if err := genPath(&enc, &Path{}, adjs, size[0], offset, circles); err != nil {
			return nil, err
		}
	}

	ivgData, err := enc.Bytes()
	if err != nil {
		return nil, err
	}

	return ivgData, nil
}

// IVG is the IconVG
type IVG []byte

// NewIVG creates the IVG of the given SVG
func NewIVG(svg *SVG) (iconVG []byte, err error) {
	return svg.IVG()
}

type Path struct {
	D           string   `xml:"d,attr"`
	Fill        string   `xml:"fill,attr"`
	FillOpacity *float32 `xml:"fill-opacity,attr"`
	Opacity     *float32 `xml:"opacity,attr"`
}

type Circle struct {
	Cx float32 `xml:"cx,attr"`
	Cy float32 `xml:"cy,attr"`
	R  float32 `xml:"r,attr"`
}

// outSize is the width and height (in ideal vector space) of the generated
// IconVG graphic, regardless of the size of the input SVG.
const outSize = 48

func genPath(enc *iconvg.Encoder, p *Path, adjs map[float32]uint8, size float32, offset f32.Vec2, circles []Circle) error {
	// Modified (Inkeliz) if Fill is none so ignore it
	if p.Fill == "none" {
		return nil
	}

	adj := uint8(0)
	opacity := float32(1)
	if p.Opacity != nil {
		opacity = *p.Opacity
	} else if p.FillOpacity != nil {
		opacity = *p.FillOpacity
	}
	if opacity != 1 {
		var ok bool
		if adj, ok = adjs[opacity]; !ok {
			adj = uint8(len(adjs) + 1)
			adjs[opacity] = adj
			// Set CREG[0-adj] to be a blend of transparent (0x7f) and the
			// first custom palette color (0x80).
			enc.SetCReg(adj, false, iconvg.BlendColor(uint8(opacity*0xff), 0x7f, 0x80))
		}
	}

	needStartPath := true
	if p.D != "" {
		needStartPath = false
		if err := genPathData(enc, adj, p.D, size, offset); err != nil {
			return err
		}
	}

	for _, c := range circles {
		// Normalize.
		cx := c.Cx * outSize / size
		cx -= outSize/2 + offset[0]
		cy := c.Cy * outSize / size
		cy -= outSize/2 + offset[1]
		r := c.R * outSize / size

		if needStartPath {
			needStartPath = false
			enc.StartPath(adj, cx-r, cy)
		} else {
			enc.ClosePathAbsMoveTo(cx-r, cy)
		}

		// Convert a circle to two relative arcTo ops, each of 180 degrees.
		// We can't use one 360 degree arcTo as the start and end point
		// would be coincident and the computation is degenerate.
		enc.RelArcTo(r, r, 0, false, true, +2*r, 0)
		enc.RelArcTo(r, r, 0, false, true, -2*r, 0)
	}

	if !needStartPath {
		enc.ClosePathEndPath()
	}
	return nil
}

func genPathData(enc *iconvg.Encoder, adj uint8, pathData string, size float32, offset f32.Vec2) error {
	pathData = strings.TrimRight(strings.TrimSpace(pathData), "zZ")
	r := strings.NewReader(pathData)

	var args [7]float32
	op, relative, started := byte(0), false, false
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch {
		case isSeparator(b):
			continue
		case 'A' <= b && b <= 'Z':
			op, relative = b, false
		case 'a' <= b && b <= 'z':
			op, relative = b, true
		case op == 0 || op == 'Z' || op == 'z':
			return fmt.Errorf("unexpected %q in path data", b)
		default:
			r.UnreadByte()
		}

		n := 0
		switch op {
		case 'L', 'l', 'T', 't':
			n = 2
		case 'Q', 'q', 'S', 's':
			n = 4
		case 'C', 'c':
			n = 6
		case 'H', 'h', 'V', 'v':
			n = 1
		case 'M', 'm':
			n = 2
		case 'A', 'a':
			n = 7
		case 'Z', 'z':
		default:
			return fmt.Errorf("unknown opcode %q", b)
		}

		if err := scan(&args, r, n, op); err != nil {
			return err
		}
		normalize(&args, n, op, size, offset, relative)

		switch op {
		case 'L':
			enc.AbsLineTo(args[0], args[1])
		case 'l':
			enc.RelLineTo(args[0], args[1])
		case 'T':
			enc.AbsSmoothQuadTo(args[0], args[1])
		case 't':
			enc.RelSmoothQuadTo(args[0], args[1])
		case 'Q':
			enc.AbsQuadTo(args[0], args[1], args[2], args[3])
		case 'q':
			enc.RelQuadTo(args[0], args[1], args[2], args[3])
		case 'S':
			enc.AbsSmoothCubeTo(args[0], args[1], args[2], args[3])
		case 's':
			enc.RelSmoothCubeTo(args[0], args[1], args[2], args[3])
		case 'C':
			enc.AbsCubeTo(args[0], args[1], args[2], args[3], args[4], args[5])
		case 'c':
			enc.RelCubeTo(args[0], args[1], args[2], args[3], args[4], args[5])
		case 'H':
			enc.AbsHLineTo(args[0])
		case 'h':
			enc.RelHLineTo(args[0])
		case 'V':
			enc.AbsVLineTo(args[0])
		case 'v':
			enc.RelVLineTo(args[0])
		case 'A':
			enc.AbsArcTo(args[0], args[1], args[2]/360, args[3] != 0, args[4] != 0, args[5], args[6])
		case 'a':
			enc.RelArcTo(args[0], args[1], args[2]/360, args[3] != 0, args[4] != 0, args[5], args[6])
		case 'M':
			if !started {
				started = true
				enc.StartPath(adj, args[0], args[1])
			} else {
				enc.ClosePathAbsMoveTo(args[0], args[1])
			}
			// Coordinate pairs following a moveto are implicit linetos.
			op = 'L'
		case 'm':
			if !started {
				// A leading relative moveto is absolute.
				started = true
				enc.StartPath(adj, args[0]-outSize/2-offset[0], args[1]-outSize/2-offset[1])
			} else {
				enc.ClosePathRelMoveTo(args[0], args[1])
			}
			op = 'l'
		}
	}
	return nil
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

// scan reads the n arguments of op. The large-arc and sweep flags of an arc
// are single digits that need not be separated from what follows.
func scan(args *[7]float32, r *strings.Reader, n int, op byte) error {
	for i := 0; i < n; i++ {
		for {
			b, err := r.ReadByte()
			if err != nil {
				return fmt.Errorf("missing argument %d of %c", i+1, op)
			}
			if !isSeparator(b) {
				r.UnreadByte()
				break
			}
		}

		if (op == 'A' || op == 'a') && (i == 3 || i == 4) {
			b, _ := r.ReadByte()
			if b != '0' && b != '1' {
				return fmt.Errorf("invalid arc flag %q", b)
			}
			args[i] = float32(b - '0')
			continue
		}

		f, err := atof(readNumber(r))
		if err != nil {
			return err
		}
		args[i] = f
	}
	return nil
}

// readNumber consumes the longest prefix of r that forms an SVG number.
func readNumber(r *strings.Reader) []byte {
	var tok []byte
	dot, exp := false, false
	for {
		b, err := r.ReadByte()
		if err != nil {
			return tok
		}
		ok := false
		switch {
		case '0' <= b && b <= '9':
			ok = true
		case b == '+' || b == '-':
			ok = len(tok) == 0 || tok[len(tok)-1] == 'e' || tok[len(tok)-1] == 'E'
		case b == '.':
			ok = !dot && !exp
			dot = true
		case b == 'e' || b == 'E':
			ok = !exp && len(tok) > 0
			exp = true
		}
		if !ok {
			r.UnreadByte()
			return tok
		}
		tok = append(tok, b)
	}
}

func atof(s []byte) (float32, error) {
	f, err := strconv.ParseFloat(string(s), 32)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q as a float32: %v", s, err)
	}
	return float32(f), err
}

func normalize(args *[7]float32, n int, op byte, size float32, offset f32.Vec2, relative bool) {
	if op == 'A' || op == 'a' {
		// Radii scale, the rotation and flags stay, the end point is a
		// regular coordinate pair.
		args[0] *= outSize / size
		args[1] *= outSize / size
		for i := 5; i < 7; i++ {
			args[i] *= outSize / size
			if !relative {
				args[i] -= outSize/2 + offset[i-5]
			}
		}
		return
	}

	for i := 0; i < n; i++ {
		args[i] *= outSize / size
		if relative {
			continue
		}
		args[i] -= outSize / 2
		switch {
		case n != 1:
			args[i] -= offset[i&0x01]
		case op == 'H':
			args[i] -= offset[0]
		case op == 'V':
			args[i] -= offset[1]
		}
	}
}

// IconSet is a keyed set of IconVG encodings.
type IconSet struct {
	icons *ordered[IVG]
	stats Stats
	err   error
}

// BuildIVG optimizes the named files of fsys and encodes each as IconVG.
func (p *Processor) BuildIVG(fsys fs.FS, names []string) *IconSet {
	icons, st, err := collect(p, fsys, names, IconKey, func(_, markup string) (IVG, error) {
		svg, err := NewSVG(strings.NewReader(markup))
		if err != nil {
			return nil, err
		}
		return svg.IVG()
	})
	return &IconSet{icons: icons, stats: st, err: err}
}

func (s *IconSet) Keys() []string { return append([]string(nil), s.icons.keys...) }

// Icon returns the IconVG bytes of an icon given its key or file name.
func (s *IconSet) Icon(nameOrPath string) (IVG, bool) {
	ivg, ok := s.icons.vals[IconKey(nameOrPath)]
	return ivg, ok
}

func (s *IconSet) Len() int     { return s.icons.len() }
func (s *IconSet) Stats() Stats { return s.stats }
func (s *IconSet) Err() error   { return s.err }

// WriteIVG writes one []byte variable per icon, named GoIdent(varPrefix, key).
func WriteIVG(w io.Writer, s *IconSet, pkg, varPrefix string) error {
	if pkg == "" {
		pkg = DefaultGoOptions().Package
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by svg2ivg. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	seen := make(map[string]string)
	for _, k := range s.icons.keys {
		name := GoIdent(varPrefix, k)
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("icons %q and %q both map to %s", prev, k, name)
		}
		seen[name] = k
		fmt.Fprintf(&buf, "var %s = %#v\n\n", name, []byte(s.icons.vals[k]))
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}
