package svgbundle

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		intPart, frac string
		n             int
		want          string
	}{
		{"12", "34567", 2, "12.35"},
		{"12", "344", 2, "12.34"},
		{"0", "125", 2, "0.13"},
		{"1", "0001", 2, "1"},
		{"1", "2001", 2, "1.2"},
		{"9", "999", 2, "10"},
		{"", "999", 2, "1"},
		{"", "001", 2, "0"},
		{"", "12345", 2, ".12"},
		{"1", "2345", 0, "1"},
		{"1", "5", 0, "2"},
		{"123456789012345678901", "129", 2, "123456789012345678901.13"},
	}
	for _, tt := range tests {
		if got := roundDecimal(tt.intPart, tt.frac, tt.n); got != tt.want {
			t.Errorf("roundDecimal(%q, %q, %d) = %q, want %q", tt.intPart, tt.frac, tt.n, got, tt.want)
		}
	}
}

func TestReducePrecision(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`<path d="M1.2345 2.3456"/>`, `<path d="M1.23 2.35"/>`},
		{`<path d="M1.2345,2.3456L3,4Z"/>`, `<path d="M1.23,2.35L3,4Z"/>`},
		{`<rect x="12" y="12.5" width="12.25"/>`, `<rect x="12" y="12.5" width="12.25"/>`},
		{`<path d="M1.0001.5"/>`, `<path d="M1 .5"/>`},
		{`<path d="M1.2345.5"/>`, `<path d="M1.23.5"/>`},
		{`<path d="M1.5.0001L3 4"/>`, `<path d="M1.5 0L3 4"/>`},
		{`<path d="M1.2345.0001L3 4"/>`, `<path d="M1.23 0L3 4"/>`},
		{`<path d="M1.0001.0001"/>`, `<path d="M1 0"/>`},
		{`<path d="M1.5.996"/>`, `<path d="M1.5 1"/>`},
		{`<path d="M1.5 .0001"/>`, `<path d="M1.5 0"/>`},
		{`<path d="M-.0001"/>`, `<path d="M-0"/>`},
		{`<path d="m-0.2449-1.5551"/>`, `<path d="m-0.24-1.56"/>`},
		{`<svg version="1.1"/>`, `<svg version="1.1"/>`},
	}
	for _, tt := range tests {
		if got := reducePrecision(tt.in, 2); got != tt.want {
			t.Errorf("reducePrecision(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripProlog(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg><title>Smile</title><desc>A <b>smiling</b> face</desc><metadata><rdf:RDF/></metadata><!-- generator
spans lines --><path/><title/></svg>`
	want := "\n\n<svg><path/></svg>"
	if got := stripProlog(in); got != want {
		t.Errorf("stripProlog = %q, want %q", got, want)
	}
}

func TestStripCruft(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" ` +
		`xmlns:sketch="http://www.bohemiancoding.com/sketch/ns" xml:space="preserve" data-name="Layer 1" ` +
		`sketch:type="MSPage"><sodipodi:namedview pagecolor="#fff"/><use id="u" xlink:href="#a"/></svg>`

	got := stripCruft(in, false)
	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use id="u" xlink:href="#a"/></svg>`
	if got != want {
		t.Errorf("stripCruft = %q, want %q", got, want)
	}

	got = stripCruft(in, true)
	want = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`
	if got != want {
		t.Errorf("stripCruft with ids = %q, want %q", got, want)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	in := "\n<svg>\n  <path d=\"M1   2\n L3 4\"  />\n</svg>\n"
	want := `<svg><path d="M1 2 L3 4"/></svg>`
	if got := collapseWhitespace(in); got != want {
		t.Errorf("collapseWhitespace = %q, want %q", got, want)
	}
}

func TestNormalizeColors(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`fill="rgb(255,255,255)"`, `fill="#fff"`},
		{`fill="rgb( 17, 34, 51 )"`, `fill="#112233"`},
		{`fill="rgb(100%, 0%, 0%)"`, `fill="#ff0000"`},
		{`fill="RGB(0 0 0)"`, `fill="#000"`},
		{`fill="#112233"`, `fill="#112233"`},
		{`fill="#AABBCC"`, `fill="#aabbcc"`},
		{`fill="#FFFFFF"`, `fill="#fff"`},
		{`fill="#777777"`, `fill="#777"`},
		{`fill="#abcabc"`, `fill="#abcabc"`},
		{`fill="#ABC"`, `fill="#abc"`},
		{`style="fill:#ff0000;stroke:#00FF00"`, `style="fill:#ff0000;stroke:#00ff00"`},
		{`fill="url(#aabbcc)"`, `fill="url(#aabbcc)"`},
		{`<use xlink:href="#ffeedd"/>`, `<use xlink:href="#ffeedd"/>`},
		{`fill="#aabbccdd"`, `fill="#aabbccdd"`},
	}
	for _, tt := range tests {
		if got := normalizeColors(tt.in); got != tt.want {
			t.Errorf("normalizeColors(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripDefaults(t *testing.T) {
	in := `<path fill-opacity="1" opacity="1" fill-rule="nonzero" stroke-opacity='1.0' d="M0 0"/><g opacity="0.5" fill-rule="evenodd"/>`
	want := `<path d="M0 0"/><g opacity="0.5" fill-rule="evenodd"/>`
	if got := stripDefaults(in); got != want {
		t.Errorf("stripDefaults = %q, want %q", got, want)
	}
}

func TestStripNoopTransforms(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`<g transform="translate(0,0)"><path/></g>`, `<g><path/></g>`},
		{`<g transform="translate(0)">`, `<g>`},
		{`<g transform="translate(0 0) scale(1)">`, `<g>`},
		{`<g transform="matrix(1 0 0 1 0 0)">`, `<g>`},
		{`<g transform="rotate(0.0)">`, `<g>`},
		{`<g transform="translate(1,0)">`, `<g transform="translate(1,0)">`},
		{`<g transform="translate(0,0) rotate(45)">`, `<g transform="translate(0,0) rotate(45)">`},
	}
	for _, tt := range tests {
		if got := stripNoopTransforms(tt.in); got != tt.want {
			t.Errorf("stripNoopTransforms(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripEmptyGroups(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`<svg><g><g id="a"></g><g/></g><path/></svg>`, `<svg><path/></svg>`},
		{`<svg><g fill="red"><path/></g></svg>`, `<svg><g fill="red"><path/></g></svg>`},
		{`<svg><g><g a="1"/></g><glyph></glyph></svg>`, `<svg><glyph></glyph></svg>`},
		{`<text>a <g></g> b</text>`, `<text>a b</text>`},
	}
	for _, tt := range tests {
		if got := stripEmptyGroups(tt.in); got != tt.want {
			t.Errorf("stripEmptyGroups(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptimizerSteps(t *testing.T) {
	got := NewOptimizer(DefaultOptimizeOptions()).Steps()
	want := []string{"prolog", "cruft", "precision", "whitespace", "colors", "defaults", "transforms", "empty-groups"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("default steps (-want +got):\n%s", diff)
	}

	got = NewOptimizer(OptimizeOptions{Precision: -1, DropViewBox: true, Minify: true}).Steps()
	want = []string{"prolog", "cruft", "whitespace", "colors", "defaults", "viewbox", "minify"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("custom steps (-want +got):\n%s", diff)
	}
}

const smileSVG = `<svg viewBox="0 0 16 16"><!-- c --><path d="M1.2345 2.3456"/></svg>`

const editorSVG = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!-- Created with Inkscape (http://www.inkscape.org/) -->
<svg
   xmlns:dc="http://purl.org/dc/elements/1.1/"
   xmlns:svg="http://www.w3.org/2000/svg"
   xmlns="http://www.w3.org/2000/svg"
   xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
   xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
   width="24" height="24" viewBox="0 0 24.000001 24"
   id="svg8" inkscape:version="1.2" sodipodi:docname="smile.svg">
  <title>smile</title>
  <metadata id="metadata5"><dc:title>smile</dc:title></metadata>
  <sodipodi:namedview id="base" pagecolor="#ffffff" inkscape:zoom="22.4" />
  <g inkscape:label="Layer 1" inkscape:groupmode="layer" id="layer1" transform="translate(0,0)">
    <path
       style="fill:rgb(255, 0, 0);fill-opacity:1"
       fill-opacity="1"
       d="M 12.000001,2.0000005 C 6.4771525,2.0000005 2,6.477153 2,12.000001 2,17.522848 6.4771525,22 12.000001,22 Z"
       id="path1" fill-rule="nonzero" />
    <g id="empty"><g></g></g>
    <circle cx="8.5" cy="9.5" r="1.4999999" fill="#FFFFFF" opacity="1"/>
  </g>
</svg>
`

func TestOptimizeEditorOutput(t *testing.T) {
	got := NewOptimizer(DefaultOptimizeOptions()).Optimize(editorSVG)
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" id="svg8">` +
		`<g id="layer1"><path style="fill:#ff0000;fill-opacity:1" d="M 12,2 C 6.48,2 2,6.48 2,12 2,17.52 6.48,22 12,22 Z" id="path1"/>` +
		`<circle cx="8.5" cy="9.5" r="1.5" fill="#fff"/></g></svg>`
	if got != want {
		t.Errorf("Optimize:\n got %s\nwant %s", got, want)
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	inputs := []string{
		smileSVG,
		editorSVG,
		`<svg><text> a <g></g> b </text></svg>`,
		`<svg><path d="M1.0001.5 2.9999.25"/><g transform="translate(0 0)"><g/></g></svg>`,
		`<svg><path d="M1.5.0001L3 4"/></svg>`,
		`<svg><path d="M1.2345.0001L3 4"/></svg>`,
		`<svg><path d="M.5.0001.996.4999"/></svg>`,
		`<svg fill="rgb(17,34,51)" stroke="#AABBCC"><use href="#aabbcc"/></svg>`,
		`  <svg   viewBox = "0 0 1 1" ><g opacity="1" >x</g></svg>`,
		`<svg <<< ]]> "unterminated <!-- open comment`,
		``,
	}
	for _, opts := range []OptimizeOptions{
		DefaultOptimizeOptions(),
		{Precision: 0, StripIDs: true, DropViewBox: true, DropNoopTransforms: true, DropEmptyGroups: true},
		{Precision: 3},
	} {
		o := NewOptimizer(opts)
		for _, in := range inputs {
			once := o.Optimize(in)
			if twice := o.Optimize(once); twice != once {
				t.Errorf("%+v: not idempotent for %q:\n once %q\ntwice %q", opts, in, once, twice)
			}
		}
	}
}

func TestOptimizePreservesViewBox(t *testing.T) {
	inputs := []string{
		smileSVG,
		editorSVG,
		`<svg id="a" viewBox='0 0 10 10'><g/></svg>`,
	}
	keep := NewOptimizer(OptimizeOptions{Precision: 2, StripIDs: true, DropNoopTransforms: true, DropEmptyGroups: true})
	drop := NewOptimizer(OptimizeOptions{Precision: 2, DropViewBox: true})
	for _, in := range inputs {
		if got := keep.Optimize(in); !strings.Contains(got, "viewBox=") {
			t.Errorf("viewBox lost: %q", got)
		}
		if got := drop.Optimize(in); strings.Contains(got, "viewBox") {
			t.Errorf("viewBox kept with DropViewBox: %q", got)
		}
	}
}

func TestOptimizeMinify(t *testing.T) {
	o := NewOptimizer(OptimizeOptions{Precision: 2, Minify: true})
	got := o.Optimize(editorSVG)
	if got == "" || !strings.Contains(got, "<path") {
		t.Fatalf("minified output lost the path: %q", got)
	}
	if len(got) >= len(editorSVG) {
		t.Errorf("minified output is not smaller: %d >= %d", len(got), len(editorSVG))
	}
}

func TestOptimizeMinifyKeepsPrecision(t *testing.T) {
	o := NewOptimizer(OptimizeOptions{Precision: 2, Minify: true})
	got := o.Optimize(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M1.23456 2.34567L10 10"/></svg>`)
	if !strings.Contains(got, "1.23") {
		t.Errorf("rounded coordinate lost: %q", got)
	}
	if strings.Contains(got, "1.234") || strings.Contains(got, "2.345") {
		t.Errorf("minify undid the precision step: %q", got)
	}
}
