package svgbundle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

// DefaultPrecision is the number of fractional digits kept by the precision step.
const DefaultPrecision = 2

// OptimizeOptions selects which rewrite steps an Optimizer runs.
type OptimizeOptions struct {
	// Precision is the maximum number of fractional digits of a decimal
	// literal. A negative value disables rounding.
	Precision int

	// StripIDs removes id attributes. Leave it off when the output is a
	// sprite or when icons reference their own ids (gradients, masks).
	StripIDs bool

	// DropViewBox removes the viewBox attribute.
	DropViewBox bool

	DropNoopTransforms bool
	DropEmptyGroups    bool

	// Minify runs the tdewolff SVG minifier after the text rewrites.
	Minify bool
}

// DefaultOptimizeOptions returns the options used when nothing is configured.
func DefaultOptimizeOptions() OptimizeOptions {
	return OptimizeOptions{
		Precision:          DefaultPrecision,
		DropNoopTransforms: true,
		DropEmptyGroups:    true,
	}
}

// Step is a single named rewrite of SVG markup.
type Step struct {
	Name  string
	Apply func(markup string) string
}

// Optimizer shrinks SVG markup by applying its steps in order. It works on
// the text and never parses the document, so malformed input degrades the
// output rather than failing.
type Optimizer struct {
	steps []Step
}

// NewOptimizer builds the step pipeline selected by opts.
func NewOptimizer(opts OptimizeOptions) *Optimizer {
	steps := []Step{
		{"prolog", stripProlog},
		{"cruft", func(s string) string { return stripCruft(s, opts.StripIDs) }},
	}
	if opts.Precision >= 0 {
		n := opts.Precision
		steps = append(steps, Step{"precision", func(s string) string { return reducePrecision(s, n) }})
	}
	steps = append(steps,
		Step{"whitespace", collapseWhitespace},
		Step{"colors", normalizeColors},
		Step{"defaults", stripDefaults},
	)
	if opts.DropNoopTransforms {
		steps = append(steps, Step{"transforms", stripNoopTransforms})
	}
	if opts.DropEmptyGroups {
		steps = append(steps, Step{"empty-groups", stripEmptyGroups})
	}
	if opts.DropViewBox {
		steps = append(steps, Step{"viewbox", func(s string) string { return reViewBox.ReplaceAllString(s, "") }})
	}
	if opts.Minify {
		steps = append(steps, Step{"minify", newMinifyStep()})
	}
	return &Optimizer{steps: steps}
}

// Optimize returns the rewritten markup.
func (o *Optimizer) Optimize(markup string) string {
	for _, st := range o.steps {
		markup = st.Apply(markup)
	}
	return markup
}

// Steps returns the names of the active steps in the order they run.
func (o *Optimizer) Steps() []string {
	names := make([]string, len(o.steps))
	for i, st := range o.steps {
		names[i] = st.Name
	}
	return names
}

// attrValue matches a quoted attribute value.
const attrValue = `\s*=\s*(?:"[^"]*"|'[^']*')`

var (
	reXMLDecl  = regexp.MustCompile(`(?s)<\?xml.*?\?>`)
	reDoctype  = regexp.MustCompile(`(?is)<!DOCTYPE[^>\[]*(?:\[.*?\])?\s*>`)
	reComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	reMetadata = regexp.MustCompile(`(?s)<metadata\b[^>]*?(?:/>|>.*?</metadata\s*>)`)
	reTitle    = regexp.MustCompile(`(?s)<title\b[^>]*?(?:/>|>.*?</title\s*>)`)
	reDesc     = regexp.MustCompile(`(?s)<desc\b[^>]*?(?:/>|>.*?</desc\s*>)`)
)

func stripProlog(s string) string {
	for _, re := range []*regexp.Regexp{reXMLDecl, reDoctype, reComment, reMetadata, reTitle, reDesc} {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

var (
	reVendorElem = regexp.MustCompile(`(?s)<(?:sodipodi|inkscape):[\w-]+\b[^>]*?(?:/>|>.*?</(?:sodipodi|inkscape):[\w-]+\s*>)`)
	reVendorAttr = regexp.MustCompile(`\s+(?:inkscape|sodipodi|sketch):[\w-]+` + attrValue)
	reDataName   = regexp.MustCompile(`\s+data-name` + attrValue)
	reXMLSpace   = regexp.MustCompile(`\s+xml:space` + attrValue)
	reNSDecl     = regexp.MustCompile(`\s+xmlns:([\w.-]+)` + attrValue)
	reID         = regexp.MustCompile(`\s+id` + attrValue)
)

func stripCruft(s string, stripIDs bool) string {
	s = reVendorElem.ReplaceAllString(s, "")
	s = reVendorAttr.ReplaceAllString(s, "")
	s = reDataName.ReplaceAllString(s, "")
	s = reXMLSpace.ReplaceAllString(s, "")
	if stripIDs {
		s = reID.ReplaceAllString(s, "")
	}

	// A prefix declaration stays only while something still uses the prefix.
	rest := reNSDecl.ReplaceAllString(s, "")
	return reNSDecl.ReplaceAllStringFunc(s, func(decl string) string {
		prefix := reNSDecl.FindStringSubmatch(decl)[1]
		if strings.Contains(rest, prefix+":") {
			return decl
		}
		return ""
	})
}

var reDecimal = regexp.MustCompile(`\d*\.\d+`)

func reducePrecision(s string, n int) string {
	matches := reDecimal.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		lit := s[m[0]:m[1]]
		dot := strings.IndexByte(lit, '.')
		if len(lit)-dot-1 <= n {
			continue
		}
		b.WriteString(s[last:m[0]])
		r := roundDecimal(lit[:dot], lit[dot+1:], n)
		integral := !strings.Contains(r, ".")
		// "1.5.0001" must not become "1.50".
		if integral && dot == 0 && endsNumber(b.String()) {
			b.WriteByte(' ')
		}
		b.WriteString(r)
		// "1.0001.5" must not become "1.5".
		if integral && m[1] < len(s) && s[m[1]] == '.' {
			b.WriteByte(' ')
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func endsNumber(s string) bool {
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return '0' <= c && c <= '9' || c == '.'
}

// roundDecimal rounds intPart.frac half-up to n fractional digits, working on
// the digit string so that neither precision nor notation changes.
func roundDecimal(intPart, frac string, n int) string {
	digits := []byte(intPart + frac[:n])
	if frac[n] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] != '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	ip := string(digits[:len(digits)-n])
	fp := strings.TrimRight(string(digits[len(digits)-n:]), "0")
	switch {
	case fp != "":
		return ip + "." + fp
	case ip == "":
		return "0"
	}
	return ip
}

var (
	reSpace       = regexp.MustCompile(`\s+`)
	reBetweenTags = regexp.MustCompile(`>\s+<`)
	reSelfClose   = regexp.MustCompile(`\s+/>`)
)

func collapseWhitespace(s string) string {
	s = reSpace.ReplaceAllString(s, " ")
	s = reBetweenTags.ReplaceAllString(s, "><")
	s = reSelfClose.ReplaceAllString(s, "/>")
	return strings.TrimSpace(s)
}

var (
	reRGB = regexp.MustCompile(`(?i)rgb\(\s*(\d{1,3}%?)(?:\s*,\s*|\s+)(\d{1,3}%?)(?:\s*,\s*|\s+)(\d{1,3}%?)\s*\)`)
	reHex = regexp.MustCompile(`#[0-9a-fA-F]+`)
)

func normalizeColors(s string) string {
	s = reRGB.ReplaceAllStringFunc(s, func(m string) string {
		c := reRGB.FindStringSubmatch(m)
		return fmt.Sprintf("#%02x%02x%02x", channel(c[1]), channel(c[2]), channel(c[3]))
	})

	matches := reHex.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if n := m[1] - m[0]; n != 4 && n != 7 {
			continue
		}
		if isFragmentRef(s[:m[0]]) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(shortHex(strings.ToLower(s[m[0]:m[1]])))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// channel converts an rgb() component, either 0-255 or a percentage, to a byte.
func channel(v string) int {
	if p, ok := strings.CutSuffix(v, "%"); ok {
		n, _ := strconv.Atoi(p)
		if n > 100 {
			n = 100
		}
		return (n*255 + 50) / 100
	}
	n, _ := strconv.Atoi(v)
	if n > 255 {
		n = 255
	}
	return n
}

// shortHex collapses #rrggbb to #rgb. Only gray levels whose six digits are
// all the same (#ffffff, #000000) are shortened; #112233 stays as it is.
func shortHex(c string) string {
	if len(c) == 7 && strings.Count(c[1:], c[1:2]) == 6 {
		return c[:4]
	}
	return c
}

func isFragmentRef(before string) bool {
	return strings.HasSuffix(before, "url(") ||
		strings.HasSuffix(before, `href="`) ||
		strings.HasSuffix(before, `href='`)
}

var reDefaults = regexp.MustCompile(`\s+(?:(?:fill-opacity|stroke-opacity|opacity)\s*=\s*(?:"1(?:\.0*)?"|'1(?:\.0*)?')|fill-rule\s*=\s*(?:"nonzero"|'nonzero'))`)

func stripDefaults(s string) string {
	return reDefaults.ReplaceAllString(s, "")
}

var reNoopTransform = func() *regexp.Regexp {
	const (
		zero = `-?(?:0+(?:\.0*)?|\.0+)`
		one  = `1(?:\.0*)?`
		sep  = `(?:\s*,\s*|\s+)`
	)
	op := `(?:translate\(\s*` + zero + `(?:` + sep + zero + `)?\s*\)` +
		`|scale\(\s*` + one + `(?:` + sep + one + `)?\s*\)` +
		`|rotate\(\s*` + zero + `\s*\)` +
		`|matrix\(\s*` + strings.Join([]string{one, zero, zero, one, zero, zero}, sep) + `\s*\))`
	ops := op + `(?:\s*` + op + `)*`
	return regexp.MustCompile(`\s+transform\s*=\s*(?:"\s*` + ops + `\s*"|'\s*` + ops + `\s*')`)
}()

func stripNoopTransforms(s string) string {
	return reNoopTransform.ReplaceAllString(s, "")
}

var (
	reEmptyGroupSelf = regexp.MustCompile(`<g(?:\s[^>]*?)?/>`)
	reEmptyGroup     = regexp.MustCompile(`<g(?:\s[^>]*)?>\s*</g\s*>`)
)

// stripEmptyGroups removes childless groups until none are left, so that
// groups which only held empty groups go too.
func stripEmptyGroups(s string) string {
	orig := s
	for {
		next := reEmptyGroup.ReplaceAllString(reEmptyGroupSelf.ReplaceAllString(s, ""), "")
		if next == s {
			break
		}
		s = next
	}
	if s == orig {
		return s
	}
	return collapseWhitespace(s)
}

var reViewBox = regexp.MustCompile(`\s+viewBox` + attrValue)

func newMinifyStep() func(string) string {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	// Precision 0 keeps every digit, so numbers stay as the precision step left them.
	m.Add("image/svg+xml", &svg.Minifier{Precision: 0})
	return func(s string) string {
		out, err := m.String("image/svg+xml", s)
		if err != nil {
			return s
		}
		return out
	}
}
