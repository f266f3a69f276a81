package svgbundle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/net/html"
)

// errNoSVGElement is reported for icons without an <svg> element.
var errNoSVGElement = errors.New("no <svg> element")

// SpriteOptions controls sprite assembly.
type SpriteOptions struct {
	// IDPrefix is prepended to every symbol id; DefaultSymbolPrefix if empty.
	IDPrefix string
}

// Symbol is the content of one <symbol> element.
type Symbol struct {
	ViewBox string
	Inner   string
}

// Sprite is a set of symbols, one per icon, keyed by symbol id.
type Sprite struct {
	symbols *ordered[Symbol]
	stats   Stats
	err     error
}

// BuildSprite optimizes the named files of fsys and turns each one into a
// symbol. Only the top-level <svg> element is unwrapped; a nested <svg> is
// kept as part of the symbol content.
func (p *Processor) BuildSprite(fsys fs.FS, names []string, opts SpriteOptions) *Sprite {
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = DefaultSymbolPrefix
	}
	keyOf := func(name string) string { return SymbolID(prefix, name) }

	symbols, st, err := collect(p, fsys, names, keyOf, func(_, markup string) (Symbol, error) {
		return extractSymbol(markup)
	})
	return &Sprite{symbols: symbols, stats: st, err: err}
}

func extractSymbol(markup string) (Symbol, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Symbol{}, err
	}
	root := findElement(doc, "svg")
	if root == nil {
		return Symbol{}, errNoSVGElement
	}

	var sym Symbol
	for _, a := range root.Attr {
		if a.Namespace == "" && a.Key == "viewBox" {
			sym.ViewBox = a.Val
		}
	}

	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return Symbol{}, err
		}
	}
	sym.Inner = sb.String()
	return sym, nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// IDs returns the symbol ids in input order.
func (s *Sprite) IDs() []string {
	return append([]string(nil), s.symbols.keys...)
}

// Symbol returns the symbol with the given id.
func (s *Sprite) Symbol(id string) (Symbol, bool) {
	sym, ok := s.symbols.vals[id]
	return sym, ok
}

func (s *Sprite) Len() int { return s.symbols.len() }

func (s *Sprite) Stats() Stats { return s.stats }

// Err returns the combined per-file errors, or nil if every file was processed.
func (s *Sprite) Err() error { return s.err }

// WriteTo writes the sprite document. The wrapping <svg> is hidden so the
// sprite can be inlined into a page.
func (s *Sprite) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	bw.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if s.usesXLink() {
		bw.WriteString(` xmlns:xlink="http://www.w3.org/1999/xlink"`)
	}
	bw.WriteString(` style="display:none">`)
	for _, id := range s.symbols.keys {
		sym := s.symbols.vals[id]
		fmt.Fprintf(bw, "\n<symbol id=\"%s\"", html.EscapeString(id))
		if sym.ViewBox != "" {
			fmt.Fprintf(bw, " viewBox=\"%s\"", html.EscapeString(sym.ViewBox))
		}
		fmt.Fprintf(bw, ">%s</symbol>", sym.Inner)
	}
	bw.WriteString("\n</svg>\n")

	err := bw.Flush()
	return cw.n, err
}

func (s *Sprite) usesXLink() bool {
	for _, sym := range s.symbols.vals {
		if strings.Contains(sym.Inner, "xlink:") {
			return true
		}
	}
	return false
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
