package svgbundle

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
)

// GoOptions controls the generated Go bundle.
type GoOptions struct {
	Package  string
	VarName  string
	FuncName string
}

// DefaultGoOptions returns the names used when none are configured.
func DefaultGoOptions() GoOptions {
	return GoOptions{Package: "icons", VarName: "Icons", FuncName: "Lookup"}
}

// WriteGo writes b as a gofmt-formatted Go source file holding a
// map[string]string and a lookup function with the semantics of
// Bundle.Lookup, minus Unicode normalization.
func WriteGo(w io.Writer, b *Bundle, opts GoOptions) error {
	def := DefaultGoOptions()
	if opts.Package == "" {
		opts.Package = def.Package
	}
	if opts.VarName == "" {
		opts.VarName = def.VarName
	}
	if opts.FuncName == "" {
		opts.FuncName = def.FuncName
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by svgbundle. DO NOT EDIT.\n\npackage %s\n\n", opts.Package)
	buf.WriteString("import \"strings\"\n\n")
	fmt.Fprintf(&buf, "// %s maps icon names to data URIs.\n", opts.VarName)
	fmt.Fprintf(&buf, "var %s = map[string]string{\n", opts.VarName)
	for _, k := range b.entries.keys {
		fmt.Fprintf(&buf, "%s: %s,\n", strconv.Quote(k), strconv.Quote(b.entries.vals[k]))
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "// %s returns the data URI of an icon given its name or a path such as\n", opts.FuncName)
	buf.WriteString("// \"icons/smile.svg\".\n")
	fmt.Fprintf(&buf, "func %s(name string) (string, bool) {\n", opts.FuncName)
	buf.WriteString("if i := strings.LastIndexAny(name, `/\\`); i >= 0 {\nname = name[i+1:]\n}\n")
	buf.WriteString("if i := strings.LastIndexByte(name, '.'); i > 0 {\nname = name[:i]\n}\n")
	fmt.Fprintf(&buf, "uri, ok := %s[name]\nreturn uri, ok\n}\n", opts.VarName)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}
