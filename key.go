package svgbundle

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/unicode/norm"
)

// IconKey derives the bundle key of an icon from a file name or a path-like
// string: the directory prefix and the last extension are dropped.
// File systems disagree on Unicode normalization of names, so the key is NFC.
func IconKey(nameOrPath string) string {
	name := nameOrPath
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return norm.NFC.String(name)
}

// DefaultSymbolPrefix is prepended to sprite symbol ids.
const DefaultSymbolPrefix = "e_"

// SymbolID returns the sprite symbol id for an icon file name. Characters
// outside [a-zA-Z0-9_-] become underscores.
func SymbolID(prefix, name string) string {
	key := IconKey(name)
	var b strings.Builder
	b.Grow(len(prefix) + len(key))
	b.WriteString(prefix)
	for _, r := range key {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// GoIdent returns an exported Go identifier for prefix+key.
func GoIdent(prefix, key string) string {
	name := key
	if prefix != "" {
		name = prefix + "_" + key
	}
	id := strcase.ToCamel(name)
	id = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, id)
	// Identifiers must be exported, which also rules out a leading digit.
	if r := []rune(id); len(r) == 0 || !unicode.IsUpper(r[0]) {
		return "X" + id
	}
	return id
}
