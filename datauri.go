package svgbundle

import (
	"errors"
	"fmt"
	"strings"
)

// DataURIPrefix starts every encoded icon.
const DataURIPrefix = "data:image/svg+xml;charset=utf-8,"

// ErrNotDataURI is returned when decoding a string without DataURIPrefix.
var ErrNotDataURI = errors.New("not an svg data URI")

// DataURIEncoder percent-encodes SVG markup into a data URI.
//
// Every byte outside the unreserved set and the allow-list / : ; , = is
// escaped, so the result decodes back to exactly the input. Quote is the
// quote character of the container the URI will be embedded in; '"' is
// always escaped, '\'' only when Quote is '\''.
type DataURIEncoder struct {
	Quote byte
}

// EncodeDataURI encodes markup for a double-quoted container.
func EncodeDataURI(markup string) string {
	return DataURIEncoder{Quote: '"'}.Encode(markup)
}

// Encode returns DataURIPrefix followed by the escaped markup.
func (e DataURIEncoder) Encode(markup string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(DataURIPrefix) + len(markup) + len(markup)/4)
	sb.WriteString(DataURIPrefix)

	runStart := 0
	for i := 0; i < len(markup); i++ {
		c := markup[i]
		if !e.escape(c) {
			continue
		}
		sb.WriteString(markup[runStart:i])
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&15])
		runStart = i + 1
	}
	sb.WriteString(markup[runStart:])
	return sb.String()
}

func (e DataURIEncoder) escape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	switch c {
	case '\'':
		return e.Quote == '\''
	case '-', '_', '.', '!', '~', '*', '(', ')', '/', ':', ';', ',', '=':
		return false
	}
	return true
}

// DecodeDataURI reverses EncodeDataURI.
func DecodeDataURI(uri string) (string, error) {
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return "", ErrNotDataURI
	}

	var sb strings.Builder
	sb.Grow(len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		if i+2 >= len(payload) {
			return "", fmt.Errorf("truncated escape at offset %d", i)
		}
		hi, ok1 := unhex(payload[i+1])
		lo, ok2 := unhex(payload[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("invalid escape %q at offset %d", payload[i:i+3], i)
		}
		sb.WriteByte(hi<<4 | lo)
		i += 2
	}
	return sb.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
