package svgbundle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// JSOptions names the globals defined by a JavaScript bundle.
type JSOptions struct {
	GlobalName string // frozen key → data URI object
	LookupName string // lookup helper
}

// DefaultJSOptions returns the names used when none are configured.
func DefaultJSOptions() JSOptions {
	return JSOptions{GlobalName: "ICON_DATA", LookupName: "getIcon"}
}

const jsHeader = `// Code generated by svgbundle. DO NOT EDIT.
(function (root) {
  "use strict";
  var data = Object.freeze({
`

const jsFooter = `  });
  function lookup(name) {
    var key = String(name).replace(/^.*[\\/]/, "");
    if (key.normalize) {
      key = key.normalize("NFC");
    }
    var dot = key.lastIndexOf(".");
    if (dot > 0) {
      key = key.slice(0, dot);
    }
    return Object.prototype.hasOwnProperty.call(data, key) ? data[key] : null;
  }
  root[%s] = data;
  root[%s] = lookup;
})(typeof globalThis !== "undefined" ? globalThis : window);
`

// WriteJS writes b as a script that defines opts.GlobalName and
// opts.LookupName on the global object. The lookup helper accepts a bare key
// or a path-like name, normalized to NFC like IconKey, and returns null for
// unknown icons.
func WriteJS(w io.Writer, b *Bundle, opts JSOptions) error {
	def := DefaultJSOptions()
	if opts.GlobalName == "" {
		opts.GlobalName = def.GlobalName
	}
	if opts.LookupName == "" {
		opts.LookupName = def.LookupName
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(jsHeader)
	for i, k := range b.entries.keys {
		key, err := json.Marshal(k)
		if err != nil {
			return err
		}
		uri, err := json.Marshal(b.entries.vals[k])
		if err != nil {
			return err
		}
		sep := ","
		if i == len(b.entries.keys)-1 {
			sep = ""
		}
		fmt.Fprintf(bw, "    %s: %s%s\n", key, uri, sep)
	}

	global, err := json.Marshal(opts.GlobalName)
	if err != nil {
		return err
	}
	lookup, err := json.Marshal(opts.LookupName)
	if err != nil {
		return err
	}
	fmt.Fprintf(bw, jsFooter, global, lookup)
	return bw.Flush()
}
