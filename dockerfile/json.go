package dockerfile

import (
	"bytes"
	"encoding/json"
	"strings"
)

// A note on quoting: wherever values are enquoted for the Dockerfile, JSON
// string encoding is used. Some instructions genuinely require JSON (exec
// form arrays must use double quotes), which suggests every other quoted
// value should be a JSON string too.

// Encodes a value as a JSON string literal.
//
// HTML escaping is disabled so that characters like '<' and '&' appear
// verbatim, as the Dockerfile grammar expects.
func jsonQuote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encoding a plain string cannot fail.
	_ = enc.Encode(s)

	return strings.TrimSuffix(buf.String(), "\n")
}

// Encodes values as a JSON array of string literals, with ", " between
// elements ("[\"a\", \"b\"]").
func jsonList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = jsonQuote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
