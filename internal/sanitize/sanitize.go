// Package sanitize neutralizes executable markup in free-text fields before
// they reach the record store. Descriptions render with preserved line breaks,
// so plain text and newlines must survive untouched.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// The strict policy strips every element; script and style contents are
// dropped entirely rather than left behind as text.
var policy = bluemonday.StrictPolicy()

// Clean strips script-executing markup from s, keeping plain text and
// newlines. Idempotent: Clean(Clean(s)) == Clean(s). Persisted values are
// text, not HTML, so the policy's entity-escaped output is unescaped back
// to plain text.
func Clean(s string) string {
	// Fully decode entity escaping first, however deeply nested, so
	// pre-escaped markup like &lt;script&gt; reaches the policy as real
	// markup instead of slipping through as inert text and turning live
	// on the final unescape. Decoding strictly shrinks the string when it
	// changes anything, so the loop terminates.
	for {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	return html.UnescapeString(policy.Sanitize(s))
}
