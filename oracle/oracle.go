// Package oracle judges whether a spoken greeting has finished, either
// by asking a remote chat model or by a local keyword heuristic, with
// the fallback between the two made explicit.
package oracle

// Judgment is a completeness verdict plus the raw diagnostic token it
// was parsed from.
type Judgment struct {
	Complete bool
	Raw      string
}

// Oracle judges a greeting excerpt. A returned error means the oracle
// was unavailable (timeout, transport failure, malformed reply), not
// that the greeting is incomplete; the caller substitutes the
// heuristic.
type Oracle interface {
	Judge(text string) (Judgment, error)
}
