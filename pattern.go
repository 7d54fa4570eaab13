package dico

import "regexp"

// Shared format patterns for the url and email kinds. Compiled once at
// process start; Field never recompiles them.
var (
	urlPattern = regexp.MustCompile(
		`(?i)^https?://` +
			`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
			`localhost|` +
			`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
			`(?::\d+)?` +
			`(?:/?|[/?]\S+)$`)

	emailPattern = regexp.MustCompile(
		// dot-atom
		`(?i)^(?:[-!#$%&'*+/=?^_\x60{}|~0-9A-Z]+(?:\.[-!#$%&'*+/=?^_\x60{}|~0-9A-Z]+)*` +
			// quoted-string
			`|"(?:[\x01-\x08\x0B\x0C\x0E-\x1F!#-\[\]-\x7F]|\\[\x01-\x09\x0B\x0C\x0E-\x7F])*"` +
			// domain
			`)@(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?$`)
)
