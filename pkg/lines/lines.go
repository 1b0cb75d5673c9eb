// Package lines implements the newline-delimited text encoding pod
// resources are stored in.
package lines

import "strings"

// Join renders every value followed by a "\n", including the last. An empty
// input yields the empty string. Values containing a literal newline corrupt
// the encoding; there is no escaping.
func Join(values []string) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Split splits s on "\n" and drops trailing empty elements, so
// Split(Join(xs)) == xs for any xs with no embedded newline and no trailing
// empty element. Split("") returns a single empty element.
func Split(s string) []string {
	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		// No delimiter present; the input is returned whole, even when
		// empty.
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
