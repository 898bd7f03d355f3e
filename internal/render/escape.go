package render

import "html"

// EscapeText encodes <, >, &, and both quote characters so that every
// remote-sourced string renders as literal text. URLs pass through here too:
// they are inserted as text content, never trusted as markup.
func EscapeText(s string) string {
	return html.EscapeString(s)
}
