package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Prepare normalizes raw interaction content for keyword matching: HTML is
// reduced to visible text, the result is lowercased, SMS abbreviations are
// expanded, and punctuation collapses to single spaces. Returns the canonical
// string plus its tokens.
func Prepare(text string, abbreviations map[string]string) (string, []string) {
	if looksLikeHTML(text) {
		text = StripHTML(text)
	}

	canon := Canonical(text)
	if canon == "" {
		return "", nil
	}

	tokens := strings.Split(canon, " ")
	if len(abbreviations) > 0 {
		expanded := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			if full, ok := abbreviations[tok]; ok {
				expanded = append(expanded, strings.Split(Canonical(full), " ")...)
				continue
			}
			expanded = append(expanded, tok)
		}
		tokens = expanded
		canon = strings.Join(tokens, " ")
	}

	return canon, tokens
}

// Canonical lowercases text and collapses every punctuation run to a single
// space. Apostrophes inside words survive so "don't" stays one token.
func Canonical(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// ContainsPhrase reports whether the canonical phrase occurs in the canonical
// text on word boundaries ("stop" matches "please stop texting" but not
// "stopped by").
func ContainsPhrase(canonText, phrase string) bool {
	phrase = Canonical(phrase)
	if canonText == "" || phrase == "" {
		return false
	}
	padded := " " + canonText + " "
	return strings.Contains(padded, " "+phrase+" ")
}

// StripHTML extracts the visible text from HTML content, skipping scripts,
// styles and embedded frames. Used for email-reply bodies that arrive as
// markup instead of plain text.
func StripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}

// looksLikeHTML is a cheap check for tag-like markup; plain text with a
// stray "<" should not go through the HTML parser
func looksLikeHTML(s string) bool {
	idx := strings.IndexByte(s, '<')
	if idx < 0 || idx+1 >= len(s) {
		return false
	}
	next := s[idx+1]
	return next == '/' || (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z')
}
