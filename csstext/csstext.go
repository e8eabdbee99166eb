/*
Package csstext provides small helpers for working with CSS as text:
property-name conversion and token-level whitespace normalization.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package csstext

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// CamelToKebab converts a camelCase property name to its kebab-case CSS
// spelling, e.g. "backgroundSize" ⇒ "background-size". A hyphen is
// inserted between a lowercase letter and a following uppercase letter;
// the result is lowercased as a whole.
func CamelToKebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	prevLower := false
	for _, r := range name {
		if prevLower && r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		prevLower = r >= 'a' && r <= 'z'
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// RuleText joins a selector and a declaration block into serialized
// CSS-rule form, "selector { declarations }".
func RuleText(selector, declarations string) string {
	return selector + " { " + declarations + " }"
}

// Normalize rewrites CSS text into a canonical compact form: comments
// and insignificant whitespace are dropped, with a single blank kept
// between adjacent word-like tokens ("1px solid red" survives intact).
// Two pieces of CSS that differ only in formatting normalize to the
// same string, which is what the tests in this module compare.
func Normalize(css string) string {
	var b strings.Builder
	s := scanner.New(css)
	prevWord := false
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		switch tok.Type {
		case scanner.TokenS, scanner.TokenComment:
			continue
		}
		word := isWordToken(tok)
		if word && prevWord {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Value)
		prevWord = word
	}
	return b.String()
}

func isWordToken(tok *scanner.Token) bool {
	switch tok.Type {
	case scanner.TokenIdent, scanner.TokenNumber, scanner.TokenDimension,
		scanner.TokenPercentage, scanner.TokenHash, scanner.TokenString,
		scanner.TokenURI, scanner.TokenFunction, scanner.TokenAtKeyword,
		scanner.TokenUnicodeRange:
		return true
	}
	return false
}
