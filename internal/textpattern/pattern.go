package textpattern

import (
	"fmt"
	"iter"
	"strings"
)

//go:generate go tool stringer -type=TokenKind -trimprefix=Token -output=tokenkind_string.go

// TokenKind distinguishes literal spans from placeholders.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenPlaceholder
)

// Token is a single scanned span. For placeholders Text is the trimmed name.
type Token struct {
	Kind TokenKind
	Text string
}

// Delimiters is the opener/closer pair that encloses placeholder names.
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters is the "{{name}}" convention.
var DefaultDelimiters = Delimiters{Open: "{{", Close: "}}"}

// IsZero returns true when neither delimiter is set.
func (d Delimiters) IsZero() bool {
	return d.Open == "" && d.Close == ""
}

// Pattern is a template text bound to its delimiters.
type Pattern struct {
	Text  string
	Delim Delimiters
}

// New returns a pattern for text. Zero delimiters select DefaultDelimiters.
func New(text string, delim Delimiters) Pattern {
	if delim.IsZero() {
		delim = DefaultDelimiters
	}

	return Pattern{Text: text, Delim: delim}
}

// Tokens scans the pattern lazily. Ranging over the sequence again restarts
// the scan from the beginning. A pattern with an empty opener or closer is a
// single literal.
func (p Pattern) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		text, open, closer := p.Text, p.Delim.Open, p.Delim.Close
		if open == "" || closer == "" {
			if text != "" {
				yield(Token{Kind: TokenLiteral, Text: text})
			}

			return
		}

		offset := 0

		for offset < len(text) {
			i := strings.Index(text[offset:], open)
			if i < 0 {
				yield(Token{Kind: TokenLiteral, Text: text[offset:]})
				return
			}

			i += offset
			start := i + len(open)

			j := strings.Index(text[start:], closer)
			if j < 0 {
				yield(Token{Kind: TokenLiteral, Text: text[offset:]})
				return
			}

			j += start

			if i > offset {
				if !yield(Token{Kind: TokenLiteral, Text: text[offset:i]}) {
					return
				}
			}

			if !yield(Token{Kind: TokenPlaceholder, Text: strings.TrimSpace(text[start:j])}) {
				return
			}

			offset = j + len(closer)
		}
	}
}

// Placeholders returns the distinct placeholder names in order of first use.
func (p Pattern) Placeholders() []string {
	var names []string

	seen := map[string]struct{}{}

	for tok := range p.Tokens() {
		if tok.Kind != TokenPlaceholder {
			continue
		}

		if _, ok := seen[tok.Text]; ok {
			continue
		}

		seen[tok.Text] = struct{}{}
		names = append(names, tok.Text)
	}

	return names
}

// Resolver returns the substitution text for a placeholder name.
type Resolver func(name string) (string, error)

// Render substitutes every placeholder of p with the resolver's result.
// The first resolver error stops rendering.
func (p Pattern) Render(resolve Resolver) (string, error) {
	var sb strings.Builder

	sb.Grow(len(p.Text))

	for tok := range p.Tokens() {
		if tok.Kind == TokenLiteral {
			sb.WriteString(tok.Text)
			continue
		}

		s, err := resolve(tok.Text)
		if err != nil {
			return "", fmt.Errorf("placeholder %q: %w", tok.Text, err)
		}

		sb.WriteString(s)
	}

	return sb.String(), nil
}
