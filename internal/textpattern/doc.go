// Package textpattern scans text templates with configurable placeholder
// delimiters and renders them against a name resolver.
//
// Scanning and substitution are separate steps:
//   - Tokens yields a lazy, restartable sequence of literal spans and
//     placeholder names (trimmed)
//   - Render concatenates literals and resolved placeholder values
//
// An opener without a matching closer ends scanning: the remaining text,
// opener included, is yielded as a literal.
package textpattern
