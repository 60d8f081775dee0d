// Package options reads aliased keys out of loosely typed option maps.
//
// Key capabilities:
//   - Coalesce: first non-nil value among a list of keys
//   - Value: "a|b|c" alias lists with first-letter case toggling and
//     optional lower-case and capitalized variants
//   - String, Bool, Float: typed lookups with lenient conversions
package options
