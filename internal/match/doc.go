// Package match provides name normalization, Levenshtein distance and
// "did you mean" suggestions for configuration keys and variable names.
//
// Key functions:
//   - NormalizeIdent: folds case and strips separators ("apply_to" == "applyTo")
//   - Levenshtein: rune-wise edit distance between strings
//   - Similarity: normalized similarity score in [0, 1]
//   - Rank / Suggest: rank known names against an unknown one
package match
