// Package diagnostic collects coded warnings and errors produced while
// validating synchronizer configurations.
//
// Key capabilities:
//   - Unknown variable reports with "did you mean" suggestions
//   - Unresolvable or unsupported target warnings
//   - Aggregation of error diagnostics into a single error (multierr)
package diagnostic
