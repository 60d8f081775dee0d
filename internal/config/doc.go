// Package config loads synchronizer configurations from YAML.
//
// It is the only place where alias keys of configuration objects
// are accepted ("at" for "applyTo", "vars" for "variables", "sufix" for
// "suffix", ...). Files are parsed into canonical types, defaults are
// applied, and Build turns them into a synchronizer.Synchronizer.
//
// Key capabilities:
//   - Alias-tolerant parsing with first-letter and lower-case key variants
//   - Updatables given as a string, a list or an {id, selector, field} object
//   - Variables given as a map or as a list of pairs or named descriptors
//   - Validation against an optional document with coded diagnostics
package config
