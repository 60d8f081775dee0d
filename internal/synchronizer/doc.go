// Package synchronizer propagates the value of a field into dependent
// targets.
//
// A Synchronizer holds a field (the value source), an ordered list of
// targets and a map of named variables. Process reads the field and, for
// every target in order:
//
//  1. Calls the target's Action, if any, and moves on.
//  2. Resolves the target's Updatable into a destination handle: a relative
//     lookup ("[[label]]", "[[next-sibling]]", ...) from the field element,
//     an element id, a selector function or a direct handle.
//  3. Renders the output. A Text template substitutes "{{name}}" spans from
//     the merged variables ("this" is the field value). Otherwise a Prefix
//     and/or Suffix is wrapped around the field value. With neither, nothing
//     is written.
//  4. Writes the output through the first destination capability that
//     matches: element value slot or innerHTML, named field, named setter
//     method, SetValue/Value/Val setters, or a Value property.
//
// # Field values
//
// The default field resolver probes, in this fixed order, GetValue() any,
// Val() any, Value() any and finally the value property (element value
// slot, map key "value" or struct field Value).
//
// # Errors
//
// The first failing target aborts the pass and is returned as a
// *TargetError wrapping one of ErrInvalidArgument, ErrNotFound,
// ErrUnsupportedOperation or ErrNotYetSupported.
//
// # Configuration
//
// Configuration is an immutable snapshot: setters build a new snapshot and
// swap it atomically, so a pass always sees one consistent configuration.
package synchronizer
