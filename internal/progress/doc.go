// Package progress models an editable progress bar whose value is a
// percentage in [0, 100].
//
// The bar color is chosen from color intervals, either an evenly split
// color list or explicit min/max ranges, and falls back to a fixed color or
// a color function. Committing an edit pushes the new value through an
// attached synchronizer.Synchronizer (the Progress is its field) and then
// notifies change listeners.
//
// A Progress can be bound to a dom.Element; the element then holds a bar
// child sized and colored after the value and a label child showing it.
package progress
