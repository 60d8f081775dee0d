// Package dom provides a small in-memory HTML document model used as the
// element side of field synchronization.
//
// It is backed by golang.org/x/net/html and exposes the handful of
// element operations a synchronizer needs:
//   - Element lookup by id and label relation (<label for="...">)
//   - Parent / element-children / sibling navigation
//   - The native value slot of input and textarea elements
//   - innerHTML read and write (fragments are parsed in the element context)
//   - Attribute helpers with unit suffixes for length and angle attributes
//
// Element wrappers are cached per document, so the same node always yields
// the same *Element and wrappers can be compared with ==.
package dom
