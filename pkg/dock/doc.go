// Package dock implements a dockable-panel layout model.
//
// A [Family] is an arena of [Node] values indexed by [ID]. One node, the
// family root (ID [RootID]), covers the host window; every other node is
// either docked under a parent along one [Side], grouped as a tab of another
// node's [Group], or floating as an independent top-level panel. Parent,
// ancestor and group links are stored as IDs, so moving a subtree never
// leaves a dangling reference behind.
//
// # Layout
//
// Docked children carry a size ratio relative to their parent's extent.
// [Family.Layout] walks each top-level tree depth-first, slicing the
// parent's rectangle child by child in insertion order. Every child claims a
// strip plus a splitter strip; what remains is the parent's content area.
// Placements for a pass are collected first and handed to the [Host] in one
// batch.
//
// # Operations
//
// The mutating operations ([Family.Dock], [Family.DockOuter],
// [Family.Undock], [Family.DockInContainer], [Family.UndockContainer],
// [Family.Hide], [Family.Close]) either complete and relayout, or return an
// error and leave the tree untouched. Undocking a node that has children
// promotes its first child into the vacated slot, so subtrees are never
// orphaned.
//
// # Diagnostics
//
// [Family.VerifyDockers] checks the structural invariants and returns every
// violation it finds. Tests call it after each step.
//
// A Family is not safe for concurrent use. All calls are expected to come
// from the goroutine that handles host input events.
package dock
