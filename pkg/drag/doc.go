// Package drag drives interactive gestures against a dock family.
//
// A [Controller] runs at most one gesture at a time. Dock drags move a
// panel with the pointer, hit-test drop zones on every move and dock the
// panel on release; splitter drags resize a docked panel. Each gesture is
// an explicit [Session] or [SplitterSession] value that the host passes
// back on every pointer event, from press to release.
//
// Drop zones are evaluated in a fixed order and the first that claims the
// pointer wins:
//
//  1. center: merge into the target's tab group
//  2. inner left, top, right, bottom: dock beside the target's content
//  3. outer left, top, right, bottom: dock against the family root's edge
//
// While a zone is claimed a preview overlay shows where the panel would
// land. The overlay is rebuilt whenever the zone or target changes.
package drag
