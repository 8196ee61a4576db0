// Package pkg provides the core libraries for dockpane, a docking layout
// engine.
//
// # Overview
//
// A dock family is a set of panels arranged around a root surface. Panels
// dock to a side of another panel, stack as tabs in a group, run along the
// root's outer edge, or float above everything. The pkg directory is
// organized into these areas:
//
//  1. [geom] - Points and rectangles in screen coordinates
//  2. [dock] - The family, its dock tree, tab groups and layout passes
//  3. [drag] - Drop zones and the drag state machine for moving panels
//  4. [persist] - Snapshots of a family and the key/value adapter for them
//  5. [store] - File, Redis and MongoDB key/value backends
//  6. [render] - Node-link and wireframe drawings of a family
//  7. [config], [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
//	    host events (mouse, resize)
//	             ↓
//	    [drag] package (hit-test, drop zones, splitter drags)
//	             ↓
//	    [dock] package (dock/undock/merge, ratios, layout pass)
//	             ↓
//	    dock.Host.ApplyLayout ←→ [persist] snapshot ←→ [store]
//
// # Quick Start
//
// Build a family, dock two panels and save the layout:
//
//	f := dock.New(geom.R(0, 0, 1280, 800))
//	_ = f.AddDockedChild(dock.RootID, dock.NewNode(1, "Files", nil), dock.DockedLeft, 240)
//	_ = f.AddDockedChild(dock.RootID, dock.NewNode(2, "Output", nil), dock.DockedBottommost, 200)
//	snap := persist.Save(f)
//	_ = persist.WriteFile("layout.json", snap)
//
// # Observability
//
// Register hooks with [observability] to receive dock, drag, store and HTTP
// events; internal/telemetry turns them into OpenTelemetry spans.
package pkg
