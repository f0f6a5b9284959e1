// Package engine implements connector and tool compatibility matching.
//
// The matching functions are pure: they read an immutable store.Store and a
// selection.Criteria snapshot and return new slices in catalog order. They
// never fail; a criterion with no valid value simply matches nothing.
//
// MATCHING:
//
// A connector matches when all of these hold:
//   - its flag for the selected conductor class is set
//   - a token of its connecting material equals the material abbreviation
//     (CU, AL), ignoring case
//   - its kind of connection equals the connector type, ignoring case
//   - its parsed cross section equals the selected cross section
//   - for Cable Lug only, its parsed stud hole equals the selected stud hole
//
// A tool matches a set of connectors when its series text contains at least
// one normalised series code flagged on any of them. Containment is a plain
// substring test, so a K50 tool also matches K5 connectors; OverlappingSeries
// reports every such pair in a schema.
//
// SESSION:
//
// Session combines a store with a selection.State and evaluates the result
// lists under the pin state:
//
//	none:      connectors = MatchConnectors, tools = MatchTools(connectors)
//	connector: connectors = MatchConnectors, tools = NarrowToolsByConnector
//	tool:      connectors = NarrowConnectorsByTool, tools = MatchTools(matches)
//
// A Session is owned by one goroutine.
package engine
