// Package harness runs crimpfit conformance scenarios.
//
// A scenario declares a small catalog, an initial selection and a list of
// steps. Each step drives an engine.Session the way an adapter would, and
// the evaluated result after every step is recorded in a trace. Traces are
// compared against golden files; expectations and assertions check them.
//
// # Scenario Format
//
//	name: pin_connector_narrows_tools
//	description: "Pinning a connector narrows tools to its series"
//	config: catalog.cue          # optional, relative to the scenario
//	catalog:
//	  connectors:
//	    - part: A
//	      material: CU
//	      kind: Cable Lug
//	      cross_section: "16"
//	      stud_hole: "8"
//	      classes: [Class 2]
//	      series: [K50 Serie]
//	  tools:
//	    - sku: T1
//	      series: K50/K4
//	defaults:
//	  stud_hole: 8
//	steps:
//	  - pin_connector: A
//	    expect:
//	      tools: [T1]
//	      pin: connector
//	  - set_stud_hole: 10
//	    expect: { pin: none }
//	assertions:
//	  - type: trace_contains
//	    tool: T1
//
// A catalog may instead name CSV files with connectors_csv and tools_csv.
//
// # Step Actions
//
// Each step carries at most one action: set_material, set_class, set_type,
// set_cross_section, set_stud_hole, pin_connector, pin_tool, unpin, reopen,
// search_connectors, search_tools. A step without an action only checks
// its expect clause. expect_error names the error code the action must
// fail with.
//
// # Assertion Types
//
//   - final: the last evaluation has the given connectors, tools and pin
//   - trace_contains: a connector or tool appears in some step's results
//   - trace_order: actions ran in the given order
//   - trace_count: an action ran exactly N times
package harness
