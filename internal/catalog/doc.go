// Package catalog defines the record types shared by every other package:
// connectors, tools, the series and conductor-class codes that link them,
// and the selection enums (material, connector type).
//
// This package contains types and small value helpers only. All other
// internal packages import catalog; catalog imports nothing internal.
//
// Key constraints:
//   - Numeric catalog fields are Measures: a parse failure is an absent
//     value, never an error
//   - Series and class flags are typed codes validated against a Schema,
//     not free-form column lookups
//   - All JSON tags use snake_case
package catalog
