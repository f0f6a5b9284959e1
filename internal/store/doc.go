// Package store holds the parsed connector and tool catalogs.
//
// A Store is built once from tabular rows and is immutable afterwards, so it
// is safe to share between goroutines without locking.
//
// # Loading Rules
//
//   - Rows whose cells are all blank are dropped silently
//   - Rows without an id (part number or SKU) are dropped with a warning
//   - Duplicate ids keep the first row and warn about the rest
//   - Numeric cells that do not parse are absent Measures, never errors
//   - Columns are checked against the catalog schema: unknown columns,
//     unknown conductor classes and missing series columns are warnings
//
// Nothing about a single row aborts a load. Only I/O and CSV framing
// failures are errors.
//
// # Derived Values
//
// CrossSections and StudHoles return the distinct parsed values present in
// the connector catalog, ascending. They drive the two range inputs of a
// presentation adapter, so their order and cardinality are part of the
// contract.
package store
