// Package config loads the catalog configuration and the runtime settings.
//
// The catalog configuration is written in CUE and unified with an embedded
// #Catalog schema, so typos and out-of-range values are rejected with a
// file position before any catalog is read. It declares:
//
//	series:            the series code catalog, in column order
//	classes:           the conductor classes on offer
//	marker:            the cell value that sets a flag (default "x")
//	placeholder_image: image shown for records without one
//	defaults:          the initial selection
//
// When no file is given the embedded default.cue is used; it matches the
// shipped data files.
//
// Runtime settings (catalog paths, logging) come from flags, CRIMPFIT_*
// environment variables and an optional crimpfit.yaml via viper.
package config
