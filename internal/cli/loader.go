package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/crimpfit/internal/config"
	"github.com/roach88/crimpfit/internal/selection"
	"github.com/roach88/crimpfit/internal/store"
)

// LoadResult contains a loaded catalog configuration and record store.
type LoadResult struct {
	Config *config.Config
	Store  *store.Store
	Report *store.LoadReport
}

// LoadError represents an error that occurred while loading the catalog.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadConfig compiles the catalog configuration named by the options.
func LoadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.CatalogConfig != "" {
		if _, err := os.Stat(opts.CatalogConfig); errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog config not found: %s", opts.CatalogConfig), Err: err}
		}
	}
	cfg, err := config.Load(opts.CatalogConfig)
	if err != nil {
		var compileErr *config.CompileError
		if errors.As(err, &compileErr) {
			return nil, &LoadError{Code: ErrCodeConfigInvalid, Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message), Pos: compileErr.Pos, Err: err}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// LoadCatalog compiles and checks the catalog configuration and reads both
// catalogs. A configuration with validation errors is rejected. Row-level
// problems are reported in LoadResult.Report, not as errors.
func LoadCatalog(ctx context.Context, opts *RootOptions) (*LoadResult, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := config.Check(cfg); err != nil {
		return nil, &LoadError{Code: ErrCodeConfigInvalid, Message: err.Error(), Err: err}
	}

	for _, path := range []string{opts.Connectors, opts.Tools} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog not found: %s", path), Err: err}
		}
	}

	st, report, err := store.LoadFiles(ctx, opts.Connectors, opts.Tools, cfg.Schema())
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error(), Err: err}
	}

	opts.log().Debug("catalog loaded",
		"connectors", report.Connectors,
		"tools", report.Tools,
		"dropped", report.Dropped,
		"warnings", len(report.Warnings),
		"fingerprint", st.Fingerprint())

	return &LoadResult{Config: cfg, Store: st, Report: report}, nil
}

// NewState builds the initial selection for a loaded catalog.
func (r *LoadResult) NewState() (*selection.State, error) {
	return selection.New(r.Config.SelectionDefaults(), selection.DomainOf(r.Store))
}

// Error code constants - unified across all CLI commands.
// Selection and engine errors keep their own codes (S001-S006, NOT_IN_RESULTS).
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E002" // Catalog or config file not found
	ErrCodeLoadFailed    = "E003" // Catalog CSV could not be read
	ErrCodeConfigInvalid = "E004" // Catalog config failed to compile
	ErrCodeInvalidFlag   = "E005" // Flag value could not be parsed
	ErrCodeTestFailed    = "E_TEST_FAILED"
)
