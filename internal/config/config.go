package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/selection"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default.cue
var defaultCUE string

// DefaultSource names the embedded configuration in errors and output.
const DefaultSource = "<default>"

// Config is the compiled catalog configuration.
type Config struct {
	Series           []catalog.SeriesCode     `json:"series"`
	Classes          []catalog.ConductorClass `json:"classes"`
	Marker           string                   `json:"marker"`
	PlaceholderImage string                   `json:"placeholder_image"`
	Defaults         Defaults                 `json:"defaults"`

	// Source is the file the configuration was read from.
	Source string `json:"-"`
}

// Defaults is the initial selection declared by the configuration.
type Defaults struct {
	Material      string   `json:"material"`
	Class         string   `json:"class"`
	ConnectorType string   `json:"connector_type"`
	CrossSection  *float64 `json:"cross_section,omitempty"`
	StudHole      *float64 `json:"stud_hole,omitempty"`
}

// Schema returns the catalog schema described by the configuration.
func (c *Config) Schema() catalog.Schema {
	return catalog.Schema{
		Series:           append([]catalog.SeriesCode(nil), c.Series...),
		Classes:          append([]catalog.ConductorClass(nil), c.Classes...),
		Marker:           c.Marker,
		PlaceholderImage: c.PlaceholderImage,
	}
}

// SelectionDefaults converts the declared defaults for selection.New.
func (c *Config) SelectionDefaults() selection.Defaults {
	return selection.Defaults{
		Material:      c.Defaults.Material,
		Class:         c.Defaults.Class,
		ConnectorType: c.Defaults.ConnectorType,
		CrossSection:  c.Defaults.CrossSection,
		StudHole:      c.Defaults.StudHole,
	}
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Compile(DefaultSource, []byte(defaultCUE))
}

// Load reads a CUE configuration file. An empty path loads the embedded
// default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config: %w", err)
	}
	return Compile(path, data)
}

// Compile unifies CUE source with the #Catalog schema and decodes it.
// Uses CUE SDK's Go API directly (not CLI subprocess).
func Compile(filename string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("embedded schema: %w", err)
	}

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := &Config{Source: filename}
	if err := v.Decode(cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return cfg, nil
}
