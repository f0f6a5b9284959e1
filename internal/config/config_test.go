package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/selection"
)

func TestDefault_MatchesBuiltinSchema(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, catalog.DefaultSchema(), cfg.Schema())
	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Equal(t, "assets/no_product_image.png", cfg.PlaceholderImage)
	assert.Equal(t, selection.DefaultDefaults(), cfg.SelectionDefaults())
}

func TestCompile_AppliesDefaults(t *testing.T) {
	cfg, err := Compile("min.cue", []byte(`
series: ["K50 Serie"]
classes: ["Class 2"]
`))
	require.NoError(t, err)

	assert.Equal(t, "x", cfg.Marker)
	assert.Equal(t, "Copper", cfg.Defaults.Material)
	assert.Equal(t, "Class 2", cfg.Defaults.Class)
	assert.Equal(t, "Cable Lug", cfg.Defaults.ConnectorType)
	assert.Nil(t, cfg.Defaults.CrossSection)
	assert.Nil(t, cfg.Defaults.StudHole)
}

func TestCompile_ExplicitValues(t *testing.T) {
	cfg, err := Compile("full.cue", []byte(`
series: ["K50 Serie", "K4 serie"]
classes: ["Class 5", "Class 6"]
marker: "X"
placeholder_image: "img/none.png"
defaults: {
	material: "Aluminium"
	class: "Class 5"
	connector_type: "Wire Ferrule"
	cross_section: 1.5
	stud_hole: 8
}
`))
	require.NoError(t, err)

	assert.Equal(t, []catalog.SeriesCode{"K50 Serie", "K4 serie"}, cfg.Series)
	assert.Equal(t, "X", cfg.Schema().Marker)
	assert.Equal(t, "img/none.png", cfg.Schema().PlaceholderImage)
	require.NotNil(t, cfg.Defaults.CrossSection)
	assert.Equal(t, 1.5, *cfg.Defaults.CrossSection)
	require.NotNil(t, cfg.Defaults.StudHole)
	assert.Equal(t, 8.0, *cfg.Defaults.StudHole)

	d := cfg.SelectionDefaults()
	assert.Equal(t, "Aluminium", d.Material)
	assert.Equal(t, "Wire Ferrule", d.ConnectorType)
}

func TestCompile_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `series: [`},
		{"empty series", `series: [], classes: ["Class 2"]`},
		{"bad class", `series: ["K5"], classes: ["Klasse 2"]`},
		{"unknown field", `series: ["K5"], classes: ["Class 2"], colour: "red"`},
		{"bad material", `series: ["K5"], classes: ["Class 2"], defaults: material: "Gold"`},
		{"empty marker", `series: ["K5"], classes: ["Class 2"], marker: ""`},
		{"negative cross section", `series: ["K5"], classes: ["Class 2"], defaults: cross_section: -1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("bad.cue", []byte(tt.src))
			require.Error(t, err)
			var ce *CompileError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestCompileError_Position(t *testing.T) {
	_, err := Compile("pos.cue", []byte("series: [\"K5\"]\nclasses: [\"Class 2\"]\nmarker: 42\n"))
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "marker")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.cue")
	require.NoError(t, os.WriteFile(path, []byte(`series: ["K5"], classes: ["Class 2"]`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, []catalog.SeriesCode{"K5"}, cfg.Series)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSource, cfg.Source)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
