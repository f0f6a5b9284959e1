package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimpfit/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommand_FixtureCatalog(t *testing.T) {
	out, err := execute(t, NewValidateCommand(testOptions("text")))
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Catalog config valid (testdata/catalog.cue)")
	assert.Contains(t, out, "✓ Catalogs loaded: 4 connectors, 3 tools")
	assert.NotContains(t, out, "warning")
}

func TestValidateCommand_DefaultConfigWarnsOnOverlap(t *testing.T) {
	opts := testOptions("json")
	opts.CatalogConfig = ""

	out, err := execute(t, NewValidateCommand(opts), "--config-only")
	require.NoError(t, err, "overlap warnings do not fail validation")

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, config.DefaultSource, resp.Data.Source)
	assert.Nil(t, resp.Data.Report, "config-only skips the catalogs")

	var codes []string
	for _, w := range resp.Data.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, config.WarnOverlappingSeries)
}

func TestValidateCommand_ValidationErrors(t *testing.T) {
	opts := testOptions("text")
	opts.CatalogConfig = writeConfig(t, `
series: ["K50 Serie", "K50 Serie"]
classes: ["Class 2"]
`)

	out, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, config.ErrDuplicateSeries)
}

func TestValidateCommand_ValidationErrorsJSON(t *testing.T) {
	opts := testOptions("json")
	opts.CatalogConfig = writeConfig(t, `
series: ["K50 Serie"]
classes: ["Class 5"]
`)

	out, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, config.ErrDefaultClassMissing, resp.Error.Code)
}

func TestValidateCommand_CompileError(t *testing.T) {
	opts := testOptions("text")
	opts.CatalogConfig = writeConfig(t, `series: ["K50 Serie"`)

	out, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeConfigInvalid)
}

func TestValidateCommand_MissingConfig(t *testing.T) {
	opts := testOptions("text")
	opts.CatalogConfig = "testdata/missing.cue"

	out, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestValidateCommand_MissingCatalog(t *testing.T) {
	opts := testOptions("text")
	opts.Connectors = "testdata/missing.csv"

	_, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// config-only never reads the catalogs
	_, err = execute(t, NewValidateCommand(opts), "--config-only")
	require.NoError(t, err)
}

func TestValidateCommand_PaddedMarker(t *testing.T) {
	opts := testOptions("text")
	opts.CatalogConfig = writeConfig(t, `
series: ["K50 Serie"]
classes: ["Class 2"]
marker: " x"
`)

	out, err := execute(t, NewValidateCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, config.ErrMarkerWhitespace+": marker:")
}
