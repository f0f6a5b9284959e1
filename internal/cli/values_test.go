package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesCommand_Text(t *testing.T) {
	out, err := execute(t, NewValuesCommand(testOptions("text")))
	require.NoError(t, err)

	assert.Contains(t, out, "4 connectors, 3 tools")
	assert.Contains(t, out, "Copper, Aluminium")
	assert.Contains(t, out, "Class 2, Class 5")
	assert.Contains(t, out, "Cable Lug, Connector, Wire Ferrule")
	assert.Contains(t, out, "16, 25")
	assert.Contains(t, out, "8, 10")
}

func TestValuesCommand_JSON(t *testing.T) {
	out, err := execute(t, NewValuesCommand(testOptions("json")))
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ValuesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []float64{16, 25}, resp.Data.CrossSections)
	assert.Equal(t, []float64{8, 10}, resp.Data.StudHoles)
	assert.Equal(t, 4, resp.Data.Connectors)
	assert.Equal(t, 3, resp.Data.Tools)
}

func TestValuesCommand_MissingCatalog(t *testing.T) {
	opts := testOptions("json")
	opts.Tools = "testdata/missing.csv"

	out, err := execute(t, NewValuesCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "missing.csv")
}

func TestJoinFloats(t *testing.T) {
	assert.Equal(t, "-", joinFloats(nil))
	assert.Equal(t, "1.5, 16", joinFloats([]float64{1.5, 16}))
}
