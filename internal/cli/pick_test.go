package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPickModel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	m, err := newPickModel(cmd, testOptions("text"))
	require.NoError(t, err)

	r := m.Result()
	require.Len(t, r.Connectors, 1)
	assert.Equal(t, "A", r.Connectors[0].PartNumber)
	require.Len(t, r.Tools, 1)
	assert.Equal(t, "T1", r.Tools[0].SKU)
}

func TestNewPickModel_LoadFailureShowsErrorView(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())
	opts := testOptions("text")
	opts.Connectors = "testdata/missing.csv"

	m, err := newPickModel(cmd, opts)
	require.NoError(t, err)
	assert.Contains(t, m.View(), "Catalog could not be loaded")
	assert.Contains(t, m.View(), "missing.csv")
}
