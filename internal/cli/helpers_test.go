package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

const (
	testConnectors = "testdata/connectors.csv"
	testTools      = "testdata/tools.csv"
	testConfig     = "testdata/catalog.cue"
)

// testOptions points at the reduced test catalog.
func testOptions(format string) *RootOptions {
	return &RootOptions{
		Format:        format,
		Connectors:    testConnectors,
		Tools:         testTools,
		CatalogConfig: testConfig,
	}
}

// execute runs a subcommand and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
