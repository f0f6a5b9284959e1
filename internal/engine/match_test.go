package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/selection"
	"github.com/roach88/crimpfit/internal/store"
	"github.com/roach88/crimpfit/internal/testutil"
)

func exampleCriteria() selection.Criteria {
	return selection.Criteria{
		Material:      catalog.Copper,
		Class:         "Class 2",
		ConnectorType: catalog.TypeCableLug,
		CrossSection:  catalog.Of(16),
		StudHole:      catalog.Of(8),
	}
}

func partNumbers(cs []catalog.Connector) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.PartNumber)
	}
	return out
}

func skus(ts []catalog.Tool) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.SKU)
	}
	return out
}

// mixedStore covers every predicate dimension.
func mixedStore(t *testing.T) *store.Store {
	t.Helper()
	return testutil.NewStore(t, []testutil.Connector{
		{PartNumber: "L-CU-16-8", Material: "CU", Kind: "Cable Lug", CrossSection: "16", StudHole: "8",
			Classes: []string{"Class 2", "Class 5"}, Series: []string{"K50 Serie", "K5"}},
		{PartNumber: "L-CUAL-16-8", Material: "CU, AL", Kind: "cable lug", CrossSection: "16", StudHole: "8",
			Classes: []string{"Class 2"}, Series: []string{"K22 Serie"}},
		{PartNumber: "L-AL-25-10", Material: "AL", Kind: "Cable Lug", CrossSection: "25", StudHole: "10",
			Classes: []string{"Class 1", "Class 2"}, Series: []string{"K4 serie"}},
		{PartNumber: "C-CU-16", Material: "Cu", Kind: "Connector", CrossSection: "16",
			Classes: []string{"Class 2"}, Series: []string{"K13 Serie"}},
		{PartNumber: "C-CU-1.5", Material: "CU", Kind: "Connector", CrossSection: "1.5mm",
			Classes: []string{"Class 5", "Class 6"}, Series: []string{"K2"}},
		{PartNumber: "F-CU-1.5", Material: "CU tinned", Kind: "Wire Ferrule", CrossSection: "1.5", StudHole: "6",
			Classes: []string{"Class 5"}, Series: []string{"EK60VP"}},
		{PartNumber: "X-CUPRO", Material: "CUPRO", Kind: "Cable Lug", CrossSection: "16", StudHole: "8",
			Classes: []string{"Class 2"}, Series: []string{"K50 Serie"}},
		{PartNumber: "L-NOCS", Material: "CU", Kind: "Cable Lug", CrossSection: "n/a", StudHole: "8",
			Classes: []string{"Class 2"}, Series: []string{"K50 Serie"}},
	}, []testutil.Tool{
		{SKU: "T-K50", ProductName: "Hydraulic crimper", Series: "K50/K4"},
		{SKU: "T-K22", ProductName: "Hand crimper", Series: "K22"},
		{SKU: "T-K13", ProductName: "Hand crimper small", Series: "K13, K15"},
		{SKU: "T-EK", ProductName: "Ferrule press", Series: "EK60VPFT"},
		{SKU: "T-BLANK", ProductName: "Unknown", Series: ""},
	})
}

func TestMatchConnectors_SpecExample(t *testing.T) {
	st := testutil.ExampleStore(t)

	matches := MatchConnectors(st, exampleCriteria())
	assert.Equal(t, []string{"A"}, partNumbers(matches))

	tools := MatchTools(matches, st)
	assert.Equal(t, []string{"T1"}, skus(tools))
}

func TestMatchConnectors_ExactlyThePredicate(t *testing.T) {
	st := mixedStore(t)

	for _, m := range catalog.Materials {
		for _, class := range catalog.DefaultClasses {
			for _, ct := range catalog.ConnectorTypes {
				for _, cs := range append(st.CrossSections(), 99) {
					for _, sh := range append(st.StudHoles(), 99) {
						cr := selection.Criteria{
							Material: m, Class: class, ConnectorType: ct,
							CrossSection: catalog.Of(cs), StudHole: catalog.Of(sh),
						}
						got := MatchConnectors(st, cr)
						in := make(map[string]bool, len(got))
						for _, c := range got {
							require.True(t, Matches(c, cr), "%s returned for %+v", c.PartNumber, cr)
							in[c.PartNumber] = true
						}
						for _, c := range st.Connectors() {
							if !in[c.PartNumber] {
								require.False(t, Matches(c, cr), "%s missing for %+v", c.PartNumber, cr)
							}
						}
					}
				}
			}
		}
	}
}

func TestMatchConnectors_Predicate(t *testing.T) {
	st := mixedStore(t)

	tests := []struct {
		name   string
		mutate func(*selection.Criteria)
		want   []string
	}{
		{"copper lug 16/8", func(*selection.Criteria) {}, []string{"L-CU-16-8", "L-CUAL-16-8"}},
		{"aluminium token in list", func(c *selection.Criteria) { c.Material = catalog.Aluminium }, []string{"L-CUAL-16-8"}},
		{"class filters", func(c *selection.Criteria) { c.Class = "Class 5" }, []string{"L-CU-16-8"}},
		{"stud hole filters lugs", func(c *selection.Criteria) { c.StudHole = catalog.Of(10) }, nil},
		{"connector ignores stud hole", func(c *selection.Criteria) {
			c.ConnectorType = catalog.TypeConnector
			c.StudHole = catalog.Of(99)
		}, []string{"C-CU-16"}},
		{"cross section prefix parsed", func(c *selection.Criteria) {
			c.ConnectorType = catalog.TypeConnector
			c.Class = "Class 6"
			c.CrossSection = catalog.Of(1.5)
		}, []string{"C-CU-1.5"}},
		{"ferrule material token", func(c *selection.Criteria) {
			c.ConnectorType = catalog.TypeWireFerrule
			c.Class = "Class 5"
			c.CrossSection = catalog.Of(1.5)
		}, []string{"F-CU-1.5"}},
		{"absent cross section matches nothing", func(c *selection.Criteria) { c.CrossSection = catalog.Measure{} }, nil},
		{"absent stud hole matches no lug", func(c *selection.Criteria) { c.StudHole = catalog.Measure{} }, nil},
		{"invalid material matches nothing", func(c *selection.Criteria) { c.Material = "Gold" }, nil},
		{"empty class matches nothing", func(c *selection.Criteria) { c.Class = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := exampleCriteria()
			tt.mutate(&cr)
			got := MatchConnectors(st, cr)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, partNumbers(got))
		})
	}
}

func TestMatchConnectors_EmptyStore(t *testing.T) {
	st := store.Empty(catalog.DefaultSchema())
	assert.Empty(t, MatchConnectors(st, exampleCriteria()))
	assert.Empty(t, CrossSections(st))
	assert.Empty(t, StudHoles(st))
}

func TestCrossSections_DistinctAscending(t *testing.T) {
	var conns []testutil.Connector
	for i, cs := range []string{"16", "25", "abc", "16"} {
		conns = append(conns, testutil.Connector{
			PartNumber: string(rune('a' + i)), Material: "CU", Kind: "Connector", CrossSection: cs,
		})
	}
	st := testutil.NewStore(t, conns, nil)

	assert.Equal(t, []float64{16, 25}, CrossSections(st))
}

func TestSeriesOf(t *testing.T) {
	st := mixedStore(t)

	c, ok := st.Connector("L-CU-16-8")
	require.True(t, ok)
	assert.Equal(t, []catalog.SeriesCode{"K50 Serie", "K5"}, SeriesOf(c))

	got := SeriesOf(c)
	got[0] = "changed"
	assert.Equal(t, catalog.SeriesCode("K50 Serie"), c.Series[0], "SeriesOf returns a copy")
}

func TestNormalizeSeries(t *testing.T) {
	assert.Equal(t, "K50", NormalizeSeries("K50 Serie"))
	assert.Equal(t, "K50", NormalizeSeries("K50 serie"))
	assert.Equal(t, NormalizeSeries("K50 Serie"), NormalizeSeries("K50 serie"))
	assert.Equal(t, "K4", NormalizeSeries("K4 SERIE"))
	assert.Equal(t, "K5", NormalizeSeries("K5"))
	assert.Equal(t, "Serie K5", NormalizeSeries("Serie K5"), "only a trailing suffix is stripped")
	assert.Equal(t, "K50Serie", NormalizeSeries("K50Serie"), "suffix needs its leading space")
}

func TestMatchTools_EmptyConnectors(t *testing.T) {
	st := mixedStore(t)
	assert.Empty(t, MatchTools(nil, st))
	assert.Empty(t, MatchTools([]catalog.Connector{}, st))
}

func TestMatchTools_Union(t *testing.T) {
	st := mixedStore(t)
	a, _ := st.Connector("L-CUAL-16-8")
	b, _ := st.Connector("C-CU-16")

	tools := MatchTools([]catalog.Connector{a, b}, st)
	assert.Equal(t, []string{"T-K22", "T-K13"}, skus(tools), "catalog order")
}

func TestMatchTools_SubstringContainment(t *testing.T) {
	st := mixedStore(t)

	// EK60VP is contained in EK60VPFT.
	f, _ := st.Connector("F-CU-1.5")
	assert.Equal(t, []string{"T-EK"}, skus(MatchTools([]catalog.Connector{f}, st)))

	// K2 is contained in K22.
	c, _ := st.Connector("C-CU-1.5")
	assert.Equal(t, []string{"T-K22"}, skus(MatchTools([]catalog.Connector{c}, st)))
}

func TestMatchTools_CaseSensitive(t *testing.T) {
	st := testutil.NewStore(t,
		[]testutil.Connector{{PartNumber: "A", Material: "CU", Kind: "Connector", CrossSection: "16", Series: []string{"K50 Serie"}}},
		[]testutil.Tool{{SKU: "lower", Series: "k50"}, {SKU: "upper", Series: "K50"}},
	)
	a, _ := st.Connector("A")
	assert.Equal(t, []string{"upper"}, skus(MatchTools([]catalog.Connector{a}, st)))
}

func TestMatchTools_NoSeriesFlags(t *testing.T) {
	st := testutil.ExampleStore(t)
	b, _ := st.Connector("B")
	assert.Empty(t, MatchTools([]catalog.Connector{b}, st))
}

func TestNarrowToolsByConnector(t *testing.T) {
	st := mixedStore(t)
	c, _ := st.Connector("L-CU-16-8")

	assert.Equal(t, MatchTools([]catalog.Connector{c}, st), NarrowToolsByConnector(c, st))
	assert.Equal(t, []string{"T-K50"}, skus(NarrowToolsByConnector(c, st)))
}

func TestNarrowConnectorsByTool(t *testing.T) {
	st := mixedStore(t)
	cr := exampleCriteria()

	k22, _ := st.Tool("T-K22")
	assert.Equal(t, []string{"L-CUAL-16-8"}, partNumbers(NarrowConnectorsByTool(k22, st, cr)))

	k50, _ := st.Tool("T-K50")
	assert.Equal(t, []string{"L-CU-16-8"}, partNumbers(NarrowConnectorsByTool(k50, st, cr)))

	ek, _ := st.Tool("T-EK")
	assert.Empty(t, NarrowConnectorsByTool(ek, st, cr))
}

func TestNarrowConnectorsByTool_BlankSeriesDoesNotNarrow(t *testing.T) {
	st := mixedStore(t)
	cr := exampleCriteria()

	blank, _ := st.Tool("T-BLANK")
	assert.Equal(t, MatchConnectors(st, cr), NarrowConnectorsByTool(blank, st, cr))
}

func TestNarrowConnectorsByTool_SubsetOfMatches(t *testing.T) {
	st := mixedStore(t)
	cr := exampleCriteria()
	matches := partNumbers(MatchConnectors(st, cr))

	for _, tool := range st.Tools() {
		for _, pn := range partNumbers(NarrowConnectorsByTool(tool, st, cr)) {
			assert.Contains(t, matches, pn, "tool %s", tool.SKU)
		}
	}
}
