package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassFromColumn(t *testing.T) {
	class, ok := ClassFromColumn("Cable Class 2")
	require.True(t, ok)
	assert.Equal(t, ConductorClass("Class 2"), class)
	assert.Equal(t, "Cable Class 2", class.Column())

	_, ok = ClassFromColumn("Cable Class two")
	assert.False(t, ok)
	_, ok = ClassFromColumn("K50 Serie")
	assert.False(t, ok)
}

func TestFindClass(t *testing.T) {
	class, ok := FindClass("Class 2Multi-Stranded")
	require.True(t, ok)
	assert.Equal(t, ConductorClass("Class 2"), class)

	_, ok = FindClass("Multi-Stranded")
	assert.False(t, ok)
}

func TestMaterialTokens(t *testing.T) {
	c := Connector{Material: "CU, AL"}
	assert.Equal(t, []string{"CU", "AL"}, c.MaterialTokens())

	c = Connector{Material: " cu  al,, "}
	assert.Equal(t, []string{"cu", "al"}, c.MaterialTokens())

	c = Connector{}
	assert.Empty(t, c.MaterialTokens())
}

func TestConnectorFlags(t *testing.T) {
	c := Connector{
		Classes: []ConductorClass{"Class 2"},
		Series:  []SeriesCode{"K50 Serie", "K5"},
	}
	assert.True(t, c.HasClass("Class 2"))
	assert.False(t, c.HasClass("Class 5"))
	assert.True(t, c.HasSeries("K5"))
	assert.False(t, c.HasSeries("K50"))
}

func TestParseMaterial(t *testing.T) {
	for in, want := range map[string]Material{
		"Copper":    Copper,
		"copper":    Copper,
		"CU":        Copper,
		"Aluminium": Aluminium,
		" al ":      Aluminium,
	} {
		got, err := ParseMaterial(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMaterial("Steel")
	assert.Error(t, err)
	assert.Equal(t, "CU", Copper.Abbreviation())
	assert.Equal(t, "AL", Aluminium.Abbreviation())
	assert.False(t, Material("Steel").Valid())
}

func TestParseConnectorType(t *testing.T) {
	got, err := ParseConnectorType("cable lug")
	require.NoError(t, err)
	assert.Equal(t, TypeCableLug, got)
	assert.True(t, got.UsesStudHole())
	assert.False(t, TypeWireFerrule.UsesStudHole())

	_, err = ParseConnectorType("Splice")
	assert.Error(t, err)
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Cable Lug", "CABLE LUG"))
	assert.True(t, EqualFold("cu", "CU"))
	assert.False(t, EqualFold("CU", "AL"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "Part No.", NormalizeHeader("\ufeffPart No. "))
	// "e" + combining acute composes to a single rune under NFC
	assert.Equal(t, "caf\u00e9", NormalizeHeader("cafe\u0301"))
}

func TestSchema(t *testing.T) {
	s := DefaultSchema()
	assert.Len(t, s.Series, 20)
	assert.True(t, s.HasSeries("K50 Serie"))
	assert.False(t, s.HasSeries("K50"))
	assert.True(t, s.HasClass("Class 2"))
	assert.True(t, s.IsMarked("x"))
	assert.True(t, s.IsMarked(" x "))
	assert.False(t, s.IsMarked("X"))
	assert.False(t, s.IsMarked(""))

	cols := s.KnownConnectorColumns()
	assert.Contains(t, cols, "Cable Class 5")
	assert.Contains(t, cols, "EK120ID")
	assert.Contains(t, cols, ColCrossSection)
}

func TestSchemaImage(t *testing.T) {
	s := DefaultSchema()
	assert.Equal(t, DefaultPlaceholderImage, s.Image(""))
	assert.Equal(t, DefaultPlaceholderImage, s.Image("  "))
	assert.Equal(t, "https://img/a.png", s.Image(" https://img/a.png "))

	assert.Equal(t, "", Schema{}.Image(""), "no placeholder configured")
}

func TestFingerprintStable(t *testing.T) {
	conns := []Connector{{PartNumber: "A", CrossSection: Of(16)}}
	tools := []Tool{{SKU: "T1", Series: "K50"}}

	a, err := Fingerprint(DefaultSchema(), conns, tools)
	require.NoError(t, err)
	b, err := Fingerprint(DefaultSchema(), conns, tools)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c, err := Fingerprint(DefaultSchema(), conns, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
