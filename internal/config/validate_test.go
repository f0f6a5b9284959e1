package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crimpfit/internal/catalog"
)

func codes(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestValidate_DefaultHasOnlyOverlapWarnings(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	errs := Validate(cfg)
	assert.False(t, HasErrors(errs))
	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.Equal(t, WarnOverlappingSeries, e.Code)
		assert.True(t, e.IsWarning())
	}
	assert.Contains(t, errs[0].Message, `"K5"`)
}

func TestValidate_Findings(t *testing.T) {
	sh := 8.0
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "clean",
			cfg:  Config{Series: []catalog.SeriesCode{"K4 serie", "K13 Serie"}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: "x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{},
		},
		{
			name: "duplicate series",
			cfg:  Config{Series: []catalog.SeriesCode{"K4 serie", "K4 serie"}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: "x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{ErrDuplicateSeries},
		},
		{
			name: "blank series",
			cfg:  Config{Series: []catalog.SeriesCode{" "}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: "x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{ErrEmptySeries},
		},
		{
			name: "duplicate class and missing default",
			cfg:  Config{Series: []catalog.SeriesCode{"K4 serie"}, Classes: []catalog.ConductorClass{"Class 5", "Class 5"}, Marker: "x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{ErrDuplicateClass, ErrDefaultClassMissing},
		},
		{
			name: "padded marker",
			cfg:  Config{Series: []catalog.SeriesCode{"K4 serie"}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: " x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{ErrMarkerWhitespace},
		},
		{
			name: "stud hole on ferrule",
			cfg: Config{Series: []catalog.SeriesCode{"K4 serie"}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: "x",
				Defaults: Defaults{Class: "Class 2", ConnectorType: "Wire Ferrule", StudHole: &sh}},
			want: []string{WarnDefaultTypeStudHole},
		},
		{
			name: "overlap",
			cfg:  Config{Series: []catalog.SeriesCode{"K5", "K50 Serie"}, Classes: []catalog.ConductorClass{"Class 2"}, Marker: "x", Defaults: Defaults{Class: "Class 2"}},
			want: []string{WarnOverlappingSeries},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(Validate(&tt.cfg)))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "series[1]", Message: "duplicate", Code: ErrDuplicateSeries}
	assert.Equal(t, "[E201] series[1]: duplicate", e.Error())
}

func TestCheck(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.NoError(t, Check(cfg), "overlap warnings alone pass")

	cfg, err = Compile("padded.cue", []byte(`
series: ["K50 Serie"]
classes: ["Class 2"]
marker: " x"
`))
	require.NoError(t, err, "the schema accepts a padded marker")

	err = Check(cfg)
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "padded.cue", invalid.Source)
	assert.Contains(t, codes(invalid.Findings), ErrMarkerWhitespace)
	assert.Contains(t, err.Error(), ErrMarkerWhitespace)
}
