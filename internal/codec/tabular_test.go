package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldpath/spectra/internal/model"
)

func newTestSignature(t *testing.T) *model.Signature {
	t.Helper()

	values := make([]float64, 18)
	for i := range values {
		values[i] = 0.1 + float64(i)*0.02
	}
	lat, lon := 48.75, 82.15
	sig, err := model.NewSignature(model.Input{
		ID:               "gold-ridge-007",
		Category:         model.CategoryGoldExploration,
		Description:      "Ridge sample above the old workings",
		Reflectance:      values,
		ContinuumRemoved: []float64{0.91, 0.88, 0.85, 0.9, 0.87, 0.92},
		IndexValues:      []float64{150, 120, 100, 180, 110, 90},
		Location:         &model.Location{Latitude: &lat, Longitude: &lon, UTMZone: "44N"},
		Source: &model.Source{
			Sensor:          "ASTER",
			SceneID:         "AST_07_00405302002053830",
			AcquisitionDate: "2002-05-02",
		},
		Metadata: &model.Metadata{CreatedDate: "2026-08-01", CreatedBy: "field-team"},
	})
	require.NoError(t, err)
	return sig
}

func encodeTabularString(t *testing.T, sig *model.Signature) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeTabular(&buf, sig))
	return buf.String()
}

func TestTabularRoundTrip_RecoversBandsExactly(t *testing.T) {
	sig := newTestSignature(t)

	decoded, err := DecodeTabular(strings.NewReader(encodeTabularString(t, sig)))
	require.NoError(t, err)

	assert.Equal(t, sig.Bands, decoded.Bands)

	// The tabular path is documented lossy: everything but bands defaults
	assert.Empty(t, decoded.ID)
	assert.Empty(t, decoded.Category)
	assert.Nil(t, decoded.Location)
	assert.Nil(t, decoded.Source)
	assert.Nil(t, decoded.Statistics)
	assert.Nil(t, decoded.Metadata)
}

func TestEncodeTabular_Deterministic(t *testing.T) {
	sig := newTestSignature(t)
	assert.Equal(t, encodeTabularString(t, sig), encodeTabularString(t, sig))
}

func TestEncodeTabular_Header(t *testing.T) {
	sig := newTestSignature(t)
	lines := strings.Split(encodeTabularString(t, sig), "\n")
	assert.Equal(t,
		"band_number,band_name,wavelength_um,reflectance_value,continuum_removed,index_value,notes",
		lines[0])
	// header plus 18 rows plus trailing newline
	assert.Len(t, lines, 20)
}

func TestDecodeTabular_RowsInAnyOrder(t *testing.T) {
	sig := newTestSignature(t)
	lines := strings.Split(strings.TrimRight(encodeTabularString(t, sig), "\n"), "\n")
	// reverse the data rows
	for i, j := 1, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	decoded, err := DecodeTabular(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	assert.Equal(t, sig.Bands, decoded.Bands)
}

func TestDecodeTabular_Errors(t *testing.T) {
	sig := newTestSignature(t)
	valid := strings.Split(strings.TrimRight(encodeTabularString(t, sig), "\n"), "\n")

	tests := []struct {
		name   string
		mutate func(lines []string) []string
		reason string
	}{
		{
			name: "wrong header",
			mutate: func(lines []string) []string {
				lines[0] = "band,name,wl,refl,cr,idx,notes"
				return lines
			},
			reason: "want",
		},
		{
			name: "wrong column count",
			mutate: func(lines []string) []string {
				lines[3] = "3,short_row"
				return lines
			},
			reason: "",
		},
		{
			name: "non-numeric reflectance",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[2], ",")
				cols[3] = "abc"
				lines[2] = strings.Join(cols, ",")
				return lines
			},
			reason: "not numeric",
		},
		{
			name: "non-integer band number",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[2], ",")
				cols[0] = "two"
				lines[2] = strings.Join(cols, ",")
				return lines
			},
			reason: "not an integer",
		},
		{
			name: "band number out of range",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[2], ",")
				cols[0] = "42"
				lines[2] = strings.Join(cols, ",")
				return lines
			},
			reason: "outside 1-18",
		},
		{
			name: "duplicate band number",
			mutate: func(lines []string) []string {
				lines[2] = lines[1]
				return lines
			},
			reason: "duplicate band_number",
		},
		{
			name: "missing band",
			mutate: func(lines []string) []string {
				return lines[:len(lines)-1]
			},
			reason: "expected 18 bands",
		},
		{
			name: "missing wavelength on physical band",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[2], ",")
				cols[2] = ""
				lines[2] = strings.Join(cols, ",")
				return lines
			},
			reason: "wavelength_um is required",
		},
		{
			name: "wavelength on index band",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[13], ",")
				cols[2] = "2.209"
				lines[13] = strings.Join(cols, ",")
				return lines
			},
			reason: "wavelength_um must be empty",
		},
		{
			name: "empty reflectance",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[5], ",")
				cols[3] = ""
				lines[5] = strings.Join(cols, ",")
				return lines
			},
			reason: "reflectance_value is required",
		},
		{
			name: "non-numeric index value",
			mutate: func(lines []string) []string {
				cols := strings.Split(lines[14], ",")
				cols[5] = "high"
				lines[14] = strings.Join(cols, ",")
				return lines
			},
			reason: "not numeric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]string, len(valid))
			copy(lines, valid)

			_, err := DecodeTabular(strings.NewReader(strings.Join(tt.mutate(lines), "\n")))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			if tt.reason != "" {
				assert.Contains(t, parseErr.Reason, tt.reason)
			}
		})
	}
}

func TestDecodeTabular_EmptyInput(t *testing.T) {
	_, err := DecodeTabular(strings.NewReader(""))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "empty input", parseErr.Reason)
}

func TestParseError_Message(t *testing.T) {
	rowErr := &ParseError{Row: 3, Reason: "bad value"}
	assert.Equal(t, "parse error at row 3: bad value", rowErr.Error())

	headErr := &ParseError{Row: -1, Reason: "empty input"}
	assert.Equal(t, "parse error: empty input", headErr.Error())

	assert.False(t, errors.Is(rowErr, headErr))
}
