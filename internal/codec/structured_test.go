package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredRoundTrip(t *testing.T) {
	sig := newTestSignature(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeStructured(&buf, sig))

	decoded, err := DecodeStructured(&buf)
	require.NoError(t, err)
	assert.Equal(t, sig, decoded)
}

func TestStructured_ByteStable(t *testing.T) {
	sig := newTestSignature(t)

	var first bytes.Buffer
	require.NoError(t, EncodeStructured(&first, sig))

	decoded, err := DecodeStructured(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, EncodeStructured(&second, decoded))

	assert.Equal(t, first.String(), second.String())
}

func TestEncodeStructured_KeyOrder(t *testing.T) {
	sig := newTestSignature(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeStructured(&buf, sig))
	out := buf.String()

	keys := []string{`"signature_id"`, `"category"`, `"description"`, `"location"`, `"source"`, `"bands"`, `"statistics"`, `"metadata"`}
	last := -1
	for _, key := range keys {
		idx := strings.Index(out, key)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestDecodeStructured_IgnoresUnknownKeys(t *testing.T) {
	sig := newTestSignature(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeStructured(&buf, sig))

	annotated := strings.Replace(buf.String(), `"signature_id"`, `"processing_history": ["atmcorr"], "signature_id"`, 1)

	decoded, err := DecodeStructured(strings.NewReader(annotated))
	require.NoError(t, err)
	assert.Equal(t, sig.ID, decoded.ID)
	assert.Equal(t, sig.Bands, decoded.Bands)
}

func TestDecodeStructured_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{
			name:   "not json",
			input:  "band_number,band_name",
			reason: "not a JSON object",
		},
		{
			name:   "array instead of object",
			input:  `[{"signature_id": "x"}]`,
			reason: "not a JSON object",
		},
		{
			name:   "missing signature_id",
			input:  `{"category": "minerals", "bands": []}`,
			reason: `missing required key "signature_id"`,
		},
		{
			name:   "missing category",
			input:  `{"signature_id": "x", "bands": []}`,
			reason: `missing required key "category"`,
		},
		{
			name:   "missing bands",
			input:  `{"signature_id": "x", "category": "minerals"}`,
			reason: `missing required key "bands"`,
		},
		{
			name:   "wrong value type",
			input:  `{"signature_id": "x", "category": "minerals", "bands": "not-a-list"}`,
			reason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStructured(strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, -1, parseErr.Row)
			if tt.reason != "" {
				assert.Contains(t, parseErr.Reason, tt.reason)
			}
		})
	}
}
