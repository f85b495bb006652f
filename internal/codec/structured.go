package codec

import (
	"encoding/json"
	"io"

	"github.com/goldpath/spectra/internal/model"
)

// EncodeStructured writes the full signature record as indented JSON. Key
// order follows the model's field declaration order and never varies, so
// encoding an unchanged record is byte-stable.
func EncodeStructured(w io.Writer, sig *model.Signature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sig)
}

// DecodeStructured parses the structured encoding. The top-level object must
// carry signature_id, category, and bands; all other keys are optional.
// Unknown keys are ignored, per the permissive-parse contract.
func DecodeStructured(r io.Reader) (*model.Signature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErr(-1, "reading input: %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, parseErr(-1, "not a JSON object: %v", err)
	}
	for _, key := range []string{"signature_id", "category", "bands"} {
		if _, ok := top[key]; !ok {
			return nil, parseErr(-1, "missing required key %q", key)
		}
	}

	var sig model.Signature
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, parseErr(-1, "%v", err)
	}
	return &sig, nil
}
