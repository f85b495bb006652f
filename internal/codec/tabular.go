package codec

import (
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goldpath/spectra/internal/model"
)

// tabularHeader is the exact column set of the tabular encoding, in order.
var tabularHeader = []string{
	"band_number",
	"band_name",
	"wavelength_um",
	"reflectance_value",
	"continuum_removed",
	"index_value",
	"notes",
}

// EncodeTabular writes the signature's bands as CSV, one row per band in
// ascending band order. Record-level metadata (location, source, statistics,
// metadata) is not representable in this encoding and is dropped; use the
// structured encoding when fidelity matters.
func EncodeTabular(w io.Writer, sig *model.Signature) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tabularHeader); err != nil {
		return err
	}

	bands := make([]model.Band, len(sig.Bands))
	copy(bands, sig.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].Number < bands[j].Number })

	for _, b := range bands {
		row := []string{
			strconv.Itoa(b.Number),
			b.Name,
			formatOptional(b.WavelengthUM),
			formatFloat(b.Reflectance),
			formatOptional(b.ContinuumRemoved),
			formatOptional(b.IndexValue),
			b.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTabular parses the tabular encoding into a signature. Each row must
// yield a complete band tuple: numeric fields must parse, band numbers must
// cover exactly 1-18 once each, and the wavelength presence rule (required
// for 1-12, absent for 13-18) must hold. The resulting record has empty
// identity and metadata; callers supply those separately.
func DecodeTabular(r io.Reader) (*model.Signature, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tabularHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseErr(-1, "empty input")
		}
		return nil, parseErr(-1, "reading header: %v", err)
	}
	for i, name := range tabularHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, parseErr(-1, "column %d: got %q, want %q", i+1, header[i], name)
		}
	}

	var seen [model.BandCount + 1]bool
	bands := make([]model.Band, 0, model.BandCount)
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErr(row, "%v", err)
		}

		b, err := parseBandRow(row, rec)
		if err != nil {
			return nil, err
		}
		if seen[b.Number] {
			return nil, parseErr(row, "duplicate band_number %d", b.Number)
		}
		seen[b.Number] = true
		bands = append(bands, b)
	}

	if len(bands) != model.BandCount {
		return nil, parseErr(-1, "expected %d bands, found %d", model.BandCount, len(bands))
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].Number < bands[j].Number })

	return &model.Signature{Bands: bands}, nil
}

func parseBandRow(row int, rec []string) (model.Band, error) {
	num, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return model.Band{}, parseErr(row, "band_number %q is not an integer", rec[0])
	}
	if num < 1 || num > model.BandCount {
		return model.Band{}, parseErr(row, "band_number %d outside 1-%d", num, model.BandCount)
	}

	b := model.Band{
		Number: num,
		Name:   strings.TrimSpace(rec[1]),
		Notes:  rec[6],
	}

	wavelength, err := parseOptional(rec[2])
	if err != nil {
		return model.Band{}, parseErr(row, "wavelength_um %q is not numeric", rec[2])
	}
	if model.RequiresWavelength(num) && wavelength == nil {
		return model.Band{}, parseErr(row, "band %d: wavelength_um is required", num)
	}
	if !model.RequiresWavelength(num) && wavelength != nil {
		return model.Band{}, parseErr(row, "band %d: wavelength_um must be empty", num)
	}
	b.WavelengthUM = wavelength

	if strings.TrimSpace(rec[3]) == "" {
		return model.Band{}, parseErr(row, "band %d: reflectance_value is required", num)
	}
	refl, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return model.Band{}, parseErr(row, "reflectance_value %q is not numeric", rec[3])
	}
	b.Reflectance = refl

	if b.ContinuumRemoved, err = parseOptional(rec[4]); err != nil {
		return model.Band{}, parseErr(row, "continuum_removed %q is not numeric", rec[4])
	}
	if b.IndexValue, err = parseOptional(rec[5]); err != nil {
		return model.Band{}, parseErr(row, "index_value %q is not numeric", rec[5])
	}
	return b, nil
}

func parseOptional(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}
