package model

// BandCount is the fixed number of channels in every signature.
const BandCount = 18

// Band number boundaries for the three channel groups.
const (
	// FirstReflectanceBand and LastReflectanceBand bound the raw ASTER channels.
	FirstReflectanceBand = 1
	LastReflectanceBand  = 6
	// FirstContinuumBand and LastContinuumBand bound the continuum-removed channels.
	FirstContinuumBand = 7
	LastContinuumBand  = 12
	// FirstIndexBand and LastIndexBand bound the derived pathfinder indices.
	FirstIndexBand = 13
	LastIndexBand  = 18
)

// BandDef describes one channel of the fixed 18-band layout.
type BandDef struct {
	WavelengthUM *float64
	Name         string
	Number       int
}

// bandCatalog is the standard ASTER-derived channel layout. Bands 1-6 are raw
// SWIR reflectance, 7-12 their continuum-removed counterparts, 13-18 derived
// gold pathfinder indices with no physical wavelength.
var bandCatalog = [BandCount]BandDef{
	{Number: 1, Name: "ASTER_B04_1.66um_Clay_Carbonate", WavelengthUM: um(1.656)},
	{Number: 2, Name: "ASTER_B05_2.17um_AlOH_Sericite", WavelengthUM: um(2.167)},
	{Number: 3, Name: "ASTER_B06_2.21um_AlOH_Muscovite", WavelengthUM: um(2.209)},
	{Number: 4, Name: "ASTER_B07_2.26um_MgOH_Chlorite", WavelengthUM: um(2.262)},
	{Number: 5, Name: "ASTER_B08_2.34um_Carbonate", WavelengthUM: um(2.336)},
	{Number: 6, Name: "ASTER_B09_2.40um_Carbonate_Chlorite", WavelengthUM: um(2.400)},
	{Number: 7, Name: "CR_ASTER_B04_1.66um_Clay_Carbonate", WavelengthUM: um(1.656)},
	{Number: 8, Name: "CR_ASTER_B05_2.17um_AlOH_Sericite", WavelengthUM: um(2.167)},
	{Number: 9, Name: "CR_ASTER_B06_2.21um_AlOH_Muscovite", WavelengthUM: um(2.209)},
	{Number: 10, Name: "CR_ASTER_B07_2.26um_MgOH_Chlorite", WavelengthUM: um(2.262)},
	{Number: 11, Name: "CR_ASTER_B08_2.34um_Carbonate", WavelengthUM: um(2.336)},
	{Number: 12, Name: "CR_ASTER_B09_2.40um_Carbonate_Chlorite", WavelengthUM: um(2.400)},
	{Number: 13, Name: "Gold_Phyllic_Sericite"},
	{Number: 14, Name: "Gold_Argillic_Kaolinite"},
	{Number: 15, Name: "Gold_Propylitic_Chlorite"},
	{Number: 16, Name: "Gold_Composite_Best"},
	{Number: 17, Name: "Gold_Hydrothermal_Intensity"},
	{Number: 18, Name: "Gold_Advanced_Argillic"},
}

// expectedRanges holds the expected dynamic range per band, used to normalize
// absolute differences into comparable separability contributions. Reflectance
// channels span [0,1]; pathfinder indices are unscaled scores that in practice
// stay well inside 0-300.
var expectedRanges = [BandCount]float64{
	1.0, 1.0, 1.0, 1.0, 1.0, 1.0,
	1.0, 1.0, 1.0, 1.0, 1.0, 1.0,
	300.0, 300.0, 300.0, 300.0, 300.0, 300.0,
}

func um(v float64) *float64 {
	return &v
}

// CatalogBand returns the standard definition for band number n.
// The returned value is a copy; the catalog itself is never mutated.
func CatalogBand(n int) (BandDef, bool) {
	if n < 1 || n > BandCount {
		return BandDef{}, false
	}
	def := bandCatalog[n-1]
	if def.WavelengthUM != nil {
		w := *def.WavelengthUM
		def.WavelengthUM = &w
	}
	return def, true
}

// BandName returns the catalog name for band number n, or "" if out of range.
func BandName(n int) string {
	if n < 1 || n > BandCount {
		return ""
	}
	return bandCatalog[n-1].Name
}

// ExpectedRange returns the expected dynamic range for band number n.
// Returns 0 for band numbers outside 1-18.
func ExpectedRange(n int) float64 {
	if n < 1 || n > BandCount {
		return 0
	}
	return expectedRanges[n-1]
}

// IsIndexBand reports whether band number n carries a derived pathfinder
// index rather than a reflectance measurement.
func IsIndexBand(n int) bool {
	return n >= FirstIndexBand && n <= LastIndexBand
}

// IsContinuumBand reports whether band number n carries continuum-removed
// reflectance.
func IsContinuumBand(n int) bool {
	return n >= FirstContinuumBand && n <= LastContinuumBand
}

// RequiresWavelength reports whether band number n must carry a wavelength.
// Physical channels (1-12) do; derived indices (13-18) must not.
func RequiresWavelength(n int) bool {
	return n >= FirstReflectanceBand && n <= LastContinuumBand
}
