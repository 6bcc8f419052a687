package polar

// Index3 addresses a single bin as (elevation, azimuth, range) indices.
type Index3 struct {
	E, A, R int
}

// Volume is a fully populated polar-volume scan, the unit of work handed to
// the dealiasing and superobing stages by the (external) homogenizer.
//
// Lifecycle: created by ingest/homogenize (not part of this module),
// mutated in place by the dealiaser (adds Dvrads/ZIdxs/WModels) and then by
// the superober (adds Sdbz/Svrad), then discarded once results are
// persisted through an odim.OutputFile. One Volume per input file; no
// shared ownership across files.
type Volume struct {
	SiteHeight float64 // meters above sea level, radar feedhorn

	Dbz  Moment
	Vrad Moment

	// Populated by the dealiaser.
	Dvrads   [][][]float64 // [e][a][r], dealiased VRAD
	ZStarts  []float64     // height-sector lower bounds, meters
	ZEnds    []float64     // height-sector upper bounds, meters
	ZIdxs    [][]Index3    // per-sector list of eligible bins
	WModels  [][][]float64 // [e][a][r], modelled radial velocity
	Unfolded [][][]int     // [e][a][r], chosen Nyquist multiplier k

	// Populated by the superober.
	Sdbz  Moment
	Svrad Moment
}

// DealiasingRan reports whether the dealiaser has attached results to this
// volume. The superober uses this to decide between Dvrads and Vrad.Meas
// as its VRAD source (spec §4.9).
func (v *Volume) DealiasingRan() bool {
	return v.Dvrads != nil
}
