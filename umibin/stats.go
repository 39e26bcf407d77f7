package umibin

// RunStats accumulates cross-cutting diagnostic counters for one pipeline
// run, mirroring fusion.Stats's merge-friendly accumulator shape so that a
// driver can report progress without threading individual counters through
// every stage by hand.
type RunStats struct {
	NUmi1Hits int64
	NUmi2Hits int64

	NReadsResolved int64
	NReadsDropped  int64 // in index1 but with no UmiId matched in index2 within thresholds

	NCanonicalUmis int64
	NRofOK         int64
	NRofSubset     int64
	NRofFail       int64

	NUmeOK   int64
	NUmeFail int64

	NBcrOK   int64
	NBcrFail int64

	NBinsEmitted int64
}

// Merge folds other into r in place, for combining per-shard stats (not
// currently used by the single-threaded driver, but kept as the extension
// point fusion.Stats itself was designed around).
func (r *RunStats) Merge(other RunStats) {
	r.NUmi1Hits += other.NUmi1Hits
	r.NUmi2Hits += other.NUmi2Hits
	r.NReadsResolved += other.NReadsResolved
	r.NReadsDropped += other.NReadsDropped
	r.NCanonicalUmis += other.NCanonicalUmis
	r.NRofOK += other.NRofOK
	r.NRofSubset += other.NRofSubset
	r.NRofFail += other.NRofFail
	r.NUmeOK += other.NUmeOK
	r.NUmeFail += other.NUmeFail
	r.NBcrOK += other.NBcrOK
	r.NBcrFail += other.NBcrFail
	r.NBinsEmitted += other.NBinsEmitted
}

// BinStats is the fully assembled per-canonical-UMI row consumed by
// ReportWriter, joining together the output of every filter stage.
type BinStats struct {
	CanonicalUmi string

	RawN int // members of the canonical UMI's orientation group, pre-subsample
	FiltN int // survivors after orientation subsampling

	PlusCount, NegCount int // pre-subsample per-strand counts
	PlusCap, NegCap     int // caps applied by ClassifyOrientation; 0 for rof_fail

	RorState RorState

	UmeState UmeState
	UmeMean  *float64 // nil when UmeState == UmeNA
	UmeSD    *float64 // nil when UmeState == UmeNA

	BcrState BcrState
	Bcr      *float64 // nil when BcrState == BcrNA
}

// ReadMaxPlus and ReadMaxNeg report the per-strand cap plus that strand's
// pre-subsample read count (so MaxBinSize + count for rof_ok bins), a
// diagnostic sum kept for compatibility with the source pipeline's table.
func (b BinStats) ReadMaxPlus() int { return b.PlusCap + b.PlusCount }
func (b BinStats) ReadMaxNeg() int  { return b.NegCap + b.NegCount }
