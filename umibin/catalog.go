package umibin

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/umibin/umi"
	"github.com/grailbio/umibin/util"
)

// CatalogWarning flags one catalog UMI sequence whose nearest other
// sequence in the same catalog is fewer than the requested number of edits
// away: the two are hard to tell apart from single-base sequencing
// error, which can manifest downstream as reads splitting across what
// should be one bin.
type CatalogWarning struct {
	Umi        string
	NearestUmi string
	Edits      int
}

// CheckCatalogAmbiguity cross-checks every sequence in a UMI catalog
// against the others by direct Levenshtein distance, reporting any
// reference whose nearest neighbor is closer than minEdits.
// umi.SnapCorrector is used only to parse and validate the catalog; its
// snap table is not consulted.
// This is advisory (driven by the -check-catalog flag): the binning
// pipeline itself does not consult it, but a catalog with near-duplicate
// references is a common cause of downstream rof_subset/bcr_fail bins that
// are otherwise hard to diagnose from the stats table alone.
//
// knownUMIs is the newline-separated catalog of bare ACGT sequences, in
// the same format NewSnapCorrector expects (e.g. as read from the upstream
// clustering stage); it does not carry the ";size=S;" canonical-identifier
// suffix used elsewhere in this package.
func CheckCatalogAmbiguity(knownUMIs []byte, minEdits int) []CatalogWarning {
	corrector := umi.NewSnapCorrector(knownUMIs)

	var warnings []CatalogWarning
	for _, seq := range corrector.KnownUMIs() {
		// A catalog sequence always "corrects" to itself with 0 edits unless
		// it's closer to some other distinct member: probe each of its
		// single-edit neighbors indirectly by asking the corrector what a
		// perturbed read would snap to is overkill here, so instead compare
		// directly against every other known sequence.
		nearest, edits, ok := nearestOther(seq, corrector.KnownUMIs())
		if !ok {
			continue
		}
		if edits < minEdits {
			log.Printf("umibin: catalog ambiguity: %s is %d edit(s) from %s", seq, edits, nearest)
			warnings = append(warnings, CatalogWarning{Umi: seq, NearestUmi: nearest, Edits: edits})
		}
	}
	return warnings
}

func nearestOther(seq string, catalog []string) (nearest string, edits int, ok bool) {
	best := -1
	for _, other := range catalog {
		if other == seq {
			continue
		}
		d := util.Levenshtein(seq, other, "", "")
		if best < 0 || d < best {
			best = d
			nearest = other
			ok = true
		}
	}
	return nearest, best, ok
}
