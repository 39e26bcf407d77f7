package umibin

import (
	"sort"
	"strings"

	"github.com/grailbio/umibin/internal/intern"
)

const rcSuffix = "_rc"

// CanonicalAndStrand splits a raw UmiId into its canonical form (the "_rc"
// suffix stripped, if present) and the strand it implies: '-' if the
// original carried the suffix, '+' otherwise.
func CanonicalAndStrand(raw string) (canonical string, strand byte) {
	if strings.HasSuffix(raw, rcSuffix) {
		return raw[:len(raw)-len(rcSuffix)], '-'
	}
	return raw, '+'
}

// RorState is an orientation-balance classification for one canonical UMI.
type RorState string

const (
	RofOK     RorState = "rof_ok"
	RofSubset RorState = "rof_subset"
	RofFail   RorState = "rof_fail"
)

// member is one resolved read attributed to a canonical UMI, prior to
// orientation subsampling.
type member struct {
	read   int32
	strand byte
	err    int
}

// orientationGroup accumulates the raw (pre-subsample) membership of one
// canonical UMI.
type orientationGroup struct {
	canonical int32
	members   []member
	plusCount int
	negCount  int
}

// GroupByCanonical buckets resolver assignments by canonical UmiId, deriving
// each read's strand from the raw UmiId it was assigned to. rawUmiTable
// holds the raw (possibly "_rc"-suffixed) UmiIds produced by the SAM reader;
// canonTable is populated with canonical UmiIds as a side effect and is
// later reused by ClusterRatioFilter and ReportWriter to render names.
func GroupByCanonical(assignments map[int32]Assignment, rawUmiTable, canonTable *intern.Table) map[int32]*orientationGroup {
	groups := make(map[int32]*orientationGroup)
	reads := make([]int32, 0, len(assignments))
	for r := range assignments {
		reads = append(reads, r)
	}
	sort.Slice(reads, func(i, j int) bool { return reads[i] < reads[j] })

	for _, r := range reads {
		a := assignments[r]
		canonical, strand := CanonicalAndStrand(rawUmiTable.String(a.Umi))
		cid := canonTable.Intern(canonical)
		g, ok := groups[cid]
		if !ok {
			g = &orientationGroup{canonical: cid}
			groups[cid] = g
		}
		g.members = append(g.members, member{read: r, strand: strand, err: a.Err})
		if strand == '+' {
			g.plusCount++
		} else {
			g.negCount++
		}
	}
	return groups
}

// ClassifyOrientation decides a canonical UMI's orientation-balance state
// from its raw per-strand read counts and computes the per-strand caps that
// state implies.
func ClassifyOrientation(plus, neg int, roFrac float64, maxBinSize int) (state RorState, plusCap, negCap int) {
	if plus <= 1 || neg <= 1 {
		return RofFail, 0, 0
	}
	total := plus + neg
	minor := plus
	major := neg
	if neg < minor {
		minor, major = neg, plus
	}
	minorFrac := float64(minor) / float64(total)
	if minorFrac >= roFrac {
		return RofOK, maxBinSize, maxBinSize
	}
	// Integer cap, truncating toward zero, applied to both strands. Since
	// roFrac <= 0.5, 1/roFrac - 1 >= 1, so the cap is never below the
	// majority count and neither strand loses reads to it.
	cap := int(float64(major) * (1/roFrac - 1))
	return RofSubset, cap, cap
}

// Survivor is a read that passed orientation subsampling, still tagged with
// the canonical UMI and combined edit distance it needs downstream.
type Survivor struct {
	Read      int32
	Canonical int32
	Err       int
}

// Subsample applies the per-strand caps from ClassifyOrientation to g's
// members, in ascending read-id order (an arbitrary but deterministic
// traversal). RofFail groups retain no reads.
func (g *orientationGroup) Subsample(state RorState, plusCap, negCap int) []Survivor {
	if state == RofFail {
		return nil
	}
	sorted := make([]member, len(g.members))
	copy(sorted, g.members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].read < sorted[j].read })

	plusRemain, negRemain := plusCap, negCap
	var out []Survivor
	for _, m := range sorted {
		if m.strand == '+' {
			if plusRemain <= 0 {
				continue
			}
			plusRemain--
		} else {
			if negRemain <= 0 {
				continue
			}
			negRemain--
		}
		out = append(out, Survivor{Read: m.read, Canonical: g.canonical, Err: m.err})
	}
	return out
}
