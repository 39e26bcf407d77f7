package umibin

import (
	"strconv"
	"strings"
)

// BcrState classifies a canonical UMI's bin/cluster-size ratio against the
// configured threshold.
type BcrState string

const (
	BcrOK   BcrState = "bcr_ok"
	BcrFail BcrState = "bcr_fail"
	// BcrNA marks a UMI that never reached this stage; see UmeNA.
	BcrNA BcrState = ""
)

// ClusterRatio holds the bin_size/cluster_size ratio computed for one
// canonical UMI.
type ClusterRatio struct {
	Ratio float64
	State BcrState
	// HasRatio is false when the cluster size could not be parsed (or parsed
	// as zero): the ratio is then undefined rather than merely large, and
	// Ratio should be rendered as empty, not 0.
	HasRatio bool
}

// ParseClusterSize extracts the integer cluster size from a canonical UmiId
// of the form "umiN;size=S;". It returns false if no cluster size field
// could be found or it didn't parse as a positive integer.
func ParseClusterSize(canonicalUmi string) (int, bool) {
	s := strings.TrimSuffix(canonicalUmi, ";")
	field := s
	if idx := strings.LastIndexByte(s, ';'); idx >= 0 {
		field = s[idx+1:]
	}
	eq := strings.IndexByte(field, '=')
	if eq < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(field[eq+1:])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ComputeClusterRatio computes the bin/cluster-size ratio for one canonical
// UMI and classifies it against maxRatio. rawN is the orientation-stage
// (pre-subsample) read count for the UMI, which is what this filter treats
// as the bin size.
func ComputeClusterRatio(canonicalUmi string, rawN int, maxRatio float64) ClusterRatio {
	clusterSize, ok := ParseClusterSize(canonicalUmi)
	if !ok {
		// A missing or zero cluster size can't support any bin size: clamp to
		// bcr_fail instead of dividing by zero.
		return ClusterRatio{State: BcrFail}
	}
	ratio := float64(rawN) / float64(clusterSize)
	state := BcrFail
	if ratio <= maxRatio {
		state = BcrOK
	}
	return ClusterRatio{Ratio: ratio, State: state, HasRatio: true}
}
