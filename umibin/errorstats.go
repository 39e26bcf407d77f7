package umibin

import "math"

// UmeState classifies a canonical UMI's combined-error distribution against
// the configured thresholds.
type UmeState string

const (
	UmeOK   UmeState = "ume_ok"
	UmeFail UmeState = "ume_fail"
	// UmeNA marks a UMI that never reached this stage (its bin was already
	// rejected by OrientationFilter); the corresponding stats columns are
	// rendered empty.
	UmeNA UmeState = ""
)

// ErrorStats holds the population mean and standard deviation of combined
// edit distance across a canonical UMI's orientation-surviving reads.
type ErrorStats struct {
	N     int
	Mean  float64
	SD    float64
	State UmeState
}

// ComputeErrorStats computes the population mean and standard deviation of
// combined edit distance across survivors and classifies the result against
// meanMax/sdMax. survivors must all belong to the same canonical UMI and
// must already have passed orientation subsampling.
func ComputeErrorStats(survivors []Survivor, meanMax, sdMax float64) ErrorStats {
	n := len(survivors)
	if n == 0 {
		return ErrorStats{State: UmeNA}
	}
	var sum, sq float64
	for _, s := range survivors {
		e := float64(s.Err)
		sum += e
		sq += e * e
	}
	mean := sum / float64(n)
	variance := (sq - sum*sum/float64(n)) / float64(n)
	if variance < 0 {
		// Guards against a negative value caused purely by floating-point
		// cancellation when all errors are equal.
		variance = 0
	}
	sd := math.Sqrt(variance)

	state := UmeFail
	if mean <= meanMax && sd <= sdMax {
		state = UmeOK
	}
	return ErrorStats{N: n, Mean: mean, SD: sd, State: state}
}
