package umibin

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func survivorsWithErrs(errs ...int) []Survivor {
	var out []Survivor
	for i, e := range errs {
		out = append(out, Survivor{Read: int32(i), Err: e})
	}
	return out
}

func TestComputeErrorStatsNoSurvivors(t *testing.T) {
	got := ComputeErrorStats(nil, 3, 3)
	expect.EQ(t, got.State, UmeNA)
	expect.EQ(t, got.N, 0)
}

func TestComputeErrorStatsMeanReject(t *testing.T) {
	// Five reads with combined error all 5; mean=5 > 3 -> fail.
	got := ComputeErrorStats(survivorsWithErrs(5, 5, 5, 5, 5), 3, 10)
	expect.EQ(t, got.N, 5)
	expect.EQ(t, got.Mean, 5.0)
	expect.EQ(t, got.SD, 0.0)
	expect.EQ(t, got.State, UmeFail)
}

func TestComputeErrorStatsOK(t *testing.T) {
	got := ComputeErrorStats(survivorsWithErrs(1, 2, 3), 3, 3)
	expect.EQ(t, got.N, 3)
	expect.EQ(t, got.Mean, 2.0)
	expect.EQ(t, got.State, UmeOK)
}

func TestComputeErrorStatsSDReject(t *testing.T) {
	// Mean is within bounds but the spread isn't.
	got := ComputeErrorStats(survivorsWithErrs(0, 0, 10, 10), 5, 1)
	expect.EQ(t, got.Mean, 5.0)
	expect.EQ(t, got.State, UmeFail)
}
