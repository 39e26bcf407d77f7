package umibin

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestCanonicalAndStrand(t *testing.T) {
	c, s := CanonicalAndStrand("umi1;size=4;")
	expect.EQ(t, c, "umi1;size=4;")
	expect.EQ(t, s, byte('+'))

	c, s = CanonicalAndStrand("umi1;size=4;_rc")
	expect.EQ(t, c, "umi1;size=4;")
	expect.EQ(t, s, byte('-'))
}

func TestClassifyOrientationFailsOnSingleton(t *testing.T) {
	state, plusCap, negCap := ClassifyOrientation(1, 5, 0.3, 10000)
	expect.EQ(t, state, RofFail)
	expect.EQ(t, plusCap, 0)
	expect.EQ(t, negCap, 0)
}

func TestClassifyOrientationBalanced(t *testing.T) {
	// ro_frac=0.5 with exactly balanced counts -> rof_ok.
	state, plusCap, negCap := ClassifyOrientation(5, 5, 0.5, 10000)
	expect.EQ(t, state, RofOK)
	expect.EQ(t, plusCap, 10000)
	expect.EQ(t, negCap, 10000)
}

func TestClassifyOrientationSubset(t *testing.T) {
	// plus=8, neg=2, ro_frac=0.3 -> rof_subset, cap=18.
	state, plusCap, negCap := ClassifyOrientation(8, 2, 0.3, 10000)
	expect.EQ(t, state, RofSubset)
	expect.EQ(t, plusCap, 18)
	expect.EQ(t, negCap, 18)
}

func TestSubsampleEnforcesCapsPerStrand(t *testing.T) {
	g := &orientationGroup{canonical: 7}
	for i := 0; i < 5; i++ {
		g.members = append(g.members, member{read: int32(i), strand: '+', err: i})
	}
	g.members = append(g.members, member{read: 100, strand: '-', err: 9})
	g.plusCount, g.negCount = 5, 1

	survivors := g.Subsample(RofSubset, 2, 1)
	expect.EQ(t, len(survivors), 3) // 2 plus-strand + 1 neg-strand
	var plus, neg int
	for _, s := range survivors {
		expect.EQ(t, s.Canonical, int32(7))
		if s.Read < 100 {
			plus++
		} else {
			neg++
		}
	}
	expect.EQ(t, plus, 2)
	expect.EQ(t, neg, 1)
}

func TestSubsampleRofFailYieldsNoSurvivors(t *testing.T) {
	g := &orientationGroup{canonical: 1, members: []member{{read: 0, strand: '+', err: 0}}}
	survivors := g.Subsample(RofFail, 0, 0)
	expect.EQ(t, len(survivors), 0)
}
