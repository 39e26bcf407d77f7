package umibin

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/umibin/internal/intern"
	"github.com/grailbio/umibin/samio"
)

func buildIndex(t *testing.T, text string) (*CandidateIndex, *intern.Table, *intern.Table) {
	umiTable := intern.New(8)
	readTable := intern.New(8)
	idx, err := BuildCandidateIndex(samio.NewReader(strings.NewReader(text)), umiTable, readTable)
	if err != nil {
		t.Fatalf("BuildCandidateIndex: %v", err)
	}
	return idx, umiTable, readTable
}

func TestCandidateIndexBasic(t *testing.T) {
	text := "umi1;size=1;\t0\tread_A\t1\t60\t10M\t*\t0\t0\tACGT\tIIII\tNM:i:2\n"
	idx, umiTable, readTable := buildIndex(t, text)

	umi := umiTable.Intern("umi1;size=1;")
	read := readTable.Intern("read_A")
	err, ok := idx.Get(umi, read)
	expect.True(t, ok)
	expect.EQ(t, err, 2)
}

func TestCandidateIndexRetainsFirstInsertedErr(t *testing.T) {
	// read_A appears as this record's primary hit (NM:i:1) and again in its
	// own XA list (nm=9); the retention rule keeps the primary's err.
	text := "umi1;size=1;\t0\tread_A\t1\t60\t10M\t*\t0\t0\tACGT\tIIII\t" +
		"NM:i:1\tXA:Z:read_A,+5,10M,9;\n"
	idx, umiTable, readTable := buildIndex(t, text)

	umi := umiTable.Intern("umi1;size=1;")
	read := readTable.Intern("read_A")
	err, ok := idx.Get(umi, read)
	expect.True(t, ok)
	expect.EQ(t, err, 1)
}

func TestCandidateIndexMissingPairNotOK(t *testing.T) {
	idx, umiTable, readTable := buildIndex(t, "umi1;size=1;\t0\tread_A\t1\t60\t10M\t*\t0\t0\tACGT\tIIII\tNM:i:1\n")
	_, ok := idx.Get(umiTable.Intern("umi2;size=1;"), readTable.Intern("read_A"))
	expect.False(t, ok)
}
