package umibin

import (
	"github.com/grailbio/umibin/internal/intern"
	"github.com/grailbio/umibin/samio"
)

// CandidateIndex maps UmiId -> ReadId -> edit distance, for one end (UMI1 or
// UMI2) of the read. Both keys are dense ids interned into a shared Table so
// the same UmiId/ReadId string is represented identically across both
// indices (see internal/intern and the design notes on "String-keyed
// multi-maps").
type CandidateIndex struct {
	m map[int32]map[int32]int
}

// NewCandidateIndex returns an empty CandidateIndex.
func NewCandidateIndex() *CandidateIndex {
	return &CandidateIndex{m: make(map[int32]map[int32]int)}
}

// insert records err for (umi, read): the first err seen for a given
// (umi, read) pair wins, so later insertions (duplicate XA references, or
// records appearing again later in the file) are silently skipped. It
// returns true iff the pair was not already present.
func (c *CandidateIndex) insert(umi, read int32, err int) bool {
	reads, ok := c.m[umi]
	if !ok {
		reads = make(map[int32]int)
		c.m[umi] = reads
	}
	if _, exists := reads[read]; exists {
		return false
	}
	reads[read] = err
	return true
}

// Get returns the retained edit distance for (umi, read), if any.
func (c *CandidateIndex) Get(umi, read int32) (int, bool) {
	reads, ok := c.m[umi]
	if !ok {
		return 0, false
	}
	err, ok := reads[read]
	return err, ok
}

// Umis returns the set of UmiIds with at least one candidate read.
func (c *CandidateIndex) Umis() []int32 {
	ids := make([]int32, 0, len(c.m))
	for u := range c.m {
		ids = append(ids, u)
	}
	return ids
}

// Reads returns the ReadIds and edit distances recorded for umi.
func (c *CandidateIndex) Reads(umi int32) map[int32]int {
	return c.m[umi]
}

// BuildCandidateIndex drains r, interning UmiIds into umiTable and ReadIds
// into readTable, and returns the resulting index.
func BuildCandidateIndex(r *samio.Reader, umiTable, readTable *intern.Table) (*CandidateIndex, error) {
	idx := NewCandidateIndex()
	for r.Scan() {
		h := r.Hit()
		umi := umiTable.Intern(h.Umi)
		read := readTable.Intern(h.Read)
		idx.insert(umi, read, h.Err)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}
