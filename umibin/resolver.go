package umibin

import "sort"

// Assignment is the surviving cross-end match for one read: the UmiId it was
// assigned to and the combined (e1+e2) edit distance.
type Assignment struct {
	Umi int32
	Err int
}

// Resolve intersects index1 and index2 and returns, for every read admitted
// by the per-end and combined thresholds, the single best Assignment.
// dropped counts distinct reads that had a candidate in index1 but never
// cleared the per-end/combined thresholds under any UmiId they were
// proposed under (including reads with no matching candidate in index2 at
// all).
//
// A read may be proposed under more than one UmiId (including a UmiId and
// its distinct "_rc" sibling key); the proposal with the smallest combined
// error wins, and ties are broken in favor of whichever proposal is
// encountered first. To make that tie-break (and hence the whole resolver)
// deterministic regardless of Go's randomized map iteration, UmiIds and
// ReadIds are walked in ascending id order, which is the order in which
// each string was first interned while reading index1's SAM file.
func Resolve(index1, index2 *CandidateIndex, perUmiMax, combinedMax int) (assignments map[int32]Assignment, dropped int64) {
	best := make(map[int32]Assignment)
	candidates := make(map[int32]bool)

	umis := index1.Umis()
	sort.Slice(umis, func(i, j int) bool { return umis[i] < umis[j] })

	for _, u := range umis {
		reads := index1.Reads(u)
		readIDs := make([]int32, 0, len(reads))
		for r := range reads {
			readIDs = append(readIDs, r)
		}
		sort.Slice(readIDs, func(i, j int) bool { return readIDs[i] < readIDs[j] })

		for _, r := range readIDs {
			candidates[r] = true
			e1 := reads[r]
			e2, ok := index2.Get(u, r)
			if !ok {
				continue
			}
			if e1 > perUmiMax || e2 > perUmiMax {
				continue
			}
			combined := e1 + e2
			if combined > combinedMax {
				continue
			}
			if cur, exists := best[r]; !exists || combined < cur.Err {
				best[r] = Assignment{Umi: u, Err: combined}
			}
		}
	}
	dropped = int64(len(candidates) - len(best))
	return best, dropped
}
