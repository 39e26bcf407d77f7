// Package samio streams UMI-vs-read alignment hits out of a SAM tabular
// file. It is a narrow, purpose-built reader: it understands exactly the
// three columns the UMI binning pipeline needs (query name, reference name,
// and the NM/XA optional tags) and ignores everything else a full SAM/BAM
// library would otherwise have to model (headers, CIGAR semantics,
// reference dictionaries).
package samio

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

// Hit is a single UMI-reference-vs-read alignment, after optional-field
// extraction. Umi and Read are the raw strings as they appear in the SAM
// record (column 1 and column 3 respectively); Err is the associated edit
// distance (NM for a primary hit, the per-item nm for a secondary hit).
type Hit struct {
	Umi  string
	Read string
	Err  int
}

// Reader streams Hits out of a SAM tabular file, one primary hit and zero or
// more forward-strand secondary hits per input record, in the order the
// records appear in the file.
type Reader struct {
	sc      *bufio.Scanner
	pending []Hit
	next    int
	cur     Hit
	err     error

	// fields is reused across calls to avoid allocating a new token slice per
	// line; see design notes on "streaming line parsers".
	fields [][]byte

	// NSkippedShort counts lines with fewer than 11 tab-separated fields
	// (including SAM header lines beginning with '@').
	NSkippedShort int
	// NSkippedNoNM counts records with no NM:i: optional field.
	NSkippedNoNM int
	// NMalformedXA counts individual XA:Z: list items that failed to parse;
	// the record's primary hit and its other, well-formed secondary hits are
	// still kept.
	NMalformedXA int
}

// NewReader returns a Reader over r. The caller remains responsible for
// closing the underlying source.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

// Scan advances to the next Hit, returning false at EOF or on error. Use Err
// to distinguish the two.
func (r *Reader) Scan() bool {
	for {
		if r.next < len(r.pending) {
			r.cur = r.pending[r.next]
			r.next++
			return true
		}
		if !r.fillPending() {
			return false
		}
	}
}

// Hit returns the Hit produced by the most recent call to Scan.
func (r *Reader) Hit() Hit { return r.cur }

// Err returns the first error encountered while scanning, if any.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.sc.Err()
}

// fillPending reads and parses the next valid SAM record into r.pending,
// replacing any already-consumed entries. It returns false once the
// underlying scanner is exhausted.
func (r *Reader) fillPending() bool {
	for r.sc.Scan() {
		line := r.sc.Bytes()
		if len(line) == 0 || line[0] == '@' {
			r.NSkippedShort++
			continue
		}
		r.fields = splitTabs(r.fields, line)
		if len(r.fields) < 11 {
			r.NSkippedShort++
			continue
		}
		queryName := string(r.fields[0])
		refName := string(r.fields[2])

		nm, hasNM := findNM(r.fields[11:])
		if !hasNM {
			r.NSkippedNoNM++
			continue
		}
		r.pending = r.pending[:0]
		r.pending = append(r.pending, Hit{Umi: queryName, Read: refName, Err: nm})
		r.appendSecondaryHits(queryName, r.fields[11:])
		r.next = 0
		return true
	}
	return false
}

// findNM locates and parses the NM:i:<int> optional field among tags.
func findNM(tags [][]byte) (int, bool) {
	for _, t := range tags {
		if bytes.HasPrefix(t, nmPrefix) {
			n, err := strconv.Atoi(string(t[len(nmPrefix):]))
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

var (
	nmPrefix = []byte("NM:i:")
	xaPrefix = []byte("XA:Z:")
)

// appendSecondaryHits parses the XA:Z: tag, if present, and appends one Hit
// per forward-strand ('+') secondary alignment to r.pending. Malformed items
// are skipped silently; they do not affect the primary hit or other items.
func (r *Reader) appendSecondaryHits(umi string, tags [][]byte) {
	for _, t := range tags {
		if !bytes.HasPrefix(t, xaPrefix) {
			continue
		}
		list := t[len(xaPrefix):]
		for _, item := range bytes.Split(list, []byte{';'}) {
			if len(item) == 0 {
				continue
			}
			ref, pos, _, nmField, ok := splitXAItem(item)
			if !ok {
				r.NMalformedXA++
				continue
			}
			if len(pos) == 0 || pos[0] != '+' {
				continue
			}
			nm, err := strconv.Atoi(string(nmField))
			if err != nil {
				r.NMalformedXA++
				continue
			}
			r.pending = append(r.pending, Hit{Umi: umi, Read: string(ref), Err: nm})
		}
	}
}

// splitXAItem splits one comma-separated XA list item into its four fields:
// ref, pos, cigar, nm.
func splitXAItem(item []byte) (ref, pos, cigar, nm []byte, ok bool) {
	parts := bytes.SplitN(item, []byte{','}, 4)
	if len(parts) != 4 {
		return nil, nil, nil, nil, false
	}
	return parts[0], parts[1], parts[2], parts[3], true
}

// splitTabs splits line on tab characters, appending fields to dst[:0] and
// returning the result. Reusing dst across calls avoids an allocation per
// line for the common case where the field count doesn't grow.
func splitTabs(dst [][]byte, line []byte) [][]byte {
	dst = dst[:0]
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			dst = append(dst, line[start:i])
			start = i + 1
		}
	}
	return append(dst, line[start:])
}

