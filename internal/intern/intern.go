// Package intern provides a compact string -> dense int32 id table.
//
// CandidateIndex (see package umibin) keys its two-sided maps by UmiId and
// ReadId. Tens of millions of hit records share a comparatively small set of
// distinct strings, so interning them once and keying maps by int32 instead
// of string avoids repeated string duplication and shrinks map overhead, as
// recommended by the design notes on "String-keyed multi-maps". The table
// itself is a farm-hashed, linear-probed open-addressing table, the same
// technique fusion/kmer_index.go uses for its kmer->genelist index, minus
// that index's unsafe/mmap/hugepage machinery: this table holds ordinary
// Go strings and is sized for hundreds of thousands, not billions, of
// distinct keys, so the extra complexity isn't warranted here.
package intern

import (
	farm "github.com/dgryski/go-farm"
)

const invalidID int32 = -1

type entry struct {
	hash uint64
	id   int32 // invalidID means empty slot
}

// Table interns strings into dense, zero-based int32 ids. The zero value is
// not usable; construct with New.
type Table struct {
	buckets []entry
	strs    []string
	mask    uint64
}

// New returns an empty Table sized to hold roughly sizeHint entries without
// rehashing.
func New(sizeHint int) *Table {
	size := 16
	for size < sizeHint*2 {
		size *= 2
	}
	t := &Table{
		buckets: make([]entry, size),
		mask:    uint64(size - 1),
	}
	for i := range t.buckets {
		t.buckets[i].id = invalidID
	}
	return t
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int { return len(t.strs) }

// String returns the string that was assigned the given id.
//
// REQUIRES: id was returned by a prior call to Intern on this table.
func (t *Table) String(id int32) string { return t.strs[id] }

// Intern returns the dense id for s, assigning a new one the first time s is
// seen.
func (t *Table) Intern(s string) int32 {
	if len(t.strs)*10 >= len(t.buckets)*7 { // load factor 0.7
		t.grow()
	}
	h := farm.Hash64([]byte(s))
	i := h & t.mask
	for {
		e := &t.buckets[i]
		if e.id == invalidID {
			id := int32(len(t.strs))
			t.strs = append(t.strs, s)
			e.hash = h
			e.id = id
			return id
		}
		if e.hash == h && t.strs[e.id] == s {
			return e.id
		}
		i = (i + 1) & t.mask
	}
}

func (t *Table) grow() {
	old := t.buckets
	size := len(old) * 2
	t.buckets = make([]entry, size)
	t.mask = uint64(size - 1)
	for i := range t.buckets {
		t.buckets[i].id = invalidID
	}
	for _, e := range old {
		if e.id == invalidID {
			continue
		}
		i := e.hash & t.mask
		for t.buckets[i].id != invalidID {
			i = (i + 1) & t.mask
		}
		t.buckets[i] = e
	}
}
