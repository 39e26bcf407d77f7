package intern

import (
	"fmt"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestInternAssignsStableIds(t *testing.T) {
	tbl := New(4)
	a := tbl.Intern("read_A")
	b := tbl.Intern("read_B")
	aAgain := tbl.Intern("read_A")

	expect.EQ(t, aAgain, a)
	expect.True(t, a != b)
	expect.EQ(t, tbl.String(a), "read_A")
	expect.EQ(t, tbl.String(b), "read_B")
	expect.EQ(t, tbl.Len(), 2)
}

func TestInternFirstSeenOrderIsAscending(t *testing.T) {
	tbl := New(4)
	var ids []int32
	for i := 0; i < 5; i++ {
		ids = append(ids, tbl.Intern(fmt.Sprintf("s%d", i)))
	}
	for i, id := range ids {
		expect.EQ(t, id, int32(i))
	}
}

func TestInternGrowsPastInitialSize(t *testing.T) {
	tbl := New(4)
	seen := map[int32]string{}
	for i := 0; i < 1000; i++ {
		s := fmt.Sprintf("umi%d", i)
		id := tbl.Intern(s)
		seen[id] = s
	}
	expect.EQ(t, tbl.Len(), 1000)
	for id, s := range seen {
		expect.EQ(t, tbl.String(id), s)
	}
}
